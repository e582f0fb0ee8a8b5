// Package vision locates on-screen icons by matching grayscale reference
// templates against a screen capture with normalized cross-correlation.
package vision

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	// Template decoders. PNG is the primary format; BMP and TIFF come in
	// through golang.org/x/image.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Template is a reference image used to locate an on-screen icon.
// Immutable once loaded; held for the process lifetime.
type Template struct {
	Name string
	Gray *image.Gray

	// Mask holds per-pixel match weights derived from the source image's
	// alpha channel. Nil when the source carried no transparency.
	Mask *image.Gray
}

// Width returns the template width in pixels.
func (t Template) Width() int { return t.Gray.Bounds().Dx() }

// Height returns the template height in pixels.
func (t Template) Height() int { return t.Gray.Bounds().Dy() }

var templateExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// LoadTemplates reads every image file with a recognized extension from
// dir. Files that fail to decode are logged and skipped. A missing or
// empty directory yields an empty slice, not an error; the caller decides
// whether that is fatal.
func LoadTemplates(dir string, logger *zap.Logger) ([]Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("template directory not found", zap.String("dir", dir))
			return nil, nil
		}
		return nil, err
	}

	var templates []Template
	for _, entry := range entries {
		if entry.IsDir() || !templateExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			logger.Warn("skipping unreadable template", zap.String("path", path), zap.Error(err))
			continue
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			logger.Warn("skipping undecodable template", zap.String("path", path), zap.Error(err))
			continue
		}
		templates = append(templates, NewTemplate(entry.Name(), img))
		logger.Info("loaded template", zap.String("name", entry.Name()))
	}
	return templates, nil
}

// NewTemplate converts img to grayscale and, when it carries transparency,
// derives the per-pixel match mask from the alpha channel before the color
// data is used for matching.
func NewTemplate(name string, img image.Image) Template {
	t := Template{Name: name, Gray: toGray(img)}
	if mask, ok := alphaMask(img); ok {
		t.Mask = mask
	}
	return t
}

// toGray converts any image to 8-bit grayscale.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// alphaMask extracts the alpha channel as an 8-bit weight map. The second
// return is false when the image is fully opaque.
func alphaMask(img image.Image) (*image.Gray, bool) {
	b := img.Bounds()
	mask := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	opaque := true
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			v := uint8(a >> 8)
			if v != 0xff {
				opaque = false
			}
			mask.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: v})
		}
	}
	if opaque {
		return nil, false
	}
	return mask, true
}
