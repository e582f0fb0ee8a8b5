package vision

import (
	"image"
	"math"

	"go.uber.org/zap"

	"github.com/postpad/postpad/internal/platform"
)

// MatchResult is the outcome of a single matching pass: the best-scoring
// template across the whole set, not the first one clearing a threshold.
type MatchResult struct {
	Score    float64
	Loc      image.Point // top-left of the matched region
	Width    int
	Height   int
	Template string
}

// Center returns the center of the matched region with integer truncation.
func (r MatchResult) Center() image.Point {
	return image.Point{X: r.Loc.X + r.Width/2, Y: r.Loc.Y + r.Height/2}
}

// Matcher locates icons on screen using a fixed template set.
type Matcher struct {
	screen    platform.Screen
	templates []Template
	logger    *zap.Logger
}

// NewMatcher returns a matcher over the given template set.
func NewMatcher(screen platform.Screen, templates []Template, logger *zap.Logger) *Matcher {
	return &Matcher{screen: screen, templates: templates, logger: logger}
}

// FindIcon captures the screen once, evaluates every template, and returns
// the center of the globally best match when its confidence reaches
// threshold. The second return is false when nothing matched well enough.
func (m *Matcher) FindIcon(threshold float64) (image.Point, bool) {
	best, err := m.BestMatch()
	if err != nil {
		m.logger.Warn("icon search failed", zap.Error(err))
		return image.Point{}, false
	}
	if best.Template == "" || best.Score < threshold {
		return image.Point{}, false
	}
	m.logger.Info("icon found",
		zap.String("template", best.Template),
		zap.Float64("confidence", best.Score),
		zap.Int("x", best.Center().X),
		zap.Int("y", best.Center().Y))
	return best.Center(), true
}

// BestMatch captures the screen exactly once and returns the maximum
// confidence match across all templates, with no threshold applied.
// Templates larger than the capture in either axis are skipped.
func (m *Matcher) BestMatch() (MatchResult, error) {
	capture, err := m.screen.Capture()
	if err != nil {
		return MatchResult{}, err
	}
	screen := toGray(capture)
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()

	var best MatchResult
	for _, t := range m.templates {
		if t.Width() > sw || t.Height() > sh {
			m.logger.Warn("skipping template larger than the screen",
				zap.String("template", t.Name),
				zap.Int("width", t.Width()),
				zap.Int("height", t.Height()))
			continue
		}
		score, loc := matchTemplate(screen, t)
		if score > best.Score {
			best = MatchResult{
				Score:    score,
				Loc:      loc,
				Width:    t.Width(),
				Height:   t.Height(),
				Template: t.Name,
			}
		}
	}
	return best, nil
}

// matchTemplate slides t over screen and returns the maximum zero-mean
// normalized cross-correlation score and its location. A nil mask means
// uniform weights; otherwise each pixel contributes proportionally to its
// alpha-derived weight. Scores are clamped to [0, 1].
func matchTemplate(screen *image.Gray, t Template) (float64, image.Point) {
	tw, th := t.Width(), t.Height()
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()

	weights := make([]float64, tw*th)
	tpl := make([]float64, tw*th)
	var wSum float64
	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			i := y*tw + x
			w := 1.0
			if t.Mask != nil {
				w = float64(t.Mask.GrayAt(x, y).Y) / 255.0
			}
			weights[i] = w
			tpl[i] = float64(t.Gray.GrayAt(x, y).Y)
			wSum += w
		}
	}
	if wSum == 0 {
		return 0, image.Point{}
	}

	// Weighted zero-mean template and its variance, computed once.
	var tMean float64
	for i, v := range tpl {
		tMean += weights[i] * v
	}
	tMean /= wSum
	var tVar float64
	for i := range tpl {
		tpl[i] -= tMean
		tVar += weights[i] * tpl[i] * tpl[i]
	}

	bestScore := 0.0
	bestLoc := image.Point{}
	for y0 := 0; y0 <= sh-th; y0++ {
		for x0 := 0; x0 <= sw-tw; x0++ {
			var sSum float64
			for y := 0; y < th; y++ {
				for x := 0; x < tw; x++ {
					sSum += weights[y*tw+x] * float64(screen.GrayAt(x0+x, y0+y).Y)
				}
			}
			sMean := sSum / wSum

			var cross, sVar float64
			for y := 0; y < th; y++ {
				for x := 0; x < tw; x++ {
					i := y*tw + x
					d := float64(screen.GrayAt(x0+x, y0+y).Y) - sMean
					cross += weights[i] * tpl[i] * d
					sVar += weights[i] * d * d
				}
			}

			denom := math.Sqrt(tVar * sVar)
			if denom == 0 {
				continue
			}
			if score := cross / denom; score > bestScore {
				bestScore = score
				bestLoc = image.Point{X: x0, Y: y0}
			}
		}
	}
	if bestScore > 1 {
		bestScore = 1
	}
	return bestScore, bestLoc
}
