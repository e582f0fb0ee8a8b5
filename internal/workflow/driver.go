// Package workflow sequences the full transcription run: fetch posts,
// then for each one drive the editor through close → launch → write →
// close, tolerating per-item failure.
package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/postpad/postpad/internal/feed"
	"github.com/postpad/postpad/internal/winstate"
	"github.com/postpad/postpad/internal/writer"
)

// Fetcher supplies the posts to transcribe.
type Fetcher interface {
	Fetch(ctx context.Context) ([]feed.Post, error)
}

// Summary is the outcome of a run.
type Summary struct {
	Fetched   int `yaml:"fetched"   json:"fetched"`
	Succeeded int `yaml:"succeeded" json:"succeeded"`
	Skipped   int `yaml:"skipped"   json:"skipped"`
}

// Driver runs the transcription workflow. Strictly sequential: it owns
// the one control-flow thread the coordinate cache and controllers
// assume.
type Driver struct {
	fetcher    Fetcher
	controller *winstate.Controller
	writer     *writer.Writer
	outputDir  string
	maxPosts   int
	logger     *zap.Logger
}

// NewDriver wires a driver from its collaborators.
func NewDriver(
	fetcher Fetcher,
	controller *winstate.Controller,
	w *writer.Writer,
	outputDir string,
	maxPosts int,
	logger *zap.Logger,
) *Driver {
	return &Driver{
		fetcher:    fetcher,
		controller: controller,
		writer:     w,
		outputDir:  outputDir,
		maxPosts:   maxPosts,
		logger:     logger,
	}
}

// Run executes the workflow. Resource-level failures (API unreachable,
// output directory not creatable) end the run gracefully with an empty
// summary; per-item failures are logged and skipped.
func (d *Driver) Run(ctx context.Context) Summary {
	var s Summary

	if err := os.MkdirAll(d.outputDir, 0o755); err != nil {
		d.logger.Error("cannot create output directory",
			zap.String("dir", d.outputDir), zap.Error(err))
		return s
	}

	posts, err := d.fetcher.Fetch(ctx)
	if err != nil {
		d.logger.Error("api unavailable, ending run", zap.Error(err))
		return s
	}
	if len(posts) == 0 {
		d.logger.Warn("no posts to process")
		return s
	}
	if d.maxPosts > 0 && len(posts) > d.maxPosts {
		posts = posts[:d.maxPosts]
	}
	s.Fetched = len(posts)

	for _, p := range posts {
		if d.processPost(p) {
			s.Succeeded++
		} else {
			s.Skipped++
		}
	}

	d.logger.Info("run complete",
		zap.Int("fetched", s.Fetched),
		zap.Int("succeeded", s.Succeeded),
		zap.Int("skipped", s.Skipped))
	return s
}

// processPost transcribes a single post. Unexpected failures are
// recovered here so one bad item never aborts the whole run.
func (d *Driver) processPost(p feed.Post) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("unexpected failure while processing post",
				zap.Int("id", p.ID), zap.Any("cause", r))
			ok = false
		}
	}()

	d.logger.Info("processing post", zap.Int("id", p.ID))

	if !d.controller.EnsureClosed() {
		d.logger.Warn("existing windows did not close cleanly", zap.Int("id", p.ID))
	}
	if !d.controller.EnsureOpen() {
		d.logger.Warn("skipping post, launch failed", zap.Int("id", p.ID))
		return false
	}

	dest := filepath.Join(d.outputDir, FileName(p.ID))
	if err := d.writer.Write(FormatPost(p), dest); err != nil {
		d.logger.Warn("skipping post, write failed", zap.Int("id", p.ID), zap.Error(err))
		return false
	}

	if !d.controller.EnsureClosed() {
		d.logger.Warn("editor may not have closed completely", zap.Int("id", p.ID))
	}

	d.logger.Info("post transcribed", zap.Int("id", p.ID), zap.String("file", dest))
	return true
}

// FormatPost renders a post as file content.
func FormatPost(p feed.Post) string {
	return fmt.Sprintf("Title: %s\n\n%s", p.Title, p.Body)
}

// FileName returns the output file name for a post.
func FileName(id int) string {
	return fmt.Sprintf("post_%d.txt", id)
}
