// Package writer performs the keystroke/clipboard sequence that turns an
// open editor window plus a content string into a saved file.
package writer

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/postpad/postpad/internal/config"
	"github.com/postpad/postpad/internal/model"
	"github.com/postpad/postpad/internal/platform"
	"github.com/postpad/postpad/internal/poll"
	"github.com/postpad/postpad/internal/winstate"
)

// ErrSaveDialogMissing reports that the save-path dialog never appeared
// within its bounded wait. The write is abandoned with state left as-is.
var ErrSaveDialogMissing = errors.New("save dialog did not appear")

// ErrNoEditorWindow reports that no visible editor window was available
// to receive input.
var ErrNoEditorWindow = errors.New("no visible editor window")

// Writer drives the save-to-path flow inside an already-open editor.
type Writer struct {
	tracker *winstate.Tracker
	input   platform.Inputter
	clip    platform.Clipboard
	query   platform.WindowQuery
	editor  config.EditorConfig
	timing  config.TimingConfig
	logger  *zap.Logger
}

// New wires a writer from its collaborators.
func New(
	tracker *winstate.Tracker,
	input platform.Inputter,
	clip platform.Clipboard,
	query platform.WindowQuery,
	editor config.EditorConfig,
	timing config.TimingConfig,
	logger *zap.Logger,
) *Writer {
	return &Writer{
		tracker: tracker,
		input:   input,
		clip:    clip,
		query:   query,
		editor:  editor,
		timing:  timing,
		logger:  logger,
	}
}

// Write creates a fresh document in the open editor, injects content via
// a clipboard paste, and saves it to destPath through the save-path
// dialog, accepting the overwrite confirmation when the file exists.
//
// Content goes through the clipboard rather than simulated typing:
// synthetic per-character input drops characters at speed.
func (w *Writer) Write(content, destPath string) error {
	// Let a leftover save dialog from a previous item clear first.
	w.awaitDialogGone()

	if err := w.focusEditor(); err != nil {
		return err
	}

	// New document; the fresh tab may need focus again.
	_ = w.input.KeyTap("n", "ctrl")
	w.pause()
	if err := w.focusEditor(); err != nil {
		return err
	}

	// Clear whatever is in the buffer, then paste the content.
	_ = w.input.KeyTap("a", "ctrl")
	w.pause()
	_ = w.input.KeyTap("delete")
	w.pause()
	if err := w.clip.SetText(content); err != nil {
		return err
	}
	w.pause()
	_ = w.input.KeyTap("v", "ctrl")
	w.pause()

	_ = w.input.KeyTap("s", "ctrl")
	dialog, ok := w.awaitDialog()
	if !ok {
		w.logger.Warn("save dialog did not appear", zap.String("dest", destPath))
		return ErrSaveDialogMissing
	}

	// Paste the destination path into the dialog's path field.
	if err := w.query.Activate(dialog); err != nil {
		w.logger.Warn("failed to activate save dialog", zap.Error(err))
	}
	w.pause()
	_ = w.input.KeyTap("a", "ctrl")
	w.pause()
	if err := w.clip.SetText(destPath); err != nil {
		return err
	}
	w.pause()
	_ = w.input.KeyTap("v", "ctrl")
	w.pause()
	_ = w.input.KeyTap("enter")
	w.pause()

	w.acceptOverwrite()

	// Best-effort: proceed even if the dialog lingers.
	w.awaitDialogGone()

	if err := w.focusEditor(); err == nil {
		_ = w.input.KeyTap("w", "ctrl")
		w.pause()
	}
	return nil
}

// focusEditor activates the first visible editor window and clicks its
// geometric center to guarantee input focus.
func (w *Writer) focusEditor() error {
	windows := w.tracker.Visible()
	if len(windows) == 0 {
		return ErrNoEditorWindow
	}
	win := windows[0]
	if err := w.query.Activate(win); err != nil {
		return err
	}
	w.pause()
	cx, cy := win.Center()
	_ = w.input.Click(cx, cy)
	w.pause()
	return nil
}

// acceptOverwrite confirms the overwrite prompt when saving over an
// existing file. The flow has no cancel path: overwriting is intentional.
func (w *Writer) acceptOverwrite() {
	dlg, ok := w.tracker.Dialog(w.editor.ConfirmDialogTitle)
	if !ok {
		return
	}
	w.logger.Info("destination exists, accepting overwrite")
	if err := w.query.Activate(dlg); err != nil {
		w.logger.Warn("failed to activate confirm dialog", zap.Error(err))
	}
	w.pause()
	_ = w.input.KeyTap("y")
	w.pause()
}

func (w *Writer) awaitDialog() (model.Window, bool) {
	var dlg model.Window
	found := poll.Until(w.timing.SaveDialogTimeout, w.timing.PollInterval, func() bool {
		d, ok := w.tracker.Dialog(w.editor.SaveDialogTitle)
		if ok {
			dlg = d
		}
		return ok
	})
	return dlg, found
}

func (w *Writer) awaitDialogGone() {
	poll.Until(w.timing.DialogCloseTimeout, w.timing.PollInterval, func() bool {
		_, ok := w.tracker.Dialog(w.editor.SaveDialogTitle)
		return !ok
	})
}

func (w *Writer) pause() {
	time.Sleep(w.timing.Spacing)
}
