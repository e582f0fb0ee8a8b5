package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/postpad/postpad/internal/config"
	"github.com/postpad/postpad/internal/platform"
	"github.com/postpad/postpad/internal/vision"
	"github.com/postpad/postpad/internal/winstate"
	"github.com/postpad/postpad/internal/writer"
)

// app bundles the configured components every command works with.
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	provider   *platform.Provider
	templates  []vision.Template
	cache      *vision.CoordCache
	tracker    *winstate.Tracker
	matcher    *vision.Matcher
	controller *winstate.Controller
	writer     *writer.Writer
}

// newApp loads configuration, builds the logger, resolves the platform
// provider, loads templates, and wires the component graph.
func newApp(cmd *cobra.Command) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}

	templates, err := vision.LoadTemplates(cfg.Templates.Dir, logger)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		provider:  provider,
		templates: templates,
		cache:     vision.NewCoordCache(),
	}
	a.tracker = winstate.NewTracker(provider.WindowQuery, winstate.Filter{
		Target:    cfg.Editor.Title,
		Impostors: cfg.Editor.ImpostorSubstrings,
	}, logger)
	a.matcher = vision.NewMatcher(provider.Screen, templates, logger)
	a.controller = winstate.NewController(
		a.tracker, a.matcher, a.cache,
		provider.Inputter, provider.WindowQuery,
		cfg.Match, cfg.Timing, logger,
	)
	a.writer = writer.New(
		a.tracker, provider.Inputter, provider.Clipboard, provider.WindowQuery,
		cfg.Editor, cfg.Timing, logger,
	)
	return a, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return cfg.Build()
}

// Param helpers shared by the MCP tool handlers.

// StringParam extracts a string argument with a default.
func StringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return def
}

// IntParam extracts a numeric argument with a default. JSON numbers
// arrive as float64.
func IntParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// FloatParam extracts a float argument with a default.
func FloatParam(params map[string]interface{}, key string, def float64) float64 {
	if v, ok := params[key].(float64); ok {
		return v
	}
	return def
}

// BoolParam extracts a bool argument with a default.
func BoolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}
