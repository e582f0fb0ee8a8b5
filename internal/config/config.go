// Package config holds all tunables for a postpad run. Values come from
// defaults, an optional YAML file, and POSTPAD_* environment variables,
// in that order of precedence (environment wins).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Output    OutputConfig    `yaml:"output"`
	Templates TemplatesConfig `yaml:"templates"`
	Editor    EditorConfig    `yaml:"editor"`
	Match     MatchConfig     `yaml:"match"`
	Timing    TimingConfig    `yaml:"timing"`
	LogLevel  string          `yaml:"log_level"`
}

// APIConfig holds the posts endpoint settings.
type APIConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// OutputConfig holds the transcription target directory.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// TemplatesConfig holds the icon template assets directory.
type TemplatesConfig struct {
	Dir string `yaml:"dir"`
}

// EditorConfig identifies the target application and its dialogs. The
// titles are load-bearing string contracts tied to the OS locale and
// application version.
type EditorConfig struct {
	Title              string   `yaml:"title"`
	ImpostorSubstrings []string `yaml:"impostor_substrings"`
	SaveDialogTitle    string   `yaml:"save_dialog_title"`
	ConfirmDialogTitle string   `yaml:"confirm_dialog_title"`
}

// MatchConfig holds the icon matching confidence thresholds.
type MatchConfig struct {
	Threshold float64 `yaml:"threshold"`
	// FallbackThreshold is the lowered second-pass threshold used by the
	// launch retry policy, never inside a single matcher call.
	FallbackThreshold float64 `yaml:"fallback_threshold"`
}

// TimingConfig bounds every wait and retry loop.
type TimingConfig struct {
	LaunchTimeout      time.Duration `yaml:"launch_timeout"`
	CloseTimeout       time.Duration `yaml:"close_timeout"`
	SaveDialogTimeout  time.Duration `yaml:"save_dialog_timeout"`
	DialogCloseTimeout time.Duration `yaml:"dialog_close_timeout"`
	PollInterval       time.Duration `yaml:"poll_interval"`
	Spacing            time.Duration `yaml:"spacing"`
	LaunchRetries      int           `yaml:"launch_retries"`
	MaxPosts           int           `yaml:"max_posts"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		API: APIConfig{
			URL:     "https://jsonplaceholder.typicode.com/posts",
			Timeout: 10 * time.Second,
		},
		Output: OutputConfig{
			Dir: filepath.Join(home, "Desktop", "tjm-project"),
		},
		Templates: TemplatesConfig{
			Dir: filepath.Join("assets", "templates"),
		},
		Editor: EditorConfig{
			Title:              "Notepad",
			ImpostorSubstrings: []string{"cursor", "code", "editor"},
			SaveDialogTitle:    "Save As",
			ConfirmDialogTitle: "Confirm Save As",
		},
		Match: MatchConfig{
			Threshold:         0.8,
			FallbackThreshold: 0.7,
		},
		Timing: TimingConfig{
			LaunchTimeout:      5 * time.Second,
			CloseTimeout:       5 * time.Second,
			SaveDialogTimeout:  3 * time.Second,
			DialogCloseTimeout: 2 * time.Second,
			PollInterval:       200 * time.Millisecond,
			Spacing:            300 * time.Millisecond,
			LaunchRetries:      3,
			MaxPosts:           10,
		},
		LogLevel: "info",
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path (empty path skips the file), and environment overrides.
func Load(path string) (*Config, error) {
	// Load .env file if it exists (optional)
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.API.URL = getEnv("POSTPAD_API_URL", cfg.API.URL)
	cfg.Output.Dir = getEnv("POSTPAD_OUTPUT_DIR", cfg.Output.Dir)
	cfg.Templates.Dir = getEnv("POSTPAD_TEMPLATE_DIR", cfg.Templates.Dir)
	cfg.Editor.Title = getEnv("POSTPAD_EDITOR_TITLE", cfg.Editor.Title)
	cfg.Match.Threshold = getEnvAsFloat("POSTPAD_MATCH_THRESHOLD", cfg.Match.Threshold)
	cfg.Timing.MaxPosts = getEnvAsInt("POSTPAD_MAX_POSTS", cfg.Timing.MaxPosts)
	cfg.LogLevel = getEnv("POSTPAD_LOG_LEVEL", cfg.LogLevel)

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	}
	return defaultValue
}
