package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/postpad/postpad/internal/output"
	"github.com/postpad/postpad/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "postpad",
	Short: "Transcribe API posts into Notepad via UI automation",
	Long: `postpad fetches posts from a JSON API and transcribes each one into a
file by driving a desktop text editor: it locates the editor icon on
screen with template matching, launches it, pastes the content, and
saves it through the editor's own dialogs.

A run assumes exclusive ownership of the mouse, keyboard and display
for its whole duration.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		return nil
	}
}
