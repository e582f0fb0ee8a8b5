package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/postpad/postpad/internal/feed"
	"github.com/postpad/postpad/internal/output"
	"github.com/postpad/postpad/internal/workflow"
)

// WriteResult is the output of the write command.
type WriteResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
	Path   string `yaml:"path"   json:"path"`
}

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write a single post to a file through the editor",
	Long: `Type a single post into the already-running editor and save it to the
output directory. The editor must be open; use launch first if it is not.`,
	RunE: runWrite,
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().Int("id", 0, "Post ID, used for the output file name")
	writeCmd.Flags().String("title", "", "Post title")
	writeCmd.Flags().String("body", "", "Post body (read from stdin when omitted and piped)")
}

func runWrite(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	id, _ := cmd.Flags().GetInt("id")
	title, _ := cmd.Flags().GetString("title")
	body, _ := cmd.Flags().GetString("body")
	if body == "" {
		if stat, statErr := os.Stdin.Stat(); statErr == nil && stat.Mode()&os.ModeCharDevice == 0 {
			b, readErr := io.ReadAll(cmd.InOrStdin())
			if readErr != nil {
				return readErr
			}
			body = string(b)
		}
	}
	post := feed.Post{ID: id, Title: title, Body: body}

	if err := os.MkdirAll(a.cfg.Output.Dir, 0o755); err != nil {
		return err
	}
	dest := filepath.Join(a.cfg.Output.Dir, workflow.FileName(post.ID))
	if err := a.writer.Write(workflow.FormatPost(post), dest); err != nil {
		return err
	}
	return output.Print(WriteResult{OK: true, Action: "write", Path: dest})
}
