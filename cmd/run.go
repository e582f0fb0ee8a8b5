package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/postpad/postpad/internal/feed"
	"github.com/postpad/postpad/internal/output"
	"github.com/postpad/postpad/internal/workflow"
)

// RunResult is the output of the run command.
type RunResult struct {
	OK        bool   `yaml:"ok"               json:"ok"`
	Action    string `yaml:"action"           json:"action"`
	Fetched   int    `yaml:"fetched"          json:"fetched"`
	Succeeded int    `yaml:"succeeded"        json:"succeeded"`
	Skipped   int    `yaml:"skipped"          json:"skipped"`
	Reason    string `yaml:"reason,omitempty" json:"reason,omitempty"`
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch posts and transcribe each one into a file",
	Long: `Run the full workflow: fetch posts from the configured API, then for
each post close any existing editor windows, launch the editor by icon,
paste the content, and save it as post_<id>.txt in the output directory.
Per-post failures are skipped; the run continues with the next post.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Int("max-posts", 0, "Override the configured post cap (0 = use config)")
}

func runRun(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	// No templates means nothing can ever be located on screen: report
	// and end gracefully rather than burn through every retry budget.
	if len(a.templates) == 0 {
		return output.Print(RunResult{
			OK:     false,
			Action: "run",
			Reason: "no templates found in " + a.cfg.Templates.Dir,
		})
	}

	maxPosts := a.cfg.Timing.MaxPosts
	if n, _ := cmd.Flags().GetInt("max-posts"); n > 0 {
		maxPosts = n
	}

	client := feed.NewClient(a.cfg.API.URL, a.cfg.API.Timeout)
	driver := workflow.NewDriver(client, a.controller, a.writer, a.cfg.Output.Dir, maxPosts, a.logger)
	summary := driver.Run(context.Background())

	return output.Print(RunResult{
		OK:        summary.Succeeded > 0 || summary.Fetched == 0,
		Action:    "run",
		Fetched:   summary.Fetched,
		Succeeded: summary.Succeeded,
		Skipped:   summary.Skipped,
	})
}
