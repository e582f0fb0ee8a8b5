package cmd

import (
	"github.com/spf13/cobra"

	"github.com/postpad/postpad/internal/output"
)

// StateResult is the output of the launch and close commands.
type StateResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
}

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Launch the editor by locating and double-clicking its desktop icon",
	RunE:  runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ok := a.controller.EnsureOpen()
	return output.Print(StateResult{OK: ok, Action: "launch"})
}
