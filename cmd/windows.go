package cmd

import (
	"github.com/spf13/cobra"

	"github.com/postpad/postpad/internal/model"
	"github.com/postpad/postpad/internal/output"
)

// WindowsResult is the output of the windows command.
type WindowsResult struct {
	OK      bool           `yaml:"ok"      json:"ok"`
	Count   int            `yaml:"count"   json:"count"`
	Windows []model.Window `yaml:"windows" json:"windows"`
}

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List windows that belong to the target editor",
	RunE:  runWindows,
}

func init() {
	rootCmd.AddCommand(windowsCmd)
	windowsCmd.Flags().Bool("visible", false, "Only list visible windows")
}

func runWindows(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	var wins []model.Window
	if v, _ := cmd.Flags().GetBool("visible"); v {
		wins = a.tracker.Visible()
	} else {
		wins = a.tracker.List()
	}
	return output.Print(WindowsResult{OK: true, Count: len(wins), Windows: wins})
}
