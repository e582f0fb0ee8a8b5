package cmd

import (
	"github.com/spf13/cobra"

	"github.com/postpad/postpad/internal/output"
)

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Close all editor windows, discarding unsaved changes",
	RunE:  runClose,
}

func init() {
	rootCmd.AddCommand(closeCmd)
}

func runClose(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ok := a.controller.EnsureClosed()
	return output.Print(StateResult{OK: ok, Action: "close"})
}
