package cmd

import (
	"github.com/spf13/cobra"

	"github.com/postpad/postpad/internal/output"
)

// FindResult is the output of the find command.
type FindResult struct {
	OK         bool    `yaml:"ok"                 json:"ok"`
	Action     string  `yaml:"action"             json:"action"`
	X          int     `yaml:"x,omitempty"        json:"x,omitempty"`
	Y          int     `yaml:"y,omitempty"        json:"y,omitempty"`
	Confidence float64 `yaml:"confidence"         json:"confidence"`
	Template   string  `yaml:"template,omitempty" json:"template,omitempty"`
	Threshold  float64 `yaml:"threshold"          json:"threshold"`
}

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Locate the editor icon on screen",
	Long: `Capture the screen once and match every loaded template against it,
reporting the single best match across the whole set and whether it
clears the confidence threshold.`,
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().Float64("threshold", 0, "Override the configured confidence threshold")
}

func runFind(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	threshold := a.cfg.Match.Threshold
	if t, _ := cmd.Flags().GetFloat64("threshold"); t > 0 {
		threshold = t
	}

	best, err := a.matcher.BestMatch()
	if err != nil {
		return err
	}

	res := FindResult{
		Action:     "find",
		Confidence: best.Score,
		Threshold:  threshold,
	}
	if best.Template != "" && best.Score >= threshold {
		center := best.Center()
		res.OK = true
		res.X = center.X
		res.Y = center.Y
		res.Template = best.Template
	}
	return output.Print(res)
}
