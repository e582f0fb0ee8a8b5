package cmd

import (
	"github.com/spf13/cobra"

	"github.com/postpad/postpad/internal/output"
)

// TemplateInfo describes one loaded icon template.
type TemplateInfo struct {
	Name   string `yaml:"name"   json:"name"`
	Width  int    `yaml:"width"  json:"width"`
	Height int    `yaml:"height" json:"height"`
	Masked bool   `yaml:"masked" json:"masked"`
}

// TemplatesResult is the output of the templates command.
type TemplatesResult struct {
	OK        bool           `yaml:"ok"        json:"ok"`
	Dir       string         `yaml:"dir"       json:"dir"`
	Templates []TemplateInfo `yaml:"templates" json:"templates"`
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the icon templates loaded from the template directory",
	RunE:  runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	res := TemplatesResult{OK: true, Dir: a.cfg.Templates.Dir}
	for _, t := range a.templates {
		res.Templates = append(res.Templates, TemplateInfo{
			Name:   t.Name,
			Width:  t.Width(),
			Height: t.Height(),
			Masked: t.Mask != nil,
		})
	}
	return output.Print(res)
}
