package cmd

import (
	"github.com/spf13/cobra"

	"github.com/postpad/postpad/internal/feed"
	"github.com/postpad/postpad/internal/output"
)

// FetchResult is the output of the fetch command.
type FetchResult struct {
	OK    bool        `yaml:"ok"    json:"ok"`
	Count int         `yaml:"count" json:"count"`
	Posts []feed.Post `yaml:"posts" json:"posts"`
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch posts from the feed API and print them",
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().Int("limit", 0, "Maximum number of posts to print (0 = all)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	client := feed.NewClient(a.cfg.API.URL, a.cfg.API.Timeout)
	posts, err := client.Fetch(cmd.Context())
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}

	return output.Print(FetchResult{OK: true, Count: len(posts), Posts: posts})
}
