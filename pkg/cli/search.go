package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/storyq/storyq/pkg/contract"
	storesql "github.com/storyq/storyq/pkg/store/sql"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <search string>",
		Short: "Search the story cache",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			stories, err := storesql.NewSQLStore(logrus.StandardLogger(), cfg)
			if err != nil {
				return err
			}
			defer stories.Close()

			maxResults, _ := cmd.Flags().GetInt("max-results")
			pageToken, _ := cmd.Flags().GetString("page-token")

			page, contractErr := stories.SearchStories(
				cmd.Context(), searchString(args), identity(cmd, cfg), maxResults, pageToken,
			)
			if contractErr != nil {
				return contractErr
			}

			p := newPrinter(cmd.OutOrStdout())
			if outputFormat(cmd) == "json" {
				return p.json(contract.SearchStoriesResponse{
					Stories:       page.Items,
					NextPageToken: page.NextPageToken,
				})
			}

			rows := make([][]string, 0, len(page.Items))
			for _, story := range page.Items {
				rows = append(rows, []string{
					strconv.FormatInt(story.ID, 10),
					story.Status,
					story.Owner,
					story.Updated.Format(time.DateTime),
					story.Title,
				})
			}

			p.table([]string{"ID", "STATUS", "OWNER", "UPDATED", "TITLE"}, rows)

			if page.NextPageToken != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "next page: --page-token %s\n", *page.NextPageToken)
			}

			return nil
		},
	}

	cmd.Flags().IntP("max-results", "n", 0, "maximum number of stories (default: config default_max_results)")
	cmd.Flags().String("page-token", "", "token of the page to fetch")

	return cmd
}
