package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl [collection]",
	Short: "Crawl and index configured collections, then exit",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		defer a.close()

		if len(a.targets) == 0 {
			return fmt.Errorf("no crawl targets configured; set GITLAB_PROJECTS, JIRA_PROJECTS or CONFLUENCE_SPACES")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if len(args) == 1 {
			for _, target := range a.targets {
				for _, id := range target.Collections {
					if id == args[0] {
						return a.crawler.CrawlCollection(ctx, target.Source, id)
					}
				}
			}
			return fmt.Errorf("collection %q is not configured", args[0])
		}

		return a.crawler.CrawlAll(ctx, a.targets)
	},
}

func init() {
	rootCmd.AddCommand(crawlCmd)
}
