package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	searchCollection string
	searchLimit      int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Query the local index and print ranked results",
	Long: "search runs a query against the snapshot-backed index without " +
		"starting a server. Useful for inspecting what a tool call would return.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		defer a.close()

		query := strings.Join(args, " ")
		results := a.index.Search(searchCollection, query, searchLimit)
		if len(results) == 0 {
			fmt.Println("No results.")
			return nil
		}

		rank := color.New(color.FgCyan, color.Bold)
		score := color.New(color.FgYellow)
		location := color.New(color.FgGreen)

		for i, res := range results {
			c := res.Chunk
			rank.Printf("%2d. ", i+1)
			location.Printf("%s:%s", c.CollectionID, c.Path)
			fmt.Printf(" (lines %d-%d) ", c.StartLine, c.EndLine)
			score.Printf("score=%.2f\n", res.Score)

			if c.Title != "" {
				fmt.Printf("    title: %s\n", c.Title)
			}
			if len(res.Matches) > 0 {
				parts := make([]string, len(res.Matches))
				for j, m := range res.Matches {
					parts[j] = fmt.Sprintf("%s(%s)", m.Term, m.Type)
				}
				fmt.Printf("    matched: %s\n", strings.Join(parts, " "))
			}

			preview := strings.Join(strings.Fields(c.Content), " ")
			if len(preview) > 160 {
				preview = preview[:160] + "..."
			}
			fmt.Printf("    %s\n", preview)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchCollection, "collection", "c", "", "collection to prioritize")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum results")
	rootCmd.AddCommand(searchCmd)
}
