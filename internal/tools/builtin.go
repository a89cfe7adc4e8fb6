package tools

import (
	"context"
	"fmt"
	"strings"

	"worklens/internal/crawler"
	"worklens/internal/resources"
	"worklens/internal/search"
)

const defaultSearchLimit = 10

// NewSearchTool searches the index and formats ranked hits.
func NewSearchTool(index *search.Index, reg *resources.Registry) Tool {
	return Tool{
		Definition: Definition{
			Name:        "search_docs",
			Description: "Search indexed repository files, wiki pages, issues and pages. Optionally scope to one collection; scoped searches still consider everything but rank the collection higher.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Free-text search query",
					},
					"collection": map[string]any{
						"type":        "string",
						"description": "Collection to prioritize (project path, project key, or space key)",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of results (default 10)",
						"minimum":     1,
						"maximum":     50,
					},
				},
				"required": []string{"query"},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) ([]ContentPart, error) {
			query := stringArg(args, "query")
			collection := stringArg(args, "collection")
			limit := intArg(args, "limit", defaultSearchLimit)

			results := index.Search(collection, query, limit)
			return []ContentPart{{Type: "text", Text: formatResults(results, reg)}}, nil
		},
	}
}

// NewCrawlTool triggers a crawl of one collection or of every configured
// target.
func NewCrawlTool(c *crawler.Crawler, targets []crawler.Target) Tool {
	return Tool{
		Definition: Definition{
			Name:        "crawl",
			Description: "Fetch and index content. Without arguments, crawls every configured collection; with a collection, crawls just that one.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"collection": map[string]any{
						"type":        "string",
						"description": "Single collection to crawl",
					},
				},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) ([]ContentPart, error) {
			collection := stringArg(args, "collection")
			if collection == "" {
				if err := c.CrawlAll(ctx, targets); err != nil {
					return nil, err
				}
				return []ContentPart{{Type: "text", Text: "Crawl completed."}}, nil
			}

			for _, target := range targets {
				for _, id := range target.Collections {
					if id == collection {
						if err := c.CrawlCollection(ctx, target.Source, collection); err != nil {
							return nil, err
						}
						return []ContentPart{{Type: "text", Text: fmt.Sprintf("Crawled %s.", collection)}}, nil
					}
				}
			}
			return nil, fmt.Errorf("collection %q is not configured", collection)
		},
	}
}

// NewClearTool drops a collection from the index and crawl state.
func NewClearTool(c *crawler.Crawler) Tool {
	return Tool{
		Definition: Definition{
			Name:        "clear_collection",
			Description: "Remove a collection from the search index entirely.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"collection": map[string]any{
						"type":        "string",
						"description": "Collection to remove",
					},
				},
				"required": []string{"collection"},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) ([]ContentPart, error) {
			collection := stringArg(args, "collection")
			if err := c.ClearCollection(ctx, collection); err != nil {
				return nil, err
			}
			return []ContentPart{{Type: "text", Text: fmt.Sprintf("Cleared %s.", collection)}}, nil
		},
	}
}

// NewListCollectionsTool reports the indexed collections.
func NewListCollectionsTool(index *search.Index) Tool {
	return Tool{
		Definition: Definition{
			Name:        "list_collections",
			Description: "List the collections currently held in the search index.",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) ([]ContentPart, error) {
			ids := index.Collections()
			if len(ids) == 0 {
				return []ContentPart{{Type: "text", Text: "No collections indexed."}}, nil
			}
			return []ContentPart{{Type: "text", Text: strings.Join(ids, "\n")}}, nil
		},
	}
}
