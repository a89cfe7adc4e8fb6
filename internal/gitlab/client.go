// Package gitlab fetches repository files and wiki pages from a GitLab
// instance so they can be chunked and indexed.
package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"worklens/internal/source"
)

// maxFileBytes caps how much of a single repository file is read.
const maxFileBytes = 1 << 20

// textExtensions limits tree fetching to files worth indexing. Binary
// blobs are skipped without a request.
var textExtensions = map[string]struct{}{
	"md": {}, "markdown": {}, "txt": {}, "rst": {}, "adoc": {},
	"go": {}, "js": {}, "jsx": {}, "ts": {}, "tsx": {}, "py": {},
	"java": {}, "rb": {}, "rs": {}, "c": {}, "h": {}, "cpp": {}, "hpp": {},
	"cs": {}, "php": {}, "swift": {}, "kt": {}, "scala": {}, "sh": {},
	"sql": {}, "yaml": {}, "yml": {}, "json": {}, "toml": {}, "proto": {},
}

// Client is a client for the GitLab REST API (v4).
type Client struct {
	BaseURL string
	Token   string
	client  *http.Client
}

// NewClient creates a new GitLab client.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		client:  http.DefaultClient,
	}
}

// Name implements source.Source.
func (c *Client) Name() string { return "gitlab" }

type treeEntry struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

type wikiPage struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Format  string `json:"format"`
	Content string `json:"content"`
}

// Fetch returns the indexable repository files and wiki pages of a project.
// collectionID is the project path with namespace, e.g. "group/repo".
func (c *Client) Fetch(ctx context.Context, collectionID string) ([]source.Document, error) {
	project := url.PathEscape(collectionID)

	entries, err := c.listTree(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to list repository tree: %w", err)
	}

	var docs []source.Document
	for _, entry := range entries {
		if entry.Type != "blob" {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Path), "."))
		if _, ok := textExtensions[ext]; !ok {
			continue
		}
		content, err := c.fetchRawFile(ctx, project, entry.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", entry.Path, err)
		}
		docs = append(docs, source.Document{Path: entry.Path, Content: content})
	}

	pages, err := c.listWikis(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to list wiki pages: %w", err)
	}
	for _, page := range pages {
		ext := "txt"
		if page.Format == "markdown" || page.Format == "" {
			ext = "md"
		}
		docs = append(docs, source.Document{
			Path:    fmt.Sprintf("wiki/%s.%s", page.Slug, ext),
			Title:   page.Title,
			Content: page.Content,
		})
	}

	return docs, nil
}

func (c *Client) listTree(ctx context.Context, project string) ([]treeEntry, error) {
	u := fmt.Sprintf("%s/api/v4/projects/%s/repository/tree?recursive=true&per_page=100", c.BaseURL, project)

	var entries []treeEntry
	if err := c.getJSON(ctx, u, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) fetchRawFile(ctx context.Context, project, path string) (string, error) {
	u := fmt.Sprintf("%s/api/v4/projects/%s/repository/files/%s/raw?ref=HEAD",
		c.BaseURL, project, url.PathEscape(path))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFileBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(data), nil
}

func (c *Client) listWikis(ctx context.Context, project string) ([]wikiPage, error) {
	u := fmt.Sprintf("%s/api/v4/projects/%s/wikis?with_content=1", c.BaseURL, project)

	var pages []wikiPage
	if err := c.getJSON(ctx, u, &pages); err != nil {
		// Wikis can be disabled per project; treat a 403/404 as "no pages".
		if status, ok := errStatus(err); ok && (status == http.StatusForbidden || status == http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return pages, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{Status: resp.StatusCode, Body: string(raw)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.Token != "" {
		req.Header.Set("PRIVATE-TOKEN", c.Token)
	}
}

type statusError struct {
	Status int
	Body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("bad status %d: %s", e.Status, e.Body)
}

func errStatus(err error) (int, bool) {
	if se, ok := err.(*statusError); ok {
		return se.Status, true
	}
	return 0, false
}
