// Package confluence fetches pages from a Confluence space so they can be
// chunked and indexed.
package confluence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"worklens/internal/source"
)

const pageLimit = 100

// Client is a client for the Confluence REST API.
type Client struct {
	BaseURL string
	Token   string
	client  *http.Client
}

// NewClient creates a new Confluence client.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		client:  http.DefaultClient,
	}
}

// Name implements source.Source.
func (c *Client) Name() string { return "confluence" }

type pageBody struct {
	Storage struct {
		Value string `json:"value"`
	} `json:"storage"`
}

type page struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Body  pageBody `json:"body"`
}

type contentResponse struct {
	Results []page `json:"results"`
	Size    int    `json:"size"`
}

var (
	tagPattern    = regexp.MustCompile(`<[^>]+>`)
	breakPattern  = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr)>|<br\s*/?>`)
	spacesPattern = regexp.MustCompile(`\n{3,}`)
)

// Fetch returns all pages of a space as plain-text documents. The
// collectionID is the Confluence space key.
func (c *Client) Fetch(ctx context.Context, collectionID string) ([]source.Document, error) {
	u := fmt.Sprintf("%s/rest/api/content?spaceKey=%s&expand=body.storage&limit=%d",
		c.BaseURL, url.QueryEscape(collectionID), pageLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var out contentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	docs := make([]source.Document, 0, len(out.Results))
	for _, p := range out.Results {
		docs = append(docs, source.Document{
			Path:    fmt.Sprintf("pages/%s.txt", p.ID),
			Title:   p.Title,
			Content: stripStorageFormat(p.Body.Storage.Value),
		})
	}
	return docs, nil
}

// stripStorageFormat reduces Confluence storage-format markup to plain
// text suitable for tokenization. Block-level closers become newlines so
// line counts stay meaningful.
func stripStorageFormat(s string) string {
	s = breakPattern.ReplaceAllString(s, "\n")
	s = tagPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = spacesPattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
