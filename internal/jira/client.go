// Package jira fetches issues from a Jira instance so they can be chunked
// and indexed.
package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"worklens/internal/source"
)

const searchPageSize = 100

// Client is a client for the Jira REST API (v2).
type Client struct {
	BaseURL string
	Email   string
	Token   string
	client  *http.Client
}

// NewClient creates a new Jira client. Email and token are used for basic
// auth against Jira Cloud.
func NewClient(baseURL, email, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Email:   email,
		Token:   token,
		client:  http.DefaultClient,
	}
}

// Name implements source.Source.
func (c *Client) Name() string { return "jira" }

type issueFields struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

type issue struct {
	Key    string      `json:"key"`
	Fields issueFields `json:"fields"`
}

type searchResponse struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []issue `json:"issues"`
}

// Fetch returns all issues of a project as plain-text documents. The
// collectionID is the Jira project key, e.g. "OPS".
func (c *Client) Fetch(ctx context.Context, collectionID string) ([]source.Document, error) {
	var docs []source.Document

	startAt := 0
	for {
		page, err := c.search(ctx, collectionID, startAt)
		if err != nil {
			return nil, err
		}

		for _, is := range page.Issues {
			content := is.Fields.Summary
			if is.Fields.Description != "" {
				content += "\n\n" + is.Fields.Description
			}
			docs = append(docs, source.Document{
				Path:    fmt.Sprintf("issues/%s.txt", is.Key),
				Title:   is.Fields.Summary,
				Content: content,
			})
		}

		startAt += len(page.Issues)
		if startAt >= page.Total || len(page.Issues) == 0 {
			break
		}
	}

	return docs, nil
}

func (c *Client) search(ctx context.Context, projectKey string, startAt int) (*searchResponse, error) {
	jql := fmt.Sprintf("project = %q ORDER BY updated DESC", projectKey)
	u := fmt.Sprintf("%s/rest/api/2/search?jql=%s&fields=summary,description&maxResults=%d&startAt=%d",
		c.BaseURL, url.QueryEscape(jql), searchPageSize, startAt)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.Email != "" || c.Token != "" {
		req.SetBasicAuth(c.Email, c.Token)
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

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}
