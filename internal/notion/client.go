package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/artemisiagab/skill-sport-briefing/pkg/httpclient"
	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"

	// APIVersion is sent in the Notion-Version header on every call.
	APIVersion = "2022-06-28"

	findPageSize     = 5
	childrenPageSize = 100
)

// Page is the subset of a Notion page object the publisher needs.
type Page struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// PageStore is the remote surface the publisher drives. Implemented by Client;
// faked in tests.
type PageStore interface {
	FindPageByTitle(ctx context.Context, title string) (*Page, error)
	CreatePage(ctx context.Context, title string) (*Page, error)
	EnsureCategory(ctx context.Context, pageID string) error
	ListChildren(ctx context.Context, pageID string) ([]string, error)
	DeleteBlock(ctx context.Context, blockID string) error
	AppendChildren(ctx context.Context, pageID string, children []Block) error
}

// Client calls the Notion REST API for a single database.
type Client struct {
	http       *resty.Client
	baseURL    string
	databaseID string
	category   string
}

// NewClient builds an API client bound to one database. Pages it creates are
// tagged with the given multi-select category.
func NewClient(token, databaseID, category string, timeout time.Duration) *Client {
	c := httpclient.NewRestyHTTPClient(timeout)
	c.SetHeader("Authorization", "Bearer "+strings.TrimSpace(token))
	c.SetHeader("Notion-Version", APIVersion)
	return &Client{
		http:       c,
		baseURL:    defaultBaseURL,
		databaseID: databaseID,
		category:   category,
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

// FindPageByTitle queries the database for an exact title match. Returns
// (nil, nil) when no page matches.
func (c *Client) FindPageByTitle(ctx context.Context, title string) (*Page, error) {
	body := map[string]any{
		"filter": map[string]any{
			"property": "Doc name",
			"title":    map[string]any{"equals": title},
		},
		"page_size": findPageSize,
	}

	var out struct {
		Results []Page `json:"results"`
	}
	if err := c.call(ctx, "POST", fmt.Sprintf("databases/%s/query", c.databaseID), body, &out); err != nil {
		return nil, fmt.Errorf("query database: %w", err)
	}
	if len(out.Results) == 0 {
		return nil, nil
	}
	return &out.Results[0], nil
}

// CreatePage creates a page in the database with the given title and the
// configured category tag.
func (c *Client) CreatePage(ctx context.Context, title string) (*Page, error) {
	body := map[string]any{
		"parent": map[string]any{"database_id": c.databaseID},
		"properties": map[string]any{
			"Doc name": map[string]any{"title": RichText(title)},
			"Category": map[string]any{
				"multi_select": []map[string]any{{"name": c.category}},
			},
		},
	}

	var page Page
	if err := c.call(ctx, "POST", "pages", body, &page); err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return &page, nil
}

// EnsureCategory re-asserts the configured category tag on an existing page,
// restoring it when it was removed or edited away.
func (c *Client) EnsureCategory(ctx context.Context, pageID string) error {
	body := map[string]any{
		"properties": map[string]any{
			"Category": map[string]any{
				"multi_select": []map[string]any{{"name": c.category}},
			},
		},
	}
	if err := c.call(ctx, "PATCH", "pages/"+pageID, body, nil); err != nil {
		return fmt.Errorf("update page category: %w", err)
	}
	return nil
}

// ListChildren returns the ids of the page's direct child blocks, following
// the cursor across result pages.
func (c *Client) ListChildren(ctx context.Context, pageID string) ([]string, error) {
	var ids []string
	cursor := ""
	for {
		var out struct {
			Results []struct {
				ID string `json:"id"`
			} `json:"results"`
			HasMore    bool   `json:"has_more"`
			NextCursor string `json:"next_cursor"`
		}
		path := fmt.Sprintf("blocks/%s/children?page_size=%d", pageID, childrenPageSize)
		if cursor != "" {
			path += "&start_cursor=" + url.QueryEscape(cursor)
		}
		if err := c.call(ctx, "GET", path, nil, &out); err != nil {
			return nil, fmt.Errorf("list children: %w", err)
		}

		for _, b := range out.Results {
			if b.ID != "" {
				ids = append(ids, b.ID)
			}
		}
		if !out.HasMore || out.NextCursor == "" {
			return ids, nil
		}
		cursor = out.NextCursor
	}
}

// DeleteBlock archives one block.
func (c *Client) DeleteBlock(ctx context.Context, blockID string) error {
	if err := c.call(ctx, "DELETE", "blocks/"+blockID, nil, nil); err != nil {
		return fmt.Errorf("delete block %s: %w", blockID, err)
	}
	return nil
}

// AppendChildren appends the given blocks to the page.
func (c *Client) AppendChildren(ctx context.Context, pageID string, children []Block) error {
	body := map[string]any{"children": children}
	if err := c.call(ctx, "PATCH", fmt.Sprintf("blocks/%s/children", pageID), body, nil); err != nil {
		return fmt.Errorf("append children: %w", err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(body)
	}

	resp, err := req.Execute(method, c.baseURL+"/"+path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode(), bodySnippet(resp.Body()))
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}

func bodySnippet(body []byte) string {
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
