// Package sofascore is a thin typed client for the upstream event provider.
package sofascore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/artemisiagab/skill-sport-briefing/pkg/httpclient"
)

const (
	defaultBaseURL = "https://api.sofascore.com/api/v1"
	// Motorsport substages are only served from the site host.
	defaultStageBaseURL = "https://www.sofascore.com/api/v1"
)

// Client fetches event data over the provider's public JSON API.
type Client struct {
	http         httpclient.Client
	baseURL      string
	stageBaseURL string
}

// NewClient builds a provider client. A nil http client gets a resty default.
func NewClient(http httpclient.Client) *Client {
	if http == nil {
		http = httpclient.NewRestyClient(30 * time.Second)
	}
	return &Client{http: http, baseURL: defaultBaseURL, stageBaseURL: defaultStageBaseURL}
}

// SetBaseURLs overrides the API hosts, used by tests.
func (c *Client) SetBaseURLs(api, stage string) {
	if api != "" {
		c.baseURL = api
	}
	if stage != "" {
		c.stageBaseURL = stage
	}
}

// TeamNextEvents returns the team's upcoming fixtures page 0.
func (c *Client) TeamNextEvents(ctx context.Context, teamID int) ([]Event, error) {
	var out eventsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/team/%d/events/next/0", c.baseURL, teamID), &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

// TeamLastEvents returns the team's most recent fixtures page 0. Some tennis
// entities expose upcoming matches only through this endpoint.
func (c *Client) TeamLastEvents(ctx context.Context, teamID int) ([]Event, error) {
	var out eventsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/team/%d/events/last/0", c.baseURL, teamID), &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

// SearchStages runs a free-text search and returns the stage entities found.
func (c *Client) SearchStages(ctx context.Context, query string) ([]Stage, error) {
	var out searchResponse
	u := fmt.Sprintf("%s/search/all?q=%s", c.baseURL, url.QueryEscape(query))
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	stages := make([]Stage, 0, len(out.Results))
	for _, r := range out.Results {
		if !strings.EqualFold(r.Type, "stage") {
			continue
		}
		stages = append(stages, r.Entity)
	}
	return stages, nil
}

// StageDetails fetches the full record for a race weekend.
func (c *Client) StageDetails(ctx context.Context, stageID int) (Stage, error) {
	var out stageResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/stage/%d", c.baseURL, stageID), &out); err != nil {
		return Stage{}, err
	}
	return out.Stage, nil
}

// StageSubstages lists the sessions of a race weekend.
func (c *Client) StageSubstages(ctx context.Context, stageID int) ([]Stage, error) {
	var out substagesResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/stage/%d/substages", c.stageBaseURL, stageID), &out); err != nil {
		return nil, err
	}
	return out.Stages, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	resp, err := c.http.Get(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("fetch %s: status %d body: %s", url, resp.StatusCode(), bodySnippet(resp.Body()))
	}
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

func bodySnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
