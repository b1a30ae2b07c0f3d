// Package news collects per-topic candidate lists from the configured feeds.
// Relevance filtering here is deliberately permissive: the final judgment is
// delegated to the external selection step.
package news

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/artemisiagab/skill-sport-briefing/internal/domain"
	"github.com/artemisiagab/skill-sport-briefing/internal/logger"
	"github.com/artemisiagab/skill-sport-briefing/pkg/httpclient"
	"github.com/mmcdole/gofeed"
)

const perFeedLimit = 60

// SourceKind selects the retrieval strategy for a source.
type SourceKind string

const (
	SourceRSS  SourceKind = "rss"
	SourceHTML SourceKind = "html"
)

// Source is one configured news origin.
type Source struct {
	Key  string
	URL  string
	Kind SourceKind
}

// sources is the fixed feed list, keyed for topic lookup.
var sources = map[string]Source{
	domain.FeedSerieA:  {Key: domain.FeedSerieA, URL: "https://www.gazzetta.it/dynamic-feed/rss/section/Calcio/Serie-A.xml", Kind: SourceRSS},
	domain.FeedTennis:  {Key: domain.FeedTennis, URL: "https://www.gazzetta.it/dynamic-feed/rss/section/Tennis.xml", Kind: SourceRSS},
	domain.FeedMotoGP:  {Key: domain.FeedMotoGP, URL: "https://www.gazzetta.it/dynamic-feed/rss/section/Moto/moto-GP.xml", Kind: SourceRSS},
	domain.FeedF1:      {Key: domain.FeedF1, URL: "https://www.gazzetta.it/dynamic-feed/rss/section/Formula-1.xml", Kind: SourceRSS},
	domain.FeedF1Extra: {Key: domain.FeedF1Extra, URL: "https://www.formulapassion.it/f1/f1-news", Kind: SourceHTML},
}

// SourceByKey returns the configured source for a feed key.
func SourceByKey(key string) (Source, bool) {
	s, ok := sources[key]
	return s, ok
}

// Fetcher retrieves and normalizes feed entries.
type Fetcher struct {
	client httpclient.Client
	parser *gofeed.Parser
}

// NewFetcher builds a fetcher. A nil client gets a resty default.
func NewFetcher(client httpclient.Client) *Fetcher {
	if client == nil {
		client = httpclient.NewRestyClient(30 * time.Second)
	}
	return &Fetcher{client: client, parser: gofeed.NewParser()}
}

// FetchSource retrieves one source and maps its entries to candidates.
func (f *Fetcher) FetchSource(ctx context.Context, src Source) ([]domain.NewsCandidate, error) {
	body, err := f.get(ctx, src)
	if err != nil {
		return nil, err
	}
	if src.Kind == SourceHTML {
		return parseArticleLinks(src, body)
	}
	return f.parseFeed(src, body)
}

// ForTopic builds the candidate list for a topic: merge its sources, filter by
// keywords, de-duplicate by link, sort newest first, cap. A failing source
// degrades to nothing for that source only.
func (f *Fetcher) ForTopic(ctx context.Context, topic domain.Topic) []domain.NewsCandidate {
	var merged []domain.NewsCandidate
	for _, key := range topic.Feeds {
		src, ok := SourceByKey(key)
		if !ok {
			logger.WarnObj("unknown feed key for topic", "feed_key", key)
			continue
		}
		items, err := f.FetchSource(ctx, src)
		if err != nil {
			logger.WarnObj("feed source degraded to empty", "feed_source_error", map[string]any{
				"topic_id": string(topic.ID),
				"source":   src.Key,
				"error":    err.Error(),
			})
			continue
		}
		merged = append(merged, items...)
	}

	out := filterByKeywords(merged, topic.Keywords)
	out = dedupeByLink(out)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	if topic.NewsCap > 0 && len(out) > topic.NewsCap {
		out = out[:topic.NewsCap]
	}
	return out
}

func (f *Fetcher) get(ctx context.Context, src Source) ([]byte, error) {
	resp, err := f.client.Get(ctx, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch source %s: %w", src.Key, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("source %s returned status %d", src.Key, resp.StatusCode())
	}
	return resp.Body(), nil
}

func (f *Fetcher) parseFeed(src Source, body []byte) ([]domain.NewsCandidate, error) {
	feed, err := f.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", src.Key, err)
	}

	items := feed.Items
	if len(items) > perFeedLimit {
		items = items[:perFeedLimit]
	}
	out := make([]domain.NewsCandidate, 0, len(items))
	for _, item := range items {
		title := stripHTML(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}
		cand := domain.NewsCandidate{
			Title:   title,
			Link:    link,
			Summary: stripHTML(item.Description),
			Source:  src.Key,
		}
		if item.PublishedParsed != nil {
			cand.PublishedAt = *item.PublishedParsed
		}
		out = append(out, cand)
	}
	return out, nil
}

func filterByKeywords(items []domain.NewsCandidate, keywords []string) []domain.NewsCandidate {
	if len(keywords) == 0 {
		return items
	}
	out := make([]domain.NewsCandidate, 0, len(items))
	for _, item := range items {
		hay := strings.ToLower(item.Title + " " + item.Summary)
		for _, kw := range keywords {
			if strings.Contains(hay, strings.ToLower(kw)) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func dedupeByLink(items []domain.NewsCandidate) []domain.NewsCandidate {
	seen := make(map[string]bool, len(items))
	out := make([]domain.NewsCandidate, 0, len(items))
	for _, item := range items {
		if seen[item.Link] {
			continue
		}
		seen[item.Link] = true
		out = append(out, item)
	}
	return out
}

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// stripHTML flattens feed markup into plain text.
func stripHTML(s string) string {
	s = html.UnescapeString(s)
	s = tagPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
