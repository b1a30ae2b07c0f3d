package news

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/artemisiagab/skill-sport-briefing/internal/domain"
)

const articleLinkLimit = 40

// parseArticleLinks extracts article links from an HTML news index page. Used
// for the extra F1 source, which has no feed. Entries carry no summary or
// publication time; they rank last after the feed-backed candidates.
func parseArticleLinks(src Source, body []byte) ([]domain.NewsCandidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s html: %w", src.Key, err)
	}

	out := make([]domain.NewsCandidate, 0, articleLinkLimit)
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if !strings.HasPrefix(href, "https://www.formulapassion.it/") || !strings.Contains(href, "/f1/") {
			return true
		}
		title := stripHTML(sel.Text())
		if title == "" || strings.Contains(strings.ToLower(title), "cookie") {
			return true
		}
		out = append(out, domain.NewsCandidate{Title: title, Link: href, Source: src.Key})
		return len(out) < articleLinkLimit
	})
	return out, nil
}
