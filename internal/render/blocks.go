// Package render turns a finalized briefing payload into its two output
// representations: Notion blocks and a markdown mirror.
package render

import (
	"strings"

	"github.com/artemisiagab/skill-sport-briefing/internal/domain"
	"github.com/artemisiagab/skill-sport-briefing/internal/notion"
)

const newsHeading = "Top news"

// Blocks converts the payload into a flat block list ready to append as page
// children: intro paragraph, then per section a heading, the event table and
// an optional news list.
func Blocks(payload domain.Payload) []notion.Block {
	var children []notion.Block

	if payload.Intro != "" {
		children = append(children, notion.ParagraphText(payload.Intro))
	}

	for _, sec := range payload.Sections {
		children = append(children, notion.Heading2(sec.Title))
		children = append(children, notion.TableBlock(sec.Table.Header, sec.Table.Rows))

		if len(sec.News) == 0 {
			continue
		}
		children = append(children, notion.Heading3(newsHeading))
		for _, item := range sec.News {
			children = append(children, newsParagraph(item))
		}
	}
	return children
}

// newsParagraph renders one news item as a single paragraph: the linked title
// followed by the recap.
func newsParagraph(item domain.NewsItem) notion.Block {
	rich := notion.RichTextLink(item.Title, item.Link)
	if recap := strings.TrimSpace(item.Recap); recap != "" {
		rich = append(rich, map[string]any{
			"type": "text",
			"text": map[string]any{"content": " — " + recap},
		})
	}
	return notion.Paragraph(rich)
}
