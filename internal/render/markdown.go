package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/artemisiagab/skill-sport-briefing/internal/domain"
)

// Markdown renders the payload as the daily markdown mirror of the Notion
// page: H1 title, intro, then per section an H2, a pipe table and the news
// list with linked titles.
func Markdown(payload domain.Payload) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("# %s\n", payload.PageTitle))
	if payload.Intro != "" {
		lines = append(lines, payload.Intro+"\n")
	}

	for _, sec := range payload.Sections {
		lines = append(lines, fmt.Sprintf("## %s\n", sec.Title))

		if len(sec.Table.Header) > 0 {
			lines = append(lines, "| "+strings.Join(sec.Table.Header, " | ")+" |")
			seps := make([]string, len(sec.Table.Header))
			for i := range seps {
				seps[i] = "---"
			}
			lines = append(lines, "| "+strings.Join(seps, " | ")+" |")
			for _, row := range sec.Table.Rows {
				lines = append(lines, "| "+strings.Join(row, " | ")+" |")
			}
			lines = append(lines, "")
		}

		if len(sec.News) == 0 {
			continue
		}
		lines = append(lines, "### "+newsHeading+"\n")
		for _, item := range sec.News {
			line := fmt.Sprintf("[%s](%s)", item.Title, item.Link)
			if recap := strings.TrimSpace(item.Recap); recap != "" {
				line += " — " + recap
			}
			lines = append(lines, line+"\n")
		}
	}

	return strings.Join(lines, "\n")
}

// WriteMarkdown renders the payload and writes it to path, creating parent
// directories.
func WriteMarkdown(payload domain.Payload, path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create markdown directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(Markdown(payload)), 0o644); err != nil {
		return fmt.Errorf("write markdown file: %w", err)
	}
	return nil
}
