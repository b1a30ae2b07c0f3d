// Package briefing assembles, persists and validates the briefing payloads
// exchanged with the external selection step.
package briefing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/artemisiagab/skill-sport-briefing/internal/domain"
)

const (
	pageTitlePrefix = "Riepilogo Sportivo Giornaliero del"
	introText       = "Riepilogo automatico (eventi + notizie selezionate)."
)

// PageTitle builds the daily document title for the given reference date.
func PageTitle(date string) string {
	return fmt.Sprintf("%s %s", pageTitlePrefix, date)
}

// SectionInput is one topic's gathered data ready for assembly.
type SectionInput struct {
	Topic      domain.Topic
	Title      string
	Table      domain.Table
	Candidates []domain.NewsCandidate
}

// Assemble composes the gathered payload from per-topic results. Inputs may
// arrive in any order; sections are emitted in topic enumeration order.
func Assemble(inputs []SectionInput, now time.Time) domain.Payload {
	byID := make(map[domain.TopicID]SectionInput, len(inputs))
	for _, in := range inputs {
		byID[in.Topic.ID] = in
	}

	date := now.Format("2006-01-02")
	payload := domain.Payload{
		GeneratedAt: now.UTC(),
		Date:        date,
		Timezone:    now.Location().String(),
		PageTitle:   PageTitle(date),
		Intro:       introText,
		Sections:    make([]domain.Section, 0, len(domain.Topics())),
	}

	for _, topic := range domain.Topics() {
		in, ok := byID[topic.ID]
		if !ok {
			// A topic with no result at all still gets its section.
			in = SectionInput{Topic: topic, Title: topic.Title, Table: domain.Table{Header: topic.Header, Rows: [][]string{}}}
		}
		title := in.Title
		if title == "" {
			title = topic.Title
		}
		payload.Sections = append(payload.Sections, domain.Section{
			ID:         topic.ID,
			Title:      title,
			Table:      in.Table,
			Candidates: in.Candidates,
			News:       []domain.NewsItem{},
		})
	}
	return payload
}

// Save writes the payload JSON to path, creating parent directories.
func Save(payload domain.Payload, path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create payload directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write payload file: %w", err)
	}
	return nil
}

// Load reads a payload JSON file (gathered or finalized).
func Load(path string) (domain.Payload, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("read payload file: %w", err)
	}
	var payload domain.Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.Payload{}, fmt.Errorf("decode payload file %s: %w", path, err)
	}
	return payload, nil
}
