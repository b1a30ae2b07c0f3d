package briefing

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/artemisiagab/skill-sport-briefing/internal/domain"
)

func gatherClock(t *testing.T) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	return time.Date(2026, time.March, 2, 8, 0, 0, 0, loc)
}

func TestAssembleKeepsEnumerationOrder(t *testing.T) {
	now := gatherClock(t)

	// Feed inputs in reverse order to prove ordering is fixed by the enumeration.
	topics := domain.Topics()
	inputs := make([]SectionInput, 0, len(topics))
	for i := len(topics) - 1; i >= 0; i-- {
		inputs = append(inputs, SectionInput{
			Topic: topics[i],
			Title: topics[i].Title,
			Table: domain.Table{Header: topics[i].Header, Rows: [][]string{}},
		})
	}

	payload := Assemble(inputs, now)

	if payload.PageTitle != "Riepilogo Sportivo Giornaliero del 2026-03-02" {
		t.Fatalf("unexpected page title: %q", payload.PageTitle)
	}
	if payload.Intro == "" {
		t.Fatalf("intro must not be empty")
	}
	if len(payload.Sections) != len(topics) {
		t.Fatalf("expected %d sections, got %d", len(topics), len(payload.Sections))
	}
	for i, sec := range payload.Sections {
		if sec.ID != topics[i].ID {
			t.Fatalf("section %d is %q, want %q", i, sec.ID, topics[i].ID)
		}
		if sec.News == nil || len(sec.News) != 0 {
			t.Fatalf("gathered sections must start with an empty news list")
		}
	}
}

func TestAssembleFillsMissingTopics(t *testing.T) {
	now := gatherClock(t)
	payload := Assemble(nil, now)

	if len(payload.Sections) != len(domain.Topics()) {
		t.Fatalf("missing inputs must still yield all sections")
	}
	for _, sec := range payload.Sections {
		if len(sec.Table.Header) == 0 {
			t.Fatalf("section %q lost its header", sec.ID)
		}
		if len(sec.Table.Rows) != 0 {
			t.Fatalf("section %q should be header-only", sec.ID)
		}
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	now := gatherClock(t)
	payload := Assemble([]SectionInput{{
		Topic: domain.Topics()[0],
		Title: "Fiorentina",
		Table: domain.Table{Header: []string{"Match", "When", "Competition", "Round"},
			Rows: [][]string{{"Fiorentina - Lecce", "Tomorrow at 20:45 (Tue 03.Mar)", "Serie A", "27"}}},
		Candidates: []domain.NewsCandidate{{Title: "t", Link: "https://example.com/a"}},
	}}, now)

	path := filepath.Join(t.TempDir(), "nested", "briefing.json")
	if err := Save(payload, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved payload: %v", err)
	}
	if !strings.Contains(string(raw), `"pageTitle"`) || !strings.Contains(string(raw), `"candidates"`) {
		t.Fatalf("payload JSON missing contract keys: %s", raw)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.PageTitle != payload.PageTitle || len(loaded.Sections) != len(payload.Sections) {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
	if loaded.Sections[0].Table.Rows[0][1] != "Tomorrow at 20:45 (Tue 03.Mar)" {
		t.Fatalf("table rows did not survive the round trip")
	}
}

func finalizedFixture() domain.Payload {
	sections := make([]domain.Section, 0, len(domain.Topics()))
	for _, topic := range domain.Topics() {
		sections = append(sections, domain.Section{
			ID:    topic.ID,
			Title: topic.Title,
			Table: domain.Table{Header: topic.Header, Rows: [][]string{}},
			News:  []domain.NewsItem{},
		})
	}
	return domain.Payload{
		PageTitle: PageTitle("2026-03-02"),
		Intro:     "intro",
		Sections:  sections,
	}
}

func TestValidateFinalizedAccepts(t *testing.T) {
	payload := finalizedFixture()
	payload.Sections[0].News = []domain.NewsItem{
		{Title: "a", Link: "https://example.com/a", Recap: "Recap."},
		{Title: "b", Link: "https://example.com/b", Recap: "Recap."},
		{Title: "c", Link: "https://example.com/c", Recap: "Recap."},
		{Title: "d", Link: "https://example.com/d", Recap: "Recap."},
	}
	if err := ValidateFinalized(payload); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
}

func TestValidateFinalizedRejectsTooManyNews(t *testing.T) {
	payload := finalizedFixture()
	for i := 0; i < 5; i++ {
		payload.Sections[2].News = append(payload.Sections[2].News,
			domain.NewsItem{Title: "t", Link: "https://example.com", Recap: "r"})
	}
	err := ValidateFinalized(payload)
	if !errors.Is(err, ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestValidateFinalizedRejectsWrongSectionOrder(t *testing.T) {
	payload := finalizedFixture()
	payload.Sections[0], payload.Sections[1] = payload.Sections[1], payload.Sections[0]
	if !errors.Is(ValidateFinalized(payload), ErrSchemaViolation) {
		t.Fatalf("swapped sections must be rejected")
	}
}

func TestValidateFinalizedRejectsMissingSection(t *testing.T) {
	payload := finalizedFixture()
	payload.Sections = payload.Sections[:len(payload.Sections)-1]
	if !errors.Is(ValidateFinalized(payload), ErrSchemaViolation) {
		t.Fatalf("missing section must be rejected")
	}
}

func TestValidateFinalizedRejectsEmptyLink(t *testing.T) {
	payload := finalizedFixture()
	payload.Sections[0].News = []domain.NewsItem{{Title: "t", Link: " ", Recap: "r"}}
	if !errors.Is(ValidateFinalized(payload), ErrSchemaViolation) {
		t.Fatalf("empty link must be rejected")
	}
}

func TestValidateFinalizedRejectsRaggedTable(t *testing.T) {
	payload := finalizedFixture()
	payload.Sections[0].Table.Rows = [][]string{{"only one cell"}}
	if !errors.Is(ValidateFinalized(payload), ErrSchemaViolation) {
		t.Fatalf("ragged table row must be rejected")
	}
}
