package events

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/artemisiagab/skill-sport-briefing/internal/domain"
	"github.com/artemisiagab/skill-sport-briefing/internal/sofascore"
)

type stubProvider struct {
	next      []sofascore.Event
	nextErr   error
	last      []sofascore.Event
	lastErr   error
	stages    []sofascore.Stage
	searchErr error
	details   map[int]sofascore.Stage
	substages map[int][]sofascore.Stage
}

func (s *stubProvider) TeamNextEvents(context.Context, int) ([]sofascore.Event, error) {
	return s.next, s.nextErr
}

func (s *stubProvider) TeamLastEvents(context.Context, int) ([]sofascore.Event, error) {
	return s.last, s.lastErr
}

func (s *stubProvider) SearchStages(context.Context, string) ([]sofascore.Stage, error) {
	return s.stages, s.searchErr
}

func (s *stubProvider) StageDetails(_ context.Context, id int) (sofascore.Stage, error) {
	st, ok := s.details[id]
	if !ok {
		return sofascore.Stage{}, errors.New("no such stage")
	}
	return st, nil
}

func (s *stubProvider) StageSubstages(_ context.Context, id int) ([]sofascore.Stage, error) {
	return s.substages[id], nil
}

func fixture(home, away, comp string, round int, start time.Time) sofascore.Event {
	return sofascore.Event{
		HomeTeam:       &sofascore.Team{Name: home},
		AwayTeam:       &sofascore.Team{Name: away},
		Tournament:     &sofascore.Tournament{UniqueTournament: &sofascore.UniqueTournament{Name: comp}},
		RoundInfo:      &sofascore.RoundInfo{Round: round},
		Status:         &sofascore.Status{Type: "notstarted"},
		StartTimestamp: start.Unix(),
	}
}

func testClock(t *testing.T) (time.Time, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	return time.Date(2026, time.March, 2, 8, 0, 0, 0, loc), loc
}

func mustTopic(t *testing.T, id domain.TopicID) domain.Topic {
	t.Helper()
	topic, ok := domain.TopicByID(id)
	if !ok {
		t.Fatalf("topic %s not found", id)
	}
	return topic
}

func TestFetchSectionFootball(t *testing.T) {
	now, loc := testClock(t)
	provider := &stubProvider{next: []sofascore.Event{
		fixture("Fiorentina", "Juventus", "Serie A", 28, now.AddDate(0, 0, 9)),
		fixture("Fiorentina", "Lecce", "Serie A", 27, now.Add(36*time.Hour)),
		fixture("Roma", "Fiorentina", "Serie A", 26, now.AddDate(0, 0, -3)),
	}}

	title, table := NewFetcher(provider, loc).FetchSection(context.Background(), mustTopic(t, domain.TopicFiorentina), now)

	if title != "Fiorentina" {
		t.Fatalf("title = %q", title)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows (past filtered, limit applied), got %d", len(table.Rows))
	}
	if table.Rows[0][0] != "Fiorentina - Lecce" {
		t.Fatalf("rows not sorted ascending: %v", table.Rows[0])
	}
	if !strings.HasPrefix(table.Rows[0][1], "Tomorrow at 20:00") {
		t.Fatalf("unexpected when cell: %q", table.Rows[0][1])
	}
	if table.Rows[0][2] != "Serie A" || table.Rows[0][3] != "27" {
		t.Fatalf("unexpected competition/round: %v", table.Rows[0])
	}
}

func TestFetchSectionTieBreakIsLexical(t *testing.T) {
	now, loc := testClock(t)
	kick := now.Add(48 * time.Hour)
	provider := &stubProvider{next: []sofascore.Event{
		fixture("Milan", "Torino", "Serie A", 1, kick),
		fixture("Milan", "Atalanta", "Serie A", 1, kick),
	}}

	_, table := NewFetcher(provider, loc).FetchSection(context.Background(), mustTopic(t, domain.TopicMilan), now)

	if table.Rows[0][0] != "Milan - Atalanta" || table.Rows[1][0] != "Milan - Torino" {
		t.Fatalf("equal timestamps should order lexically, got %v then %v", table.Rows[0][0], table.Rows[1][0])
	}
}

func TestFetchSectionTennisFallsBackToLastEvents(t *testing.T) {
	now, loc := testClock(t)
	provider := &stubProvider{
		nextErr: errors.New("endpoint unavailable"),
		last: []sofascore.Event{
			fixture("Sinner", "Alcaraz", "ATP Finals", 0, now.Add(26 * time.Hour)),
			fixture("Sinner", "Medvedev", "ATP Finals", 0, now.AddDate(0, 0, -2)),
		},
	}

	_, table := NewFetcher(provider, loc).FetchSection(context.Background(), mustTopic(t, domain.TopicSinner), now)

	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 upcoming row from fallback, got %d", len(table.Rows))
	}
	if table.Rows[0][0] != "Sinner - Alcaraz" {
		t.Fatalf("unexpected row: %v", table.Rows[0])
	}
}

func TestFetchSectionVolleyballMajorFilter(t *testing.T) {
	now, loc := testClock(t)
	vnl := fixture("Italy", "Poland", "Nations League", 0, now.Add(72*time.Hour))
	vnl.Tournament.UniqueTournament.Category = &sofascore.Category{Name: "International"}
	friendly := fixture("Italy", "France", "Friendly Games", 0, now.Add(24*time.Hour))
	friendly.Tournament.UniqueTournament.Category = &sofascore.Category{Name: "International"}
	club := fixture("Italy", "Brazil", "Nations League", 0, now.Add(48*time.Hour))

	provider := &stubProvider{next: []sofascore.Event{vnl, friendly, club}}
	_, table := NewFetcher(provider, loc).FetchSection(context.Background(), mustTopic(t, domain.TopicVolleyMen), now)

	if len(table.Rows) != 1 {
		t.Fatalf("expected only the VNL fixture, got %v", table.Rows)
	}
	if table.Rows[0][0] != "Italy - Poland" {
		t.Fatalf("unexpected row: %v", table.Rows[0])
	}
}

func TestFetchSectionVolleyballPlaceholderWhenNoMajor(t *testing.T) {
	now, loc := testClock(t)
	provider := &stubProvider{}

	_, table := NewFetcher(provider, loc).FetchSection(context.Background(), mustTopic(t, domain.TopicVolleyWomen), now)

	if len(table.Rows) != 1 || !strings.Contains(table.Rows[0][0], "No major events") {
		t.Fatalf("expected placeholder row, got %v", table.Rows)
	}
}

func TestFetchSectionProviderFailureDegradesToEmptyTable(t *testing.T) {
	now, loc := testClock(t)
	provider := &stubProvider{nextErr: errors.New("timeout")}

	title, table := NewFetcher(provider, loc).FetchSection(context.Background(), mustTopic(t, domain.TopicFiorentina), now)

	if title != "Fiorentina" {
		t.Fatalf("title = %q", title)
	}
	if len(table.Header) != 4 || len(table.Rows) != 0 {
		t.Fatalf("expected header-only table, got %+v", table)
	}
}

func motorsportStage(id int, status string, start, end time.Time) sofascore.Stage {
	return sofascore.Stage{
		ID:                 id,
		Name:               "Qatar GP",
		Status:             &sofascore.Status{Type: status},
		Category:           &sofascore.Category{Name: "Formula 1"},
		StartDateTimestamp: start.Unix(),
		EndDateTimestamp:   end.Unix(),
	}
}

func session(name, typ string, start time.Time) sofascore.Stage {
	return sofascore.Stage{
		Name:               name,
		Type:               &sofascore.StageType{Name: typ},
		StartDateTimestamp: start.Unix(),
	}
}

func TestFetchSectionMotorsportCurrentWeekend(t *testing.T) {
	now, loc := testClock(t)
	stage := motorsportStage(900, "inprogress", now.Add(-24*time.Hour), now.Add(48*time.Hour))
	provider := &stubProvider{
		stages:  []sofascore.Stage{stage},
		details: map[int]sofascore.Stage{900: stage},
		substages: map[int][]sofascore.Stage{900: {
			session("Race", "Race", now.Add(47*time.Hour)),
			session("Practice 1", "Practice", now.Add(-23*time.Hour)),
		}},
	}

	title, table := NewFetcher(provider, loc).FetchSection(context.Background(), mustTopic(t, domain.TopicF1), now)

	if !strings.Contains(title, "current weekend") {
		t.Fatalf("expected current weekend framing, got %q", title)
	}
	if len(table.Rows) != 2 || table.Rows[0][0] != "Practice 1" {
		t.Fatalf("sessions not sorted ascending: %v", table.Rows)
	}
	if table.Rows[1][1] != "Race" {
		t.Fatalf("missing session type: %v", table.Rows[1])
	}
}

func TestFetchSectionMotorsportNextWeekend(t *testing.T) {
	now, loc := testClock(t)
	stage := motorsportStage(901, "notstarted", now.AddDate(0, 0, 10), now.AddDate(0, 0, 12))
	provider := &stubProvider{
		stages:    []sofascore.Stage{stage},
		details:   map[int]sofascore.Stage{901: stage},
		substages: map[int][]sofascore.Stage{901: {session("Race", "Race", now.AddDate(0, 0, 12))}},
	}

	title, _ := NewFetcher(provider, loc).FetchSection(context.Background(), mustTopic(t, domain.TopicF1), now)

	if !strings.Contains(title, "next weekend") {
		t.Fatalf("expected next weekend framing, got %q", title)
	}
	if !strings.Contains(title, "Qatar GP") {
		t.Fatalf("expected stage name in title, got %q", title)
	}
}
