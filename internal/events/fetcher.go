// Package events builds the per-topic schedule tables from the event provider.
package events

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/artemisiagab/skill-sport-briefing/internal/domain"
	"github.com/artemisiagab/skill-sport-briefing/internal/humanize"
	"github.com/artemisiagab/skill-sport-briefing/internal/logger"
	"github.com/artemisiagab/skill-sport-briefing/internal/sofascore"
)

const (
	matchRowLimit   = 2
	sessionRowLimit = 30
	// Weekends that started this many days ago can still be in progress.
	staleStageWindow = 7 * 24 * time.Hour
	stageProbeLimit  = 10
)

// volleyMajor keeps only major international competitions, no friendlies.
var volleyMajor = regexp.MustCompile(`(?i)VNL|Nations League|World Championship|World Cup|European Championship|Euro`)

// Provider is the event-provider surface the fetcher needs; satisfied by
// sofascore.Client and stubbed in tests.
type Provider interface {
	TeamNextEvents(ctx context.Context, teamID int) ([]sofascore.Event, error)
	TeamLastEvents(ctx context.Context, teamID int) ([]sofascore.Event, error)
	SearchStages(ctx context.Context, query string) ([]sofascore.Stage, error)
	StageDetails(ctx context.Context, stageID int) (sofascore.Stage, error)
	StageSubstages(ctx context.Context, stageID int) ([]sofascore.Stage, error)
}

// Fetcher turns provider data into section titles and tables.
type Fetcher struct {
	provider Provider
	loc      *time.Location
}

// NewFetcher wires a fetcher against the given provider and briefing timezone.
func NewFetcher(provider Provider, loc *time.Location) *Fetcher {
	if loc == nil {
		loc = time.UTC
	}
	return &Fetcher{provider: provider, loc: loc}
}

// FetchSection produces the section title and table for one topic. A provider
// failure degrades to a header-only table; it never aborts the run.
func (f *Fetcher) FetchSection(ctx context.Context, topic domain.Topic, now time.Time) (string, domain.Table) {
	title := topic.Title
	table := domain.Table{Header: topic.Header, Rows: [][]string{}}

	var err error
	switch topic.Kind {
	case domain.KindFootball:
		table.Rows, err = f.matchRows(ctx, topic, now, false)
	case domain.KindTennis:
		table.Rows, err = f.matchRows(ctx, topic, now, true)
		if err == nil && len(table.Rows) == 0 {
			table.Rows = [][]string{{"No upcoming match found", "", "", ""}}
		}
	case domain.KindVolleyball:
		table.Rows, err = f.volleyRows(ctx, topic, now)
		if err == nil && len(table.Rows) == 0 {
			table.Rows = [][]string{{"No major events found (VNL/Euros/Worlds)", "", "", ""}}
		}
	case domain.KindMotorsport:
		title, table.Rows, err = f.motorsportSection(ctx, topic, now)
	default:
		err = fmt.Errorf("unknown topic kind %q", topic.Kind)
	}

	if err != nil {
		logger.WarnObj("topic events degraded to empty table", "topic_events_error", map[string]any{
			"topic_id": string(topic.ID),
			"error":    err.Error(),
		})
		return topic.Title, domain.Table{Header: topic.Header, Rows: [][]string{}}
	}
	return title, table
}

// matchRows fetches and renders fixture rows for football, tennis and
// volleyball style topics.
func (f *Fetcher) matchRows(ctx context.Context, topic domain.Topic, now time.Time, lastFallback bool) ([][]string, error) {
	evs, err := f.upcomingEvents(ctx, topic.TeamID, now, lastFallback)
	if err != nil {
		return nil, err
	}
	return f.renderMatches(evs, now), nil
}

// volleyRows applies the major-competition filter before rendering.
func (f *Fetcher) volleyRows(ctx context.Context, topic domain.Topic, now time.Time) ([][]string, error) {
	evs, err := f.upcomingEvents(ctx, topic.TeamID, now, false)
	if err != nil {
		return nil, err
	}
	major := evs[:0]
	for _, e := range evs {
		if !strings.EqualFold(e.CategoryName(), "international") {
			continue
		}
		if !volleyMajor.MatchString(e.CompetitionName()) {
			continue
		}
		major = append(major, e)
	}
	return f.renderMatches(major, now), nil
}

// upcomingEvents returns future-or-current fixtures sorted ascending with a
// deterministic tie-break on the match label.
func (f *Fetcher) upcomingEvents(ctx context.Context, teamID int, now time.Time, lastFallback bool) ([]sofascore.Event, error) {
	evs, err := f.provider.TeamNextEvents(ctx, teamID)
	if (err != nil || len(evs) == 0) && lastFallback {
		// Some entities only expose upcoming fixtures via the last-events page.
		evs, err = f.provider.TeamLastEvents(ctx, teamID)
	}
	if err != nil {
		return nil, err
	}

	upcoming := make([]sofascore.Event, 0, len(evs))
	for _, e := range evs {
		if !isUpcoming(e, now) {
			continue
		}
		upcoming = append(upcoming, e)
	}
	sortEvents(upcoming)
	return upcoming, nil
}

func isUpcoming(e sofascore.Event, now time.Time) bool {
	if e.StatusType() == "inprogress" {
		return true
	}
	return e.StartTimestamp >= now.Unix() && e.StatusType() != "finished"
}

func sortEvents(evs []sofascore.Event) {
	sort.SliceStable(evs, func(i, j int) bool {
		if evs[i].StartTimestamp != evs[j].StartTimestamp {
			return evs[i].StartTimestamp < evs[j].StartTimestamp
		}
		return matchLabel(evs[i]) < matchLabel(evs[j])
	})
}

func matchLabel(e sofascore.Event) string {
	home, away := "?", "?"
	if e.HomeTeam != nil && e.HomeTeam.Name != "" {
		home = e.HomeTeam.Name
	}
	if e.AwayTeam != nil && e.AwayTeam.Name != "" {
		away = e.AwayTeam.Name
	}
	return home + " - " + away
}

func (f *Fetcher) renderMatches(evs []sofascore.Event, now time.Time) [][]string {
	if len(evs) > matchRowLimit {
		evs = evs[:matchRowLimit]
	}
	rows := make([][]string, 0, len(evs))
	for _, e := range evs {
		when := ""
		if e.StartTimestamp > 0 {
			when = f.when(e.StartTimestamp, now)
		}
		round := ""
		if e.RoundInfo != nil && e.RoundInfo.Round > 0 {
			round = strconv.Itoa(e.RoundInfo.Round)
		}
		rows = append(rows, []string{matchLabel(e), when, e.CompetitionName(), round})
	}
	return rows
}

// motorsportSection resolves the current-or-next race weekend and renders its
// session rows. The title carries the weekend framing.
func (f *Fetcher) motorsportSection(ctx context.Context, topic domain.Topic, now time.Time) (string, [][]string, error) {
	stage, framing, err := f.findWeekend(ctx, topic, now)
	if err != nil {
		return "", nil, err
	}

	subs, err := f.provider.StageSubstages(ctx, stage.ID)
	if err != nil {
		return "", nil, fmt.Errorf("stage %d substages: %w", stage.ID, err)
	}
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].StartUnix() != subs[j].StartUnix() {
			return subs[i].StartUnix() < subs[j].StartUnix()
		}
		return subs[i].DisplayName() < subs[j].DisplayName()
	})

	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		ts := s.StartUnix()
		if ts == 0 {
			continue
		}
		typ := ""
		if s.Type != nil {
			typ = s.Type.Name
		}
		rows = append(rows, []string{s.DisplayName(), typ, f.when(ts, now)})
		if len(rows) >= sessionRowLimit {
			break
		}
	}

	title := fmt.Sprintf("%s — %s (%s weekend sessions)", topic.Title, stage.DisplayName(), framing)
	return title, rows, nil
}

// findWeekend picks the in-progress weekend when now falls inside one,
// otherwise the nearest future weekend. Search results carry no status, so a
// small candidate window is probed for details.
func (f *Fetcher) findWeekend(ctx context.Context, topic domain.Topic, now time.Time) (sofascore.Stage, string, error) {
	query := "motogp"
	if topic.ID == domain.TopicF1 {
		query = "formula 1"
	}

	found, err := f.provider.SearchStages(ctx, query)
	if err != nil {
		return sofascore.Stage{}, "", fmt.Errorf("search stages for %s: %w", topic.ID, err)
	}

	candidates := make([]sofascore.Stage, 0, len(found))
	cutoff := now.Add(-staleStageWindow).Unix()
	for _, s := range found {
		if !stageMatchesSeries(s, topic.ID) {
			continue
		}
		if s.StartUnix() == 0 || s.StartUnix() < cutoff {
			continue
		}
		candidates = append(candidates, s)
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].StartUnix() < candidates[j].StartUnix() })
	if len(candidates) > stageProbeLimit {
		candidates = candidates[:stageProbeLimit]
	}
	if len(candidates) == 0 {
		return sofascore.Stage{}, "", fmt.Errorf("no %s weekend found", topic.ID)
	}

	var next *sofascore.Stage
	for i := range candidates {
		det, err := f.provider.StageDetails(ctx, candidates[i].ID)
		if err != nil {
			continue
		}
		if inWeekendSpan(det, now) {
			return det, "current", nil
		}
		if det.StatusType() == "notstarted" && next == nil {
			probe := det
			next = &probe
		}
	}
	if next != nil {
		return *next, "next", nil
	}
	// Probes all failed; fall back to the earliest candidate.
	return candidates[0], "next", nil
}

func stageMatchesSeries(s sofascore.Stage, id domain.TopicID) bool {
	cat := ""
	if s.Category != nil {
		cat = strings.ToLower(s.Category.Name)
	}
	switch id {
	case domain.TopicF1:
		return strings.Contains(cat, "formula")
	case domain.TopicMotoGP:
		return strings.Contains(cat, "motogp")
	}
	return false
}

// inWeekendSpan reports whether now falls inside the weekend's session span.
func inWeekendSpan(s sofascore.Stage, now time.Time) bool {
	if s.StatusType() == "inprogress" {
		return true
	}
	if s.StartUnix() == 0 || s.EndDateTimestamp == 0 {
		return false
	}
	return s.StartUnix() <= now.Unix() && now.Unix() <= s.EndDateTimestamp
}

func (f *Fetcher) when(ts int64, now time.Time) string {
	return humanize.When(time.Unix(ts, 0).In(f.loc), now.In(f.loc))
}
