package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/artemisiagab/skill-sport-briefing/internal/briefing"
	"github.com/artemisiagab/skill-sport-briefing/internal/config"
	"github.com/artemisiagab/skill-sport-briefing/internal/domain"
	"github.com/artemisiagab/skill-sport-briefing/internal/events"
	"github.com/artemisiagab/skill-sport-briefing/internal/news"
	"github.com/artemisiagab/skill-sport-briefing/internal/sofascore"
	"github.com/artemisiagab/skill-sport-briefing/internal/storage"
	"github.com/artemisiagab/skill-sport-briefing/pkg/httpclient"
)

// offlineProvider fails every call; each section degrades to its header.
type offlineProvider struct{}

func (offlineProvider) TeamNextEvents(context.Context, int) ([]sofascore.Event, error) {
	return nil, errors.New("offline")
}

func (offlineProvider) TeamLastEvents(context.Context, int) ([]sofascore.Event, error) {
	return nil, errors.New("offline")
}

func (offlineProvider) SearchStages(context.Context, string) ([]sofascore.Stage, error) {
	return nil, errors.New("offline")
}

func (offlineProvider) StageDetails(context.Context, int) (sofascore.Stage, error) {
	return sofascore.Stage{}, errors.New("offline")
}

func (offlineProvider) StageSubstages(context.Context, int) ([]sofascore.Stage, error) {
	return nil, errors.New("offline")
}

type offlineClient struct{}

func (offlineClient) Get(context.Context, string, map[string]string) (httpclient.Response, error) {
	return nil, errors.New("offline")
}

func newTestGatherer(t *testing.T) *Gatherer {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Timezone:     "Europe/Rome",
		BriefingPath: filepath.Join(dir, "briefing.json"),
	}

	archive, err := storage.NewStore("bbolt", filepath.Join(dir, "archive.db"), storage.Options{})
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}

	g := &Gatherer{
		cfg:     cfg,
		events:  events.NewFetcher(offlineProvider{}, cfg.Location()),
		news:    news.NewFetcher(offlineClient{}),
		archive: archive,
	}
	t.Cleanup(func() { g.Close() })
	return g
}

func TestGatherRunWritesPayloadAndArchive(t *testing.T) {
	g := newTestGatherer(t)

	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	payload, err := briefing.Load(g.cfg.BriefingPath)
	if err != nil {
		t.Fatalf("load gathered payload: %v", err)
	}
	if len(payload.Sections) != len(domain.Topics()) {
		t.Fatalf("expected a section per topic, got %d", len(payload.Sections))
	}

	archived, found, err := g.archive.Briefing(payload.Date)
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if !found {
		t.Fatalf("gathered payload missing from archive for %s", payload.Date)
	}
	if archived.PageTitle != payload.PageTitle {
		t.Fatalf("archived title %q, want %q", archived.PageTitle, payload.PageTitle)
	}
}

func TestGatherRerunReplacesSameDate(t *testing.T) {
	g := newTestGatherer(t)

	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	// The second run sees the archived entry for the same date and overwrites it.
	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}

	payload, err := briefing.Load(g.cfg.BriefingPath)
	if err != nil {
		t.Fatalf("load gathered payload: %v", err)
	}
	if _, found, err := g.archive.Briefing(payload.Date); err != nil || !found {
		t.Fatalf("archive entry after rerun: found=%v err=%v", found, err)
	}
}
