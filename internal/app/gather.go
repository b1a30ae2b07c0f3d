// Package app wires the configured components into the two pipeline stages:
// gathering the daily payload and publishing the finalized briefing.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/artemisiagab/skill-sport-briefing/internal/briefing"
	"github.com/artemisiagab/skill-sport-briefing/internal/config"
	"github.com/artemisiagab/skill-sport-briefing/internal/domain"
	"github.com/artemisiagab/skill-sport-briefing/internal/events"
	"github.com/artemisiagab/skill-sport-briefing/internal/logger"
	"github.com/artemisiagab/skill-sport-briefing/internal/news"
	"github.com/artemisiagab/skill-sport-briefing/internal/sofascore"
	"github.com/artemisiagab/skill-sport-briefing/internal/storage"
	"github.com/artemisiagab/skill-sport-briefing/pkg/httpclient"
)

// Gatherer fetches events and news for every topic and writes the gathered
// payload for the selection step.
type Gatherer struct {
	cfg     *config.Config
	events  *events.Fetcher
	news    *news.Fetcher
	archive storage.Store
}

// NewGatherer builds the gather runtime from config.
func NewGatherer(cfg *config.Config) (*Gatherer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}

	client := httpclient.NewRestyClient(cfg.HTTPTimeout)

	archive, err := storage.NewStore(cfg.ArchiveType, cfg.ArchivePath, storage.Options{
		BriefingTTL:     cfg.ArchiveTTL,
		CleanupInterval: cfg.ArchiveCleanup,
	})
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	return &Gatherer{
		cfg:     cfg,
		events:  events.NewFetcher(sofascore.NewClient(client), cfg.Location()),
		news:    news.NewFetcher(client),
		archive: archive,
	}, nil
}

// Close releases the archive store.
func (g *Gatherer) Close() error {
	if g == nil || g.archive == nil {
		return nil
	}
	return g.archive.Close()
}

// Run gathers all topics concurrently, assembles the payload and persists it.
func (g *Gatherer) Run(ctx context.Context) error {
	start := time.Now()
	now := start.In(g.cfg.Location())
	topics := domain.Topics()

	// One slot per topic; each goroutine writes only its own index.
	inputs := make([]briefing.SectionInput, len(topics))
	var wg sync.WaitGroup
	for i, topic := range topics {
		wg.Add(1)
		go func(i int, topic domain.Topic) {
			defer wg.Done()
			title, table := g.events.FetchSection(ctx, topic, now)
			inputs[i] = briefing.SectionInput{
				Topic:      topic,
				Title:      title,
				Table:      table,
				Candidates: g.news.ForTopic(ctx, topic),
			}
		}(i, topic)
	}
	wg.Wait()

	payload := briefing.Assemble(inputs, now)

	rerun := false
	if _, found, err := g.archive.Briefing(payload.Date); err != nil {
		logger.WarnObj("briefing archive read failed", "archive_error", map[string]any{
			"date":  payload.Date,
			"error": err.Error(),
		})
	} else {
		rerun = found
	}

	if err := briefing.Save(payload, g.cfg.BriefingPath); err != nil {
		return fmt.Errorf("save gathered payload: %w", err)
	}

	if err := g.archive.SaveBriefing(payload.Date, payload); err != nil {
		logger.WarnObj("briefing archive write failed", "archive_error", map[string]any{
			"date":  payload.Date,
			"error": err.Error(),
		})
	}

	candidates := 0
	for _, sec := range payload.Sections {
		candidates += len(sec.Candidates)
	}
	logger.InfoObj("gather completed", "gather_meta", map[string]any{
		"date":       payload.Date,
		"sections":   len(payload.Sections),
		"candidates": candidates,
		"rerun":      rerun,
		"path":       g.cfg.BriefingPath,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return nil
}
