package app

import (
	"context"
	"fmt"

	"github.com/artemisiagab/skill-sport-briefing/internal/briefing"
	"github.com/artemisiagab/skill-sport-briefing/internal/config"
	"github.com/artemisiagab/skill-sport-briefing/internal/domain"
	"github.com/artemisiagab/skill-sport-briefing/internal/logger"
	"github.com/artemisiagab/skill-sport-briefing/internal/notion"
	"github.com/artemisiagab/skill-sport-briefing/internal/render"
	"github.com/artemisiagab/skill-sport-briefing/pkg/notify"
)

// Publisher loads the finalized payload, validates it and writes the briefing
// page, the markdown mirror and the downstream notifications.
type Publisher struct {
	cfg    *config.Config
	pages  *notion.Publisher
	fanout *notify.Fanout
}

// NewPublisher builds the publish runtime from config.
func NewPublisher(ctx context.Context, cfg *config.Config) (*Publisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}

	token, err := cfg.NotionToken()
	if err != nil {
		return nil, err
	}
	client := notion.NewClient(token, cfg.NotionDatabaseID, cfg.NotionCategory, cfg.HTTPTimeout)

	fanout, err := buildFanout(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		cfg:    cfg,
		pages:  notion.NewPublisher(client),
		fanout: fanout,
	}, nil
}

// buildFanout materializes the configured notifiers. An unset notifiers file
// means notifications are off.
func buildFanout(ctx context.Context, cfg *config.Config) (*notify.Fanout, error) {
	if cfg.NotifiersFile == "" {
		return notify.NewFanout(nil), nil
	}

	reg, err := notify.LoadRegistry(cfg.NotifiersFile)
	if err != nil {
		return nil, fmt.Errorf("load notifiers registry: %w", err)
	}

	notifiers, err := notify.BuildAll(ctx, notify.DefaultRegistry(), reg.Enabled(), logger.Sink{})
	if err != nil {
		return nil, fmt.Errorf("build notifiers: %w", err)
	}
	return notify.NewFanout(notifiers), nil
}

// Run publishes the finalized briefing. A schema violation or a page write
// failure is fatal; markdown and notification failures are logged and do not
// fail the run.
func (p *Publisher) Run(ctx context.Context) error {
	payload, err := briefing.Load(p.cfg.BriefingPath)
	if err != nil {
		return err
	}
	if err := briefing.ValidateFinalized(payload); err != nil {
		return err
	}

	blocks := render.Blocks(payload)
	res, err := p.pages.Publish(ctx, payload.PageTitle, blocks)
	if err != nil {
		return fmt.Errorf("publish %q to database %s: %w", payload.PageTitle, p.cfg.NotionDatabaseID, err)
	}

	if err := render.WriteMarkdown(payload, p.cfg.MarkdownPath); err != nil {
		logger.WarnObj("markdown mirror write failed", "markdown_error", map[string]any{
			"path":  p.cfg.MarkdownPath,
			"error": err.Error(),
		})
	}

	p.notifyDownstream(ctx, payload, res)

	logger.InfoObj("publish completed", "publish_meta", map[string]any{
		"title":    payload.PageTitle,
		"page_url": res.Page.URL,
		"created":  res.Created,
		"blocks":   len(blocks),
	})
	return nil
}

func (p *Publisher) notifyDownstream(ctx context.Context, payload domain.Payload, res notion.Result) {
	if p.fanout.Size() == 0 {
		return
	}

	newsItems := 0
	for _, sec := range payload.Sections {
		newsItems += len(sec.News)
	}
	evt := notify.NewEvent(payload.PageTitle, payload.Date, res.Page.URL, res.Created, len(payload.Sections), newsItems)

	sent, err := p.fanout.Notify(ctx, evt)
	if err != nil {
		logger.WarnObj("briefing notifications partially failed", "notify_error", map[string]any{
			"sent":  sent,
			"total": p.fanout.Size(),
			"error": err.Error(),
		})
		return
	}
	logger.InfoObj("briefing notifications sent", "notify_meta", map[string]any{
		"sent": sent,
	})
}
