package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/artemisiagab/skill-sport-briefing/internal/domain"
)

// Package storage archives gathered briefings locally, keyed by date.

// Store keeps a rolling archive of gathered payloads.
type Store interface {
	Close() error
	SaveBriefing(date string, payload domain.Payload) error
	Briefing(date string) (domain.Payload, bool, error)
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	BriefingTTL     time.Duration
	CleanupInterval time.Duration
}

const (
	defaultBriefingTTL     = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured archive backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.BriefingTTL <= 0 {
		opts.BriefingTTL = defaultBriefingTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                              { return nil }
func (noopStore) SaveBriefing(string, domain.Payload) error { return nil }
func (noopStore) Briefing(string) (domain.Payload, bool, error) {
	return domain.Payload{}, false, nil
}
