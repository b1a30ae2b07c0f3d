package briefing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/artemisiagab/skill-sport-briefing/internal/domain"
)

// ErrSchemaViolation marks a finalized payload that must not be published.
var ErrSchemaViolation = errors.New("finalized payload schema violation")

// ValidateFinalized checks the finalized payload against the publishing
// contract: exact section count and order (by topic id), 0-4 news items per
// section, each with a non-empty title and link. Publishing a malformed
// document would corrupt the title-keyed idempotence, so any violation is
// fatal before the first remote call.
func ValidateFinalized(payload domain.Payload) error {
	if strings.TrimSpace(payload.PageTitle) == "" {
		return fmt.Errorf("%w: pageTitle is empty", ErrSchemaViolation)
	}

	topics := domain.Topics()
	if len(payload.Sections) != len(topics) {
		return fmt.Errorf("%w: expected %d sections, got %d", ErrSchemaViolation, len(topics), len(payload.Sections))
	}

	for i, sec := range payload.Sections {
		if sec.ID != topics[i].ID {
			return fmt.Errorf("%w: section %d is %q, expected %q", ErrSchemaViolation, i, sec.ID, topics[i].ID)
		}
		if strings.TrimSpace(sec.Title) == "" {
			return fmt.Errorf("%w: section %q has an empty title", ErrSchemaViolation, sec.ID)
		}
		if len(sec.Table.Header) == 0 {
			return fmt.Errorf("%w: section %q has no table header", ErrSchemaViolation, sec.ID)
		}
		for _, row := range sec.Table.Rows {
			if len(row) != len(sec.Table.Header) {
				return fmt.Errorf("%w: section %q row width %d does not match header width %d",
					ErrSchemaViolation, sec.ID, len(row), len(sec.Table.Header))
			}
		}
		if len(sec.News) > domain.MaxNewsPerSection {
			return fmt.Errorf("%w: section %q has %d news items (max %d)",
				ErrSchemaViolation, sec.ID, len(sec.News), domain.MaxNewsPerSection)
		}
		for j, item := range sec.News {
			if strings.TrimSpace(item.Title) == "" {
				return fmt.Errorf("%w: section %q news[%d] has an empty title", ErrSchemaViolation, sec.ID, j)
			}
			if strings.TrimSpace(item.Link) == "" {
				return fmt.Errorf("%w: section %q news[%d] has an empty link", ErrSchemaViolation, sec.ID, j)
			}
		}
	}
	return nil
}
