package notion

import (
	"context"
	"fmt"

	"github.com/artemisiagab/skill-sport-briefing/internal/logger"
)

// Result reports where the document ended up.
type Result struct {
	Page    Page
	Created bool
}

// Publisher writes a block list to the page with a given title, creating the
// page when absent and replacing its whole content when present. Running it
// twice with the same input yields the same page.
type Publisher struct {
	store PageStore
}

// NewPublisher builds a publisher over the given page store.
func NewPublisher(store PageStore) *Publisher {
	return &Publisher{store: store}
}

// Publish finds or creates the page titled title and replaces its content
// with children. Any failure leaves the remote state for the next run to
// reconcile; the caller treats it as fatal.
func (p *Publisher) Publish(ctx context.Context, title string, children []Block) (Result, error) {
	page, err := p.store.FindPageByTitle(ctx, title)
	if err != nil {
		return Result{}, fmt.Errorf("find page %q: %w", title, err)
	}

	created := false
	if page == nil {
		page, err = p.store.CreatePage(ctx, title)
		if err != nil {
			return Result{}, fmt.Errorf("create page %q: %w", title, err)
		}
		created = true
		logger.InfoObj("created briefing page", "notion_page_created", map[string]any{
			"title":   title,
			"page_id": page.ID,
		})
	} else {
		// The category tag can be edited away between runs; put it back
		// before touching the content.
		if err := p.store.EnsureCategory(ctx, page.ID); err != nil {
			return Result{}, fmt.Errorf("restore category on page %q: %w", title, err)
		}
		if err := p.clearPage(ctx, page.ID); err != nil {
			return Result{}, fmt.Errorf("clear page %q: %w", title, err)
		}
	}

	if err := p.store.AppendChildren(ctx, page.ID, children); err != nil {
		return Result{}, fmt.Errorf("write page %q content: %w", title, err)
	}

	logger.InfoObj("briefing page published", "notion_page_published", map[string]any{
		"title":   title,
		"page_id": page.ID,
		"created": created,
		"blocks":  len(children),
	})
	return Result{Page: *page, Created: created}, nil
}

// clearPage deletes every existing child block. Individual delete failures are
// logged and skipped; a block that is already gone must not abort the replace.
func (p *Publisher) clearPage(ctx context.Context, pageID string) error {
	ids, err := p.store.ListChildren(ctx, pageID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := p.store.DeleteBlock(ctx, id); err != nil {
			logger.WarnObj("stale block delete failed", "notion_block_delete_error", map[string]any{
				"block_id": id,
				"error":    err.Error(),
			})
		}
	}
	return nil
}
