// ABOUTME: News fetch operations that treat the local store as source of truth
// ABOUTME: Empty or failed fetches never wipe previously cached items

package engine

import (
	"context"

	"github.com/nvdw/otacheck/internal/content"
	"github.com/nvdw/otacheck/internal/models"
)

// FetchNews refreshes the local store with the server's news list and returns
// the full persisted set. A failed or empty fetch leaves the cache untouched;
// the read set always comes from the store.
func (e *Engine) FetchNews(ctx context.Context, deviceID, updateMethodID int64) ([]*models.NewsItem, error) {
	fetched, err := e.client.News(ctx, deviceID, updateMethodID)
	if err != nil {
		e.logger.Warn("news fetch failed", "error", err)
	} else if len(fetched) > 0 {
		items := make([]*models.NewsItem, len(fetched))
		for i := range fetched {
			item := fetched[i]
			normalizeNewsContent(&item)
			items[i] = &item
		}
		if err := e.news.RefreshAll(items); err != nil {
			e.logger.Warn("news refresh failed", "error", err)
		}
	}

	return e.news.GetAll()
}

// FetchNewsItem refreshes one item and resolves the result via the local
// store, so callers see either the fresh row or the cached one.
func (e *Engine) FetchNewsItem(ctx context.Context, id int64) (*models.NewsItem, error) {
	fetched, err := e.client.NewsItem(ctx, id)
	if err != nil {
		e.logger.Warn("news item fetch failed", "id", id, "error", err)
	} else if fetched != nil {
		item := *fetched
		normalizeNewsContent(&item)
		if err := e.news.InsertOrUpdate(&item); err != nil {
			e.logger.Warn("news item upsert failed", "id", id, "error", err)
		}
	}

	return e.news.GetByID(id)
}

// MarkNewsRead toggles the local read flag and reports the read to the
// server. The server call is fire-and-forget.
func (e *Engine) MarkNewsRead(ctx context.Context, id int64) error {
	if err := e.news.ToggleRead(id, true); err != nil {
		return err
	}
	if err := e.client.MarkNewsRead(ctx, id); err != nil {
		e.logger.Warn("server read report failed", "id", id, "error", err)
	}
	return nil
}

// normalizeNewsContent converts server HTML bodies to Markdown before they
// are stored.
func normalizeNewsContent(item *models.NewsItem) {
	item.EnglishText = content.ToMarkdown(item.EnglishText)
	item.DutchText = content.ToMarkdown(item.DutchText)
}
