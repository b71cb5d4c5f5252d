// ABOUTME: Storage interface for locally cached news items
// ABOUTME: Defines the read/write contract the core uses; read state is local-only

package storage

import (
	"errors"

	"github.com/nvdw/otacheck/internal/models"
)

// ErrNotFound is returned when no news item exists for the requested id.
var ErrNotFound = errors.New("news item not found")

// Store is the durable local cache of news items. It is the source of truth
// for reads: fetch operations refresh it and then read back through it.
type Store interface {
	// Close closes the store and releases resources.
	Close() error

	// GetAll returns all cached items, newest published first.
	GetAll() ([]*models.NewsItem, error)

	// GetByID retrieves an item by id, or ErrNotFound.
	GetByID(id int64) (*models.NewsItem, error)

	// InsertOrUpdate upserts a single item. The local read flag of an
	// existing row is preserved.
	InsertOrUpdate(item *models.NewsItem) error

	// RefreshAll bulk-upserts the given items. Existing rows keep their
	// local read flag; rows absent from items are left untouched.
	RefreshAll(items []*models.NewsItem) error

	// ToggleRead sets the read flag of the item with the given id.
	ToggleRead(id int64, read bool) error

	// CountUnread returns the number of unread items.
	CountUnread() (int, error)
}
