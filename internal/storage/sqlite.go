// ABOUTME: SQLite news item store using modernc.org/sqlite (pure Go)
// ABOUTME: Upserts preserve the local read flag; reads order by published date

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nvdw/otacheck/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	// WAL mode for better concurrency between dispatcher reads and fetch writes
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

// initSchema creates the news table if it doesn't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS news_items (
			id INTEGER PRIMARY KEY,
			english_title TEXT NOT NULL DEFAULT '',
			dutch_title TEXT NOT NULL DEFAULT '',
			english_subtitle TEXT NOT NULL DEFAULT '',
			dutch_subtitle TEXT NOT NULL DEFAULT '',
			english_text TEXT NOT NULL DEFAULT '',
			dutch_text TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			author_name TEXT NOT NULL DEFAULT '',
			date_published TEXT,
			date_last_edited TEXT,
			read INTEGER NOT NULL DEFAULT 0
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const newsColumns = `id, english_title, dutch_title, english_subtitle, dutch_subtitle,
	english_text, dutch_text, image_url, author_name, date_published, date_last_edited, read`

// GetAll returns all cached items, newest published first. Items without a
// published date sort last.
func (s *SQLiteStore) GetAll() ([]*models.NewsItem, error) {
	rows, err := s.db.Query(`SELECT ` + newsColumns + ` FROM news_items
		ORDER BY date_published IS NULL, date_published DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query news items: %w", err)
	}
	defer rows.Close()

	var items []*models.NewsItem
	for rows.Next() {
		item, err := scanNewsItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetByID retrieves an item by id, or ErrNotFound.
func (s *SQLiteStore) GetByID(id int64) (*models.NewsItem, error) {
	row := s.db.QueryRow(`SELECT `+newsColumns+` FROM news_items WHERE id = ?`, id)
	item, err := scanNewsItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// InsertOrUpdate upserts a single item, preserving the read flag of an
// existing row.
func (s *SQLiteStore) InsertOrUpdate(item *models.NewsItem) error {
	return s.upsert(s.db, item)
}

// RefreshAll bulk-upserts items inside one transaction.
func (s *SQLiteStore) RefreshAll(items []*models.NewsItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin refresh: %w", err)
	}
	for _, item := range items {
		if err := s.upsert(tx, item); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit refresh: %w", err)
	}
	return nil
}

// ToggleRead sets the read flag of one item.
func (s *SQLiteStore) ToggleRead(id int64, read bool) error {
	result, err := s.db.Exec(`UPDATE news_items SET read = ? WHERE id = ?`, boolToInt(read), id)
	if err != nil {
		return fmt.Errorf("toggle read: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("toggle read: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountUnread returns the number of unread items.
func (s *SQLiteStore) CountUnread() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM news_items WHERE read = 0`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// upsert writes the server-owned content columns. The read column is only set
// on insert; conflicts leave the local read state alone.
func (s *SQLiteStore) upsert(e execer, item *models.NewsItem) error {
	_, err := e.Exec(`
		INSERT INTO news_items (id, english_title, dutch_title, english_subtitle, dutch_subtitle,
			english_text, dutch_text, image_url, author_name, date_published, date_last_edited, read)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			english_title = excluded.english_title,
			dutch_title = excluded.dutch_title,
			english_subtitle = excluded.english_subtitle,
			dutch_subtitle = excluded.dutch_subtitle,
			english_text = excluded.english_text,
			dutch_text = excluded.dutch_text,
			image_url = excluded.image_url,
			author_name = excluded.author_name,
			date_published = excluded.date_published,
			date_last_edited = excluded.date_last_edited`,
		item.ID, item.EnglishTitle, item.DutchTitle, item.EnglishSubtitle, item.DutchSubtitle,
		item.EnglishText, item.DutchText, item.ImageURL, item.AuthorName,
		formatTime(item.DatePublished), formatTime(item.DateLastEdited), boolToInt(item.Read))
	if err != nil {
		return fmt.Errorf("upsert news item %d: %w", item.ID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNewsItem(row rowScanner) (*models.NewsItem, error) {
	var item models.NewsItem
	var published, edited sql.NullString
	var read int

	err := row.Scan(&item.ID, &item.EnglishTitle, &item.DutchTitle,
		&item.EnglishSubtitle, &item.DutchSubtitle,
		&item.EnglishText, &item.DutchText,
		&item.ImageURL, &item.AuthorName, &published, &edited, &read)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan news item: %w", err)
	}

	item.DatePublished = parseTime(published)
	item.DateLastEdited = parseTime(edited)
	item.Read = read != 0
	return &item, nil
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
