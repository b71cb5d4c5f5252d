// ABOUTME: News item model with read/unread state and two-locale content fields
// ABOUTME: Locale accessors fall back to the English variant for unsupported locales

package models

import "time"

// Supported content locales. Anything else falls back to English.
const (
	LocaleEnglish = "en"
	LocaleDutch   = "nl"
)

// NewsItem represents a news article announced by the update service.
// Read state is owned locally; the server never resets it.
type NewsItem struct {
	ID              int64      `json:"id"`
	EnglishTitle    string     `json:"english_title"`
	DutchTitle      string     `json:"dutch_title"`
	EnglishSubtitle string     `json:"english_subtitle"`
	DutchSubtitle   string     `json:"dutch_subtitle"`
	EnglishText     string     `json:"english_text"`
	DutchText       string     `json:"dutch_text"`
	ImageURL        string     `json:"image_url"`
	AuthorName      string     `json:"author_name"`
	DatePublished   *time.Time `json:"date_published,omitempty"`
	DateLastEdited  *time.Time `json:"date_last_edited,omitempty"`
	Read            bool       `json:"read"`
}

// Title returns the item title for the given locale.
func (n *NewsItem) Title(locale string) string {
	if locale == LocaleDutch && n.DutchTitle != "" {
		return n.DutchTitle
	}
	return n.EnglishTitle
}

// Subtitle returns the item subtitle for the given locale.
func (n *NewsItem) Subtitle(locale string) string {
	if locale == LocaleDutch && n.DutchSubtitle != "" {
		return n.DutchSubtitle
	}
	return n.EnglishSubtitle
}

// Text returns the item body for the given locale.
func (n *NewsItem) Text(locale string) string {
	if locale == LocaleDutch && n.DutchText != "" {
		return n.DutchText
	}
	return n.EnglishText
}
