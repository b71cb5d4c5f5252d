// ABOUTME: Centralized configuration defaults for otacheck
// ABOUTME: Contains endpoint, filename, and display constants

package config

import "time"

// Server settings
const (
	DefaultServerURL   = "https://api.otacheck.dev/v1"
	DefaultHTTPTimeout = 30 * time.Second
)

// Storage settings
const (
	NewsDBFilename  = "news.db"
	PrefsFilename   = "prefs.json"
	DefaultDirPerms = 0755
)

// Display settings
const (
	SeparatorWidth  = 60
	DateFormatShort = "02 Jan 06 15:04 MST"
)
