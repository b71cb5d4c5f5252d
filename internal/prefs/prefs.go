// ABOUTME: Preference store contract and the recognized preference keys
// ABOUTME: Typed get-with-default semantics; a missing key is never an error

package prefs

// Recognized preference keys. Values for absent keys are always resolved via
// the default supplied at the call site.
const (
	KeyDeviceID                 = "device_id"
	KeyUpdateMethodID           = "update_method_id"
	KeyEUBuild                  = "eu_build"
	KeyAutomaticInstallEnabled  = "automatic_installation_enabled"
	KeyNotificationDelaySeconds = "notification_delay_seconds"
	KeyNotificationTopic        = "notification_topic"
	KeyLocale                   = "locale"

	// Offline snapshot of the last update-data response confirmed online.
	KeyOfflineID          = "offline_update_id"
	KeyOfflineName        = "offline_update_name"
	KeyOfflineDescription = "offline_update_description"
	KeyOfflineDownloadURL = "offline_update_download_url"
	KeyOfflineSize        = "offline_update_download_size"
	KeyOfflineFilename    = "offline_update_filename"
	KeyOfflineAvailable   = "offline_update_information_available"
	KeyOfflineUpToDate    = "offline_system_is_up_to_date"

	// Per-category notification gates.
	KeyReceiveNewDeviceNotifications    = "receive_new_device_notifications"
	KeyReceiveSystemUpdateNotifications = "receive_system_update_notifications"
	KeyReceiveGeneralNotifications      = "receive_general_notifications"
	KeyReceiveNewsNotifications         = "receive_news_notifications"
)

// Store is the typed key/value preference contract consumed by the core.
// Reads never fail: absent or malformed values resolve to the given default.
type Store interface {
	GetString(key, def string) string
	GetInt(key string, def int) int
	GetInt64(key string, def int64) int64
	GetBool(key string, def bool) bool

	SetString(key, value string) error
	SetInt(key string, value int) error
	SetInt64(key string, value int64) error
	SetBool(key string, value bool) error

	// Has reports whether the key was ever written.
	Has(key string) bool

	Close() error
}
