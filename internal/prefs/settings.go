// ABOUTME: Typed settings snapshot read once per engine operation
// ABOUTME: Makes the offline-fallback reconstruction a single auditable mapping

package prefs

import "github.com/nvdw/otacheck/internal/models"

// Settings is a point-in-time snapshot of every preference the core reads.
// Engine operations load one snapshot up front instead of scattering per-key
// lookups through their logic.
type Settings struct {
	DeviceID                     int64
	UpdateMethodID               int64
	EUBuild                      bool
	AutomaticInstallationEnabled bool
	NotificationDelaySeconds     int
	NotificationTopic            string // empty means never persisted
	Locale                       string

	ReceiveNewDeviceNotifications    bool
	ReceiveSystemUpdateNotifications bool
	ReceiveGeneralNotifications      bool
	ReceiveNewsNotifications         bool

	Offline *OfflineSnapshot // nil when no snapshot was ever persisted
}

// OfflineSnapshot holds the persisted fields of the last update-data response
// that was confirmed online. Used only when connectivity is absent.
type OfflineSnapshot struct {
	ID                         int64
	VersionNumber              string
	Description                string
	DownloadURL                string
	DownloadSize               int64
	Filename                   string
	UpdateInformationAvailable bool
	SystemIsUpToDate           bool
}

// UpdateData reconstructs an UpdateData strictly from persisted fields.
// The information tag is always absent on a reconstruction, and the result is
// marked so callers can tell it apart from a live response.
func (o *OfflineSnapshot) UpdateData() *models.UpdateData {
	return &models.UpdateData{
		ID:                         o.ID,
		VersionNumber:              o.VersionNumber,
		Description:                o.Description,
		DownloadURL:                o.DownloadURL,
		DownloadSize:               o.DownloadSize,
		Filename:                   o.Filename,
		UpdateInformationAvailable: o.UpdateInformationAvailable,
		SystemIsUpToDate:           o.SystemIsUpToDate,
		ReconstructedOffline:       true,
	}
}

// LoadSettings reads the full preference snapshot from s.
// Notification gates default to enabled; everything else defaults to zero.
func LoadSettings(s Store) Settings {
	set := Settings{
		DeviceID:                     s.GetInt64(KeyDeviceID, -1),
		UpdateMethodID:               s.GetInt64(KeyUpdateMethodID, -1),
		EUBuild:                      s.GetBool(KeyEUBuild, false),
		AutomaticInstallationEnabled: s.GetBool(KeyAutomaticInstallEnabled, false),
		NotificationDelaySeconds:     s.GetInt(KeyNotificationDelaySeconds, 10),
		NotificationTopic:            s.GetString(KeyNotificationTopic, ""),
		Locale:                       s.GetString(KeyLocale, models.LocaleEnglish),

		ReceiveNewDeviceNotifications:    s.GetBool(KeyReceiveNewDeviceNotifications, true),
		ReceiveSystemUpdateNotifications: s.GetBool(KeyReceiveSystemUpdateNotifications, true),
		ReceiveGeneralNotifications:      s.GetBool(KeyReceiveGeneralNotifications, true),
		ReceiveNewsNotifications:         s.GetBool(KeyReceiveNewsNotifications, true),
	}

	// A snapshot exists only if its id key was ever written.
	if s.Has(KeyOfflineID) {
		set.Offline = &OfflineSnapshot{
			ID:                         s.GetInt64(KeyOfflineID, 0),
			VersionNumber:              s.GetString(KeyOfflineName, ""),
			Description:                s.GetString(KeyOfflineDescription, ""),
			DownloadURL:                s.GetString(KeyOfflineDownloadURL, ""),
			DownloadSize:               s.GetInt64(KeyOfflineSize, 0),
			Filename:                   s.GetString(KeyOfflineFilename, ""),
			UpdateInformationAvailable: s.GetBool(KeyOfflineAvailable, false),
			SystemIsUpToDate:           s.GetBool(KeyOfflineUpToDate, false),
		}
	}

	return set
}

// SaveOfflineSnapshot persists the fields of a live update-data response so a
// later offline fetch can reconstruct it. Field writes are independent; a
// partially written snapshot is repaired by the next successful fetch.
func SaveOfflineSnapshot(s Store, u *models.UpdateData) error {
	writes := []error{
		s.SetInt64(KeyOfflineID, u.ID),
		s.SetString(KeyOfflineName, u.VersionNumber),
		s.SetString(KeyOfflineDescription, u.Description),
		s.SetString(KeyOfflineDownloadURL, u.DownloadURL),
		s.SetInt64(KeyOfflineSize, u.DownloadSize),
		s.SetString(KeyOfflineFilename, u.Filename),
		s.SetBool(KeyOfflineAvailable, u.UpdateInformationAvailable),
		s.SetBool(KeyOfflineUpToDate, u.SystemIsUpToDate),
	}
	for _, err := range writes {
		if err != nil {
			return err
		}
	}
	return nil
}
