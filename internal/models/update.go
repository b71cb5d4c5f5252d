// ABOUTME: Update data model describing a firmware build offered to a device
// ABOUTME: Marks offline-reconstructed instances so they are never mistaken for live data

package models

// NoNewerBuildTag is the information tag the server attaches to an update-data
// response when it could not find a build newer than the one reported by the
// client.
const NoNewerBuildTag = "unable to find a more recent build"

// UpdateData represents the firmware update metadata for one
// (device, update method) selection.
type UpdateData struct {
	ID                         int64   `json:"id"`
	VersionNumber              string  `json:"version_number"`
	Description                string  `json:"description"`
	DownloadURL                string  `json:"download_url"`
	DownloadSize               int64   `json:"download_size"`
	Filename                   string  `json:"filename"`
	UpdateInformationAvailable bool    `json:"update_information_available"`
	SystemIsUpToDate           bool    `json:"system_is_up_to_date"`
	InformationTag             *string `json:"information,omitempty"` // nil for offline-reconstructed instances

	// ReconstructedOffline marks an instance rebuilt from the persisted
	// snapshot rather than received from the server. A live response can also
	// carry a nil InformationTag, so absence of the tag alone does not mean
	// the data is stale.
	ReconstructedOffline bool `json:"-"`
}

// SignalsNoNewerBuild reports whether the server tagged this response as
// "no newer build found".
func (u *UpdateData) SignalsNoNewerBuild() bool {
	return u.InformationTag != nil && *u.InformationTag == NoNewerBuildTag
}

// IsAmbiguous reports whether the response carries the contradictory flag
// combination that warrants a most-recent-update re-query: the server found
// no newer build, yet claims update information is available and the system
// is already up to date.
func (u *UpdateData) IsAmbiguous() bool {
	return u.SignalsNoNewerBuild() && u.UpdateInformationAvailable && u.SystemIsUpToDate
}
