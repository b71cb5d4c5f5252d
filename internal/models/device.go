// ABOUTME: Device, update method, and install guide models
// ABOUTME: Update methods carry a root-compatibility flag and a recomputed recommendation

package models

// Device is a phone model known to the update service.
type Device struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	ProductNames []string `json:"product_names"`
	Enabled      bool     `json:"enabled"`
}

// UpdateMethod describes one way of delivering updates to a device
// (e.g. full OTA vs. incremental). Recommended is not a server field: it is
// recomputed by the engine from RecommendedForNonRooted.
type UpdateMethod struct {
	ID                      int64  `json:"id"`
	EnglishName             string `json:"english_name"`
	DutchName               string `json:"dutch_name"`
	RootCompatible          bool   `json:"root_compatible"`
	RecommendedForNonRooted bool   `json:"recommended_for_non_rooted"`
	Recommended             bool   `json:"-"`
}

// Name returns the method name for the given locale.
func (m *UpdateMethod) Name(locale string) string {
	if locale == LocaleDutch && m.DutchName != "" {
		return m.DutchName
	}
	return m.EnglishName
}

// InstallGuidePage is one page of the manual installation guide.
type InstallGuidePage struct {
	ID           int64  `json:"id"`
	PageNumber   int    `json:"page_number"`
	EnglishTitle string `json:"english_title"`
	DutchTitle   string `json:"dutch_title"`
	EnglishText  string `json:"english_text"`
	DutchText    string `json:"dutch_text"`
	ImageURL     string `json:"image_url"`
}

// FAQEntry is a frequently-asked-question record served by the API.
type FAQEntry struct {
	ID           int64  `json:"id"`
	EnglishTitle string `json:"english_title"`
	DutchTitle   string `json:"dutch_title"`
	EnglishBody  string `json:"english_body"`
	DutchBody    string `json:"dutch_body"`
	Important    bool   `json:"important"`
}

// RootInstall is the payload submitted when logging the outcome of an
// automatic (rooted) installation attempt.
type RootInstall struct {
	DeviceID             int64  `json:"device_id"`
	UpdateMethodID       int64  `json:"update_method_id"`
	Status               string `json:"status"`
	InstallationID       string `json:"installation_id"`
	StartOSVersion       string `json:"start_os_version"`
	DestinationOSVersion string `json:"destination_os_version"`
	CurrentOSVersion     string `json:"current_os_version"`
	Timestamp            string `json:"timestamp"`
	FailureReason        string `json:"failure_reason,omitempty"`
}
