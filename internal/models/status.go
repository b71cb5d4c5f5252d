// ABOUTME: Server status and server message models with severity classification
// ABOUTME: Defines which status values block normal app function (non-recoverable)

package models

// StatusCode classifies the health of the remote update service.
type StatusCode string

const (
	StatusNormal      StatusCode = "NORMAL"
	StatusWarning     StatusCode = "WARNING"
	StatusError       StatusCode = "ERROR"
	StatusMaintenance StatusCode = "MAINTENANCE"
	StatusOutdated    StatusCode = "OUTDATED"
	StatusUnreachable StatusCode = "UNREACHABLE"
)

// NonRecoverable reports whether this status blocks normal app function until
// resolved server-side (maintenance) or via an app update (outdated).
func (c StatusCode) NonRecoverable() bool {
	return c == StatusMaintenance || c == StatusOutdated
}

// ServerStatus describes the remote service health plus the server-pushed
// client settings that ride along with it.
type ServerStatus struct {
	Status                       StatusCode `json:"status"`
	LatestAppVersion             string     `json:"latest_app_version"`
	AutomaticInstallationEnabled bool       `json:"automatic_installation_enabled"`
	PushNotificationDelaySeconds int        `json:"push_notification_delay_seconds"`
}

// ServerMessage is an announcement the server wants shown to users of a
// specific (device, update method) pair.
type ServerMessage struct {
	ID             int64  `json:"id"`
	EnglishMessage string `json:"english_message"`
	DutchMessage   string `json:"dutch_message"`
	DeviceID       int64  `json:"device_id"`
	UpdateMethodID int64  `json:"update_method_id"`
	Priority       string `json:"priority"`
}

// Message returns the message text for the given locale, falling back to
// English for unsupported locales.
func (m *ServerMessage) Message(locale string) string {
	if locale == LocaleDutch && m.DutchMessage != "" {
		return m.DutchMessage
	}
	return m.EnglishMessage
}

// Severity event codes surfaced to the user-facing layer for non-recoverable
// server states.
const (
	EventCodeMaintenance = "server-maintenance"
	EventCodeOutdated    = "app-outdated"
)

// SeverityEvent is produced by a server-messages fetch when the supplied
// status is non-recoverable. The caller routes it to its own UI-affinity
// handler; the core never invokes UI code directly.
type SeverityEvent struct {
	Status StatusCode
	Code   string
}

// ServerPostResult is the structured outcome of a write call to the server,
// such as root-install logging. A failed result carries a diagnostic message
// instead of propagating an error.
type ServerPostResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
