// ABOUTME: Notification message model decoded from deferred push payloads
// ABOUTME: Ephemeral: constructed from a transport payload and consumed once by the dispatcher

package models

// NotificationType identifies the category of a deferred push notification.
type NotificationType string

const (
	NotificationNewDevice  NotificationType = "NEW_DEVICE"
	NotificationNewVersion NotificationType = "NEW_VERSION"
	NotificationGeneral    NotificationType = "GENERAL_NOTIFICATION"
	NotificationNews       NotificationType = "NEWS"
)

// Known reports whether t is one of the four supported notification types.
func (t NotificationType) Known() bool {
	switch t {
	case NotificationNewDevice, NotificationNewVersion, NotificationGeneral, NotificationNews:
		return true
	}
	return false
}

// NotificationMessage is a decoded deferred push payload. Only the fields
// relevant to its Type are populated; decoding validates them up front.
type NotificationMessage struct {
	Type           NotificationType
	DeviceName     string // NEW_DEVICE, NEW_VERSION
	VersionNumber  string // NEW_VERSION
	EnglishMessage string // GENERAL_NOTIFICATION, NEWS
	DutchMessage   string // GENERAL_NOTIFICATION, NEWS
	NewsItemID     int64  // NEWS
	IsBump         bool   // NEWS
}

// Message returns the locale-selected message body, falling back to English.
func (m *NotificationMessage) Message(locale string) string {
	if locale == LocaleDutch && m.DutchMessage != "" {
		return m.DutchMessage
	}
	return m.EnglishMessage
}
