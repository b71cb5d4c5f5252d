// ABOUTME: Delayed notification dispatcher gating deferred pushes per category and history
// ABOUTME: Maps a decoded message into a renderable notification with a stable per-type id

package push

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nvdw/otacheck/internal/content"
	"github.com/nvdw/otacheck/internal/models"
	"github.com/nvdw/otacheck/internal/prefs"
	"github.com/nvdw/otacheck/internal/storage"
)

// Outcome is the terminal state of one dispatch.
type Outcome int

const (
	Rendered Outcome = iota
	SuppressedByPreference
	SuppressedByBump
	Malformed
)

func (o Outcome) String() string {
	switch o {
	case Rendered:
		return "rendered"
	case SuppressedByPreference:
		return "suppressed-by-preference"
	case SuppressedByBump:
		return "suppressed-by-bump-rule"
	case Malformed:
		return "malformed"
	}
	return "unknown"
}

// Stable notification ids, one per category, so repeated dispatches for the
// same category replace rather than stack.
const (
	IDNewDevice  = 10
	IDNewVersion = 20
	IDGeneral    = 30
	IDNews       = 50
)

// TargetKind says where a notification tap should land.
type TargetKind int

const (
	TargetMain TargetKind = iota
	TargetNewsItem
)

// Target is the deep-link destination of a notification.
type Target struct {
	Kind       TargetKind
	NewsItemID int64
	// DelayAdStart suppresses any interstitial ad when opening the item
	// straight from a notification.
	DelayAdStart bool
}

// Notification is the renderable unit handed to the OS surface.
type Notification struct {
	ID     int
	Title  string
	Body   string
	Target Target
	// HighPriority requests heads-up delivery with public visibility.
	HighPriority bool
}

// Notifier is the OS notification surface.
type Notifier interface {
	Notify(n Notification) error
}

// Dispatcher decides, per deferred push message, whether a notification
// should actually be rendered.
type Dispatcher struct {
	prefs    prefs.Store
	news     storage.Store
	notifier Notifier
	logger   *slog.Logger

	// mu serializes the bump suppression check against concurrent
	// read-status toggles for the same item.
	mu sync.Mutex
}

// NewDispatcher creates a dispatcher over the given collaborators.
func NewDispatcher(p prefs.Store, news storage.Store, notifier Notifier, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{prefs: p, news: news, notifier: notifier, logger: logger}
}

// Dispatch decodes a flat push payload and runs it through the gating
// pipeline. A malformed payload is a non-fatal failure; deferred pushes are
// not redelivered, so it is logged and dropped.
func (d *Dispatcher) Dispatch(payload map[string]string) Outcome {
	msg, err := DecodeMessage(payload)
	if err != nil {
		d.logger.Warn("dropping malformed push payload", "error", err)
		return Malformed
	}
	return d.dispatch(msg)
}

func (d *Dispatcher) dispatch(msg *models.NotificationMessage) Outcome {
	settings := prefs.LoadSettings(d.prefs)

	if !gateEnabled(settings, msg.Type) {
		return SuppressedByPreference
	}

	if msg.Type == models.NotificationNews && msg.IsBump {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.newsItemRead(msg.NewsItemID) {
			return SuppressedByBump
		}
		return d.render(msg, settings.Locale)
	}

	return d.render(msg, settings.Locale)
}

// newsItemRead reports whether the referenced item is already marked read
// locally. An item we have never seen counts as unread.
func (d *Dispatcher) newsItemRead(id int64) bool {
	item, err := d.news.GetByID(id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			d.logger.Warn("read-status lookup failed", "id", id, "error", err)
		}
		return false
	}
	return item.Read
}

func (d *Dispatcher) render(msg *models.NotificationMessage, locale string) Outcome {
	n := buildNotification(msg, locale)
	if err := d.notifier.Notify(n); err != nil {
		d.logger.Warn("notification emit failed", "id", n.ID, "error", err)
	}
	return Rendered
}

// gateEnabled checks the per-category preference gate.
func gateEnabled(settings prefs.Settings, typ models.NotificationType) bool {
	switch typ {
	case models.NotificationNewDevice:
		return settings.ReceiveNewDeviceNotifications
	case models.NotificationNewVersion:
		return settings.ReceiveSystemUpdateNotifications
	case models.NotificationGeneral:
		return settings.ReceiveGeneralNotifications
	case models.NotificationNews:
		return settings.ReceiveNewsNotifications
	}
	return false
}

// buildNotification selects the locale variant and assembles the renderable
// notification for a message.
func buildNotification(msg *models.NotificationMessage, locale string) Notification {
	dutch := locale == models.LocaleDutch

	switch msg.Type {
	case models.NotificationNewDevice:
		title, body := "New device supported", fmt.Sprintf("%s is now supported.", msg.DeviceName)
		if dutch {
			title, body = "Nieuw apparaat ondersteund", fmt.Sprintf("%s wordt nu ondersteund.", msg.DeviceName)
		}
		return Notification{ID: IDNewDevice, Title: title, Body: body, Target: Target{Kind: TargetMain}, HighPriority: true}

	case models.NotificationNewVersion:
		title, body := "System update available", fmt.Sprintf("Version %s is available for %s.", msg.VersionNumber, msg.DeviceName)
		if dutch {
			title, body = "Systeemupdate beschikbaar", fmt.Sprintf("Versie %s is beschikbaar voor %s.", msg.VersionNumber, msg.DeviceName)
		}
		return Notification{ID: IDNewVersion, Title: title, Body: body, Target: Target{Kind: TargetMain}, HighPriority: true}

	case models.NotificationGeneral:
		title := "Announcement"
		if dutch {
			title = "Mededeling"
		}
		// Server-authored messages can carry HTML; notification bodies are
		// single-line plain text.
		return Notification{ID: IDGeneral, Title: title, Body: content.PlainText(msg.Message(locale)), Target: Target{Kind: TargetMain}, HighPriority: true}

	default: // NotificationNews, the only remaining decoded type
		title := "News"
		if dutch {
			title = "Nieuws"
		}
		return Notification{
			ID:    IDNews,
			Title: title,
			Body:  content.PlainText(msg.Message(locale)),
			Target: Target{
				Kind:         TargetNewsItem,
				NewsItemID:   msg.NewsItemID,
				DelayAdStart: true,
			},
			HighPriority: true,
		}
	}
}
