// ABOUTME: Topic subscription manager keeping exactly one (device, update-method) topic live
// ABOUTME: Unknown legacy state is cleared by unsubscribing from the full topic matrix

package push

import (
	"fmt"
	"log/slog"

	"github.com/nvdw/otacheck/internal/models"
	"github.com/nvdw/otacheck/internal/prefs"
)

// topicPrefix namespaces all otacheck topics on the shared transport.
const topicPrefix = "notifications_"

// Topic returns the deterministic topic name for a selection.
func Topic(deviceID, updateMethodID int64) string {
	return fmt.Sprintf("%sdevice_%d_update-method_%d", topicPrefix, deviceID, updateMethodID)
}

// SubscriptionManager reconciles the transport subscription with the
// persisted device/update-method selection.
type SubscriptionManager struct {
	transport Transport
	prefs     prefs.Store
	logger    *slog.Logger
}

// NewSubscriptionManager creates a manager over the given transport and
// preference store.
func NewSubscriptionManager(transport Transport, p prefs.Store, logger *slog.Logger) *SubscriptionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubscriptionManager{transport: transport, prefs: p, logger: logger}
}

// Resync moves the subscription to the topic for the currently selected
// device and update method.
//
// If a previous topic was persisted, exactly that topic is unsubscribed.
// If none ever was (first run, or a client predating topic persistence), the
// subscription state is ambiguous, so every device x update-method
// combination is unsubscribed to clear legacy state. The new topic is
// persisted only after a successful subscribe, which keeps a crash between
// the two steps safe: the next resync repeats both.
func (m *SubscriptionManager) Resync(devices []models.Device, updateMethods []models.UpdateMethod) {
	previous := m.prefs.GetString(prefs.KeyNotificationTopic, "")

	if previous == "" {
		for _, d := range devices {
			for _, u := range updateMethods {
				if err := m.transport.Unsubscribe(Topic(d.ID, u.ID)); err != nil {
					m.logger.Warn("legacy unsubscribe failed", "topic", Topic(d.ID, u.ID), "error", err)
				}
			}
		}
	} else {
		if err := m.transport.Unsubscribe(previous); err != nil {
			m.logger.Warn("unsubscribe failed", "topic", previous, "error", err)
		}
	}

	settings := prefs.LoadSettings(m.prefs)
	topic := Topic(settings.DeviceID, settings.UpdateMethodID)
	if err := m.transport.Subscribe(topic); err != nil {
		m.logger.Warn("subscribe failed", "topic", topic, "error", err)
		return
	}
	if err := m.prefs.SetString(prefs.KeyNotificationTopic, topic); err != nil {
		m.logger.Warn("failed to persist topic", "topic", topic, "error", err)
	}
}
