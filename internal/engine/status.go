// ABOUTME: Server status fetch with single-slot caching and synthesized fallback
// ABOUTME: Server messages carry an explicit severity event instead of a callback

package engine

import (
	"context"
	"time"

	"github.com/nvdw/otacheck/internal/models"
	"github.com/nvdw/otacheck/internal/prefs"
)

// FetchServerStatus returns the service health. With useCache, a previously
// fetched status is returned without a network call. On failure a status is
// synthesized: UNREACHABLE when connectivity is up (the service itself is
// down), NORMAL when the device is simply offline. Synthesized statuses carry
// the locally known app version and the last-persisted automatic-installation
// and delay settings, and are never cached.
func (e *Engine) FetchServerStatus(ctx context.Context, useCache bool) *models.ServerStatus {
	e.status.mu.Lock()
	defer e.status.mu.Unlock()

	if useCache && e.status.status != nil {
		cached := *e.status.status
		return &cached
	}

	status, err := e.client.ServerStatus(ctx)
	if err == nil && status != nil {
		// Persist the server-pushed settings so later fallback synthesis
		// reads real values back instead of fabricating them.
		if err := e.prefs.SetBool(prefs.KeyAutomaticInstallEnabled, status.AutomaticInstallationEnabled); err != nil {
			e.logger.Warn("failed to persist automatic installation flag", "error", err)
		}
		if err := e.prefs.SetInt(prefs.KeyNotificationDelaySeconds, status.PushNotificationDelaySeconds); err != nil {
			e.logger.Warn("failed to persist notification delay", "error", err)
		}

		cached := *status
		e.status.status = &cached
		e.status.fetchedAt = time.Now()
		return status
	}
	e.logger.Warn("server status fetch failed", "error", err)

	code := models.StatusNormal
	if e.conn.Online() {
		code = models.StatusUnreachable
	}
	return &models.ServerStatus{
		Status:                       code,
		LatestAppVersion:             e.appVersion,
		AutomaticInstallationEnabled: e.prefs.GetBool(prefs.KeyAutomaticInstallEnabled, false),
		PushNotificationDelaySeconds: e.prefs.GetInt(prefs.KeyNotificationDelaySeconds, 10),
	}
}

// FetchServerMessages retrieves server announcements for the selection.
// If status is non-recoverable, exactly one severity event is returned
// alongside the messages; the caller routes it to its UI-affinity handler.
// Messages are returned regardless of severity.
func (e *Engine) FetchServerMessages(ctx context.Context, deviceID, updateMethodID int64, status *models.ServerStatus) ([]models.ServerMessage, *models.SeverityEvent) {
	messages, err := e.client.ServerMessages(ctx, deviceID, updateMethodID)
	if err != nil {
		e.logger.Warn("server messages fetch failed", "error", err)
		messages = nil
	}

	var event *models.SeverityEvent
	if status != nil && status.Status.NonRecoverable() {
		code := models.EventCodeMaintenance
		if status.Status == models.StatusOutdated {
			code = models.EventCodeOutdated
		}
		event = &models.SeverityEvent{Status: status.Status, Code: code}
	}

	return messages, event
}
