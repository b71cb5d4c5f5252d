// ABOUTME: Update-data fetch with most-recent re-query and offline-snapshot fallback
// ABOUTME: The connectivity verdict, not the request error, decides the fallback branch

package engine

import (
	"context"

	"github.com/nvdw/otacheck/internal/models"
	"github.com/nvdw/otacheck/internal/prefs"
)

// FetchUpdateData retrieves update metadata for the selection. A nil result
// means "unknown", never "up to date".
//
// When the primary response carries the contradictory no-newer-build flag
// combination, a single most-recent-update re-query replaces it; the re-query
// result is returned as-is, never re-examined for the same ambiguity. When
// the request fails and connectivity is confirmed absent, the persisted
// offline snapshot (if any) is reconstructed instead.
func (e *Engine) FetchUpdateData(ctx context.Context, deviceID, updateMethodID int64, incrementalVersion string) *models.UpdateData {
	update, err := e.client.UpdateData(ctx, deviceID, updateMethodID, incrementalVersion)
	if err != nil {
		e.logger.Warn("update data fetch failed", "error", err)
		if !e.conn.Online() {
			settings := prefs.LoadSettings(e.prefs)
			if settings.Offline != nil {
				e.logger.Info("reconstructing update data from offline snapshot")
				return settings.Offline.UpdateData()
			}
			return nil
		}
		return nil
	}
	if update == nil {
		return nil
	}

	if update.IsAmbiguous() {
		recent, err := e.client.MostRecentUpdateData(ctx, deviceID, updateMethodID)
		if err != nil {
			e.logger.Warn("most recent update re-query failed", "error", err)
			return nil
		}
		e.persistSnapshot(recent)
		return recent
	}

	e.persistSnapshot(update)
	return update
}

// persistSnapshot saves a live response as the offline snapshot so a later
// offline fetch can reconstruct it.
func (e *Engine) persistSnapshot(update *models.UpdateData) {
	if update == nil {
		return
	}
	if err := prefs.SaveOfflineSnapshot(e.prefs, update); err != nil {
		e.logger.Warn("failed to persist offline snapshot", "error", err)
	}
}
