// ABOUTME: Tests for update-data fetch, the most-recent re-query, and offline fallback
// ABOUTME: Verifies the re-query fires only for the exact ambiguous flag combination

package engine

import (
	"context"
	"testing"

	"github.com/nvdw/otacheck/internal/models"
	"github.com/nvdw/otacheck/internal/prefs"
)

func TestFetchUpdateData_PassThrough(t *testing.T) {
	env := newTestEngine(t)
	env.client.update = &models.UpdateData{
		ID:                         3,
		VersionNumber:              "11.2.5.5",
		UpdateInformationAvailable: true,
		SystemIsUpToDate:           false,
	}

	got := env.engine.FetchUpdateData(context.Background(), 4, 2, "incr-1")
	if got == nil || got.ID != 3 {
		t.Fatalf("expected pass-through of primary result, got %+v", got)
	}
	if env.client.recentCalls != 0 {
		t.Errorf("expected no re-query, got %d", env.client.recentCalls)
	}
	// A live response has no information tag either; only the explicit marker
	// may identify reconstructed data.
	if got.ReconstructedOffline {
		t.Error("live response must not be marked as reconstructed")
	}
}

func TestFetchUpdateData_AmbiguousTriggersSingleRequery(t *testing.T) {
	env := newTestEngine(t)
	env.client.update = &models.UpdateData{
		InformationTag:             strptr(models.NoNewerBuildTag),
		UpdateInformationAvailable: true,
		SystemIsUpToDate:           true,
	}
	// Re-query result is itself ambiguous; it must still be returned as-is.
	env.client.recent = &models.UpdateData{
		ID:                         77,
		InformationTag:             strptr(models.NoNewerBuildTag),
		UpdateInformationAvailable: true,
		SystemIsUpToDate:           true,
	}

	got := env.engine.FetchUpdateData(context.Background(), 4, 2, "incr-1")
	if got == nil || got.ID != 77 {
		t.Fatalf("expected re-query result, got %+v", got)
	}
	if env.client.recentCalls != 1 {
		t.Errorf("expected exactly one re-query, got %d", env.client.recentCalls)
	}
}

func TestFetchUpdateData_NoRequeryWithoutFullCombination(t *testing.T) {
	env := newTestEngine(t)

	// No-newer-build tag but info not available: source behavior is no re-query.
	env.client.update = &models.UpdateData{
		InformationTag:             strptr(models.NoNewerBuildTag),
		UpdateInformationAvailable: false,
		SystemIsUpToDate:           true,
	}

	got := env.engine.FetchUpdateData(context.Background(), 4, 2, "incr-1")
	if got == nil || got.UpdateInformationAvailable {
		t.Fatalf("expected primary result unchanged, got %+v", got)
	}
	if env.client.recentCalls != 0 {
		t.Errorf("expected no re-query, got %d", env.client.recentCalls)
	}
}

func TestFetchUpdateData_OfflineWithSnapshot(t *testing.T) {
	env := newTestEngine(t)
	env.client.updateErr = errRemote
	env.conn.online = false

	tag := "some tag"
	saved := &models.UpdateData{
		ID:                         12,
		VersionNumber:              "11.2.4.4",
		Description:                "Bug fixes",
		DownloadURL:                "https://example.com/b.zip",
		DownloadSize:               4096,
		Filename:                   "b.zip",
		UpdateInformationAvailable: true,
		SystemIsUpToDate:           false,
		InformationTag:             &tag,
	}
	if err := prefs.SaveOfflineSnapshot(env.prefs, saved); err != nil {
		t.Fatalf("SaveOfflineSnapshot failed: %v", err)
	}

	got := env.engine.FetchUpdateData(context.Background(), 4, 2, "incr-1")
	if got == nil {
		t.Fatal("expected reconstructed update data")
	}
	if got.ID != saved.ID || got.VersionNumber != saved.VersionNumber ||
		got.Description != saved.Description || got.DownloadURL != saved.DownloadURL ||
		got.DownloadSize != saved.DownloadSize || got.Filename != saved.Filename ||
		got.UpdateInformationAvailable != saved.UpdateInformationAvailable ||
		got.SystemIsUpToDate != saved.SystemIsUpToDate {
		t.Errorf("reconstruction mismatch: %+v", got)
	}
	if got.InformationTag != nil {
		t.Error("offline reconstruction must not carry an information tag")
	}
	if !got.ReconstructedOffline {
		t.Error("offline reconstruction must be marked as such")
	}
}

func TestFetchUpdateData_OfflineWithoutSnapshot(t *testing.T) {
	env := newTestEngine(t)
	env.client.updateErr = errRemote
	env.conn.online = false

	if got := env.engine.FetchUpdateData(context.Background(), 4, 2, "incr-1"); got != nil {
		t.Errorf("expected nil (unknown) without a snapshot, got %+v", got)
	}
}

func TestFetchUpdateData_RemoteFailureWhileOnline(t *testing.T) {
	env := newTestEngine(t)
	env.client.updateErr = errRemote

	// Snapshot exists, but connectivity is up: the failure is a remote
	// problem, not an offline condition, so no fallback applies.
	if err := prefs.SaveOfflineSnapshot(env.prefs, &models.UpdateData{ID: 1}); err != nil {
		t.Fatalf("SaveOfflineSnapshot failed: %v", err)
	}

	if got := env.engine.FetchUpdateData(context.Background(), 4, 2, "incr-1"); got != nil {
		t.Errorf("expected nil for remote failure while online, got %+v", got)
	}
}

func TestFetchUpdateData_SuccessPersistsSnapshot(t *testing.T) {
	env := newTestEngine(t)
	env.client.update = &models.UpdateData{
		ID:                         90,
		VersionNumber:              "12.0.0.1",
		UpdateInformationAvailable: true,
	}

	env.engine.FetchUpdateData(context.Background(), 4, 2, "incr-1")

	settings := prefs.LoadSettings(env.prefs)
	if settings.Offline == nil || settings.Offline.ID != 90 {
		t.Errorf("expected snapshot persisted from live response, got %+v", settings.Offline)
	}
}
