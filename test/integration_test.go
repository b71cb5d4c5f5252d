// ABOUTME: Integration tests for the full update-check workflow
// ABOUTME: Exercises API client, engine, preference store, and news cache end to end

package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/nvdw/otacheck/internal/api"
	"github.com/nvdw/otacheck/internal/engine"
	"github.com/nvdw/otacheck/internal/models"
	"github.com/nvdw/otacheck/internal/prefs"
	"github.com/nvdw/otacheck/internal/push"
	"github.com/nvdw/otacheck/internal/storage"
)

// onlineChecker reports a fixed connectivity verdict.
type onlineChecker bool

func (c onlineChecker) Online() bool { return bool(c) }

// newTestServer serves a minimal but complete update service. The reachable
// flag lets tests flip the server into hard failure without tearing it down.
func newTestServer(t *testing.T, reachable *atomic.Bool) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(v); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}

	mux.HandleFunc("/updateData/5/2/ABC123", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.UpdateData{
			ID:                         77,
			VersionNumber:              "11.2.3.3",
			Description:                "<p>Security patch</p>",
			DownloadURL:                "https://cdn.example.com/build.zip",
			DownloadSize:               2048,
			Filename:                   "build.zip",
			UpdateInformationAvailable: true,
		})
	})
	mux.HandleFunc("/serverStatus", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.ServerStatus{
			Status:                       models.StatusNormal,
			LatestAppVersion:             "1.0",
			AutomaticInstallationEnabled: true,
			PushNotificationDelaySeconds: 30,
		})
	})
	mux.HandleFunc("/news/5/2", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []models.NewsItem{
			{ID: 1, EnglishTitle: "First", EnglishText: "<p>Hello <b>world</b></p>"},
			{ID: 2, EnglishTitle: "Second", EnglishText: "Plain body"},
		})
	})
	mux.HandleFunc("/news-read", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]bool{"success": true})
	})
	mux.HandleFunc("/devices/all", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []models.Device{
			{ID: 5, Name: "Phone Five", Enabled: true},
			{ID: 6, Name: "Phone Six", Enabled: true},
		})
	})
	mux.HandleFunc("/updateMethods/5", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []models.UpdateMethod{
			{ID: 1, EnglishName: "Full update", RootCompatible: true},
			{ID: 2, EnglishName: "Incremental", RootCompatible: false, RecommendedForNonRooted: true},
		})
	})

	gate := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !reachable.Load() {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		mux.ServeHTTP(w, r)
	})
	return httptest.NewServer(gate)
}

func newTestEnv(t *testing.T, reachable *atomic.Bool, online bool) (*engine.Engine, prefs.Store, storage.Store) {
	t.Helper()
	tmpDir := t.TempDir()

	srv := newTestServer(t, reachable)
	t.Cleanup(srv.Close)

	p, err := prefs.NewFileStore(filepath.Join(tmpDir, "prefs.json"))
	if err != nil {
		t.Fatalf("failed to open preference store: %v", err)
	}
	t.Cleanup(func() { p.Close() })

	news, err := storage.NewSQLiteStore(filepath.Join(tmpDir, "news.db"))
	if err != nil {
		t.Fatalf("failed to open news store: %v", err)
	}
	t.Cleanup(func() { news.Close() })

	client := api.NewClient(srv.URL, "1.0")
	return engine.New(client, p, news, onlineChecker(online), "1.0", nil), p, news
}

// TestFullUpdateWorkflow fetches update data live, then recovers it from the
// offline snapshot after the service becomes unreachable while offline.
func TestFullUpdateWorkflow(t *testing.T) {
	var reachable atomic.Bool
	reachable.Store(true)
	eng, p, _ := newTestEnv(t, &reachable, false)
	ctx := context.Background()

	update := eng.FetchUpdateData(ctx, 5, 2, "ABC123")
	if update == nil {
		t.Fatal("expected update data from live fetch")
	}
	if update.VersionNumber != "11.2.3.3" {
		t.Errorf("expected version 11.2.3.3, got %q", update.VersionNumber)
	}
	if update.ReconstructedOffline {
		t.Error("live fetch must not be marked as reconstructed")
	}
	if !p.Has(prefs.KeyOfflineID) {
		t.Error("expected offline snapshot to be persisted after live fetch")
	}

	// Service down, device offline: the snapshot must reconstruct.
	reachable.Store(false)
	recovered := eng.FetchUpdateData(ctx, 5, 2, "ABC123")
	if recovered == nil {
		t.Fatal("expected reconstructed update data while offline")
	}
	if recovered.VersionNumber != update.VersionNumber {
		t.Errorf("reconstructed version %q does not match original %q", recovered.VersionNumber, update.VersionNumber)
	}
	if recovered.InformationTag != nil {
		t.Errorf("reconstructed update must carry a nil information tag, got %q", *recovered.InformationTag)
	}
	if !recovered.ReconstructedOffline {
		t.Error("offline reconstruction must be marked as reconstructed")
	}
}

// TestStatusFallbackSynthesis verifies the status cache and the synthesized
// fallback when the service goes away.
func TestStatusFallbackSynthesis(t *testing.T) {
	var reachable atomic.Bool
	reachable.Store(true)
	eng, _, _ := newTestEnv(t, &reachable, true)
	ctx := context.Background()

	status := eng.FetchServerStatus(ctx, false)
	if status.Status != models.StatusNormal {
		t.Fatalf("expected NORMAL, got %s", status.Status)
	}

	reachable.Store(false)
	// Cache hit: no network, still the live status.
	cached := eng.FetchServerStatus(ctx, true)
	if cached.Status != models.StatusNormal {
		t.Errorf("expected cached NORMAL, got %s", cached.Status)
	}

	// Forced refresh with connectivity up: the service itself is down.
	synthesized := eng.FetchServerStatus(ctx, false)
	if synthesized.Status != models.StatusUnreachable {
		t.Errorf("expected synthesized UNREACHABLE, got %s", synthesized.Status)
	}
	if !synthesized.AutomaticInstallationEnabled {
		t.Error("synthesized status should carry the persisted automatic-installation flag")
	}
	if synthesized.PushNotificationDelaySeconds != 30 {
		t.Errorf("synthesized status should carry persisted delay 30, got %d", synthesized.PushNotificationDelaySeconds)
	}
}

// TestNewsWorkflow fetches news, marks an item read, and checks the cache
// survives a dead service.
func TestNewsWorkflow(t *testing.T) {
	var reachable atomic.Bool
	reachable.Store(true)
	eng, _, news := newTestEnv(t, &reachable, true)
	ctx := context.Background()

	items, err := eng.FetchNews(ctx, 5, 2)
	if err != nil {
		t.Fatalf("news fetch failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 news items, got %d", len(items))
	}

	if err := eng.MarkNewsRead(ctx, 1); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	unread, err := news.CountUnread()
	if err != nil {
		t.Fatalf("unread count failed: %v", err)
	}
	if unread != 1 {
		t.Errorf("expected 1 unread item, got %d", unread)
	}

	// Dead service: the cached items, including read state, must survive.
	reachable.Store(false)
	items, err = eng.FetchNews(ctx, 5, 2)
	if err != nil {
		t.Fatalf("cached news fetch failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 cached items after failed fetch, got %d", len(items))
	}
	readCount := 0
	for _, item := range items {
		if item.Read {
			readCount++
		}
	}
	if readCount != 1 {
		t.Errorf("expected 1 read item to survive, got %d", readCount)
	}
}

// TestSelectionAndResync persists a selection and reconciles the push topic
// against live device and method lists.
func TestSelectionAndResync(t *testing.T) {
	var reachable atomic.Bool
	reachable.Store(true)
	eng, p, _ := newTestEnv(t, &reachable, true)
	ctx := context.Background()

	if err := p.SetInt64(prefs.KeyDeviceID, 5); err != nil {
		t.Fatalf("failed to persist device: %v", err)
	}
	if err := p.SetInt64(prefs.KeyUpdateMethodID, 2); err != nil {
		t.Fatalf("failed to persist method: %v", err)
	}

	transport := &recordingTransport{}
	manager := push.NewSubscriptionManager(transport, p, nil)
	manager.Resync(eng.FetchDevices(ctx, "all"), eng.FetchUpdateMethods(ctx, 5, true))

	want := push.Topic(5, 2)
	if got := p.GetString(prefs.KeyNotificationTopic, ""); got != want {
		t.Errorf("expected persisted topic %q, got %q", want, got)
	}
	if len(transport.subscribed) != 1 || transport.subscribed[0] != want {
		t.Errorf("expected single subscribe to %q, got %v", want, transport.subscribed)
	}
	// No prior topic: the full device x method matrix gets unsubscribed.
	if len(transport.unsubscribed) != 4 {
		t.Errorf("expected 4 legacy unsubscribes (2 devices x 2 methods), got %d", len(transport.unsubscribed))
	}
}

type recordingTransport struct {
	subscribed   []string
	unsubscribed []string
}

func (r *recordingTransport) Subscribe(topic string) error {
	r.subscribed = append(r.subscribed, topic)
	return nil
}

func (r *recordingTransport) Unsubscribe(topic string) error {
	r.unsubscribed = append(r.unsubscribed, topic)
	return nil
}
