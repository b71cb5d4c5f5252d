// ABOUTME: Tests for topic naming and subscription resync
// ABOUTME: Verifies full-matrix legacy cleanup, single unsubscribe, and topic persistence

package push

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/nvdw/otacheck/internal/models"
	"github.com/nvdw/otacheck/internal/prefs"
)

// recordingTransport captures subscribe/unsubscribe calls in order.
type recordingTransport struct {
	subscribed   []string
	unsubscribed []string
	subscribeErr error
}

func (t *recordingTransport) Subscribe(topic string) error {
	if t.subscribeErr != nil {
		return t.subscribeErr
	}
	t.subscribed = append(t.subscribed, topic)
	return nil
}

func (t *recordingTransport) Unsubscribe(topic string) error {
	t.unsubscribed = append(t.unsubscribed, topic)
	return nil
}

func newTestPrefs(t *testing.T) *prefs.FileStore {
	t.Helper()
	p, err := prefs.NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))
	if err != nil {
		t.Fatalf("failed to create prefs: %v", err)
	}
	return p
}

func TestTopic(t *testing.T) {
	got := Topic(8, 3)
	want := "notifications_device_8_update-method_3"
	if got != want {
		t.Errorf("Topic(8, 3) = %q, want %q", got, want)
	}
}

func TestResync_NoPriorTopicUnsubscribesMatrix(t *testing.T) {
	p := newTestPrefs(t)
	p.SetInt64(prefs.KeyDeviceID, 2)
	p.SetInt64(prefs.KeyUpdateMethodID, 1)

	transport := &recordingTransport{}
	m := NewSubscriptionManager(transport, p, nil)

	devices := []models.Device{{ID: 1}, {ID: 2}, {ID: 3}}
	methods := []models.UpdateMethod{{ID: 1}, {ID: 2}}
	m.Resync(devices, methods)

	if len(transport.unsubscribed) != len(devices)*len(methods) {
		t.Errorf("expected %d unsubscribes, got %d", len(devices)*len(methods), len(transport.unsubscribed))
	}
	if len(transport.subscribed) != 1 {
		t.Fatalf("expected one subscribe, got %d", len(transport.subscribed))
	}
	if transport.subscribed[0] != Topic(2, 1) {
		t.Errorf("subscribed to %q, want %q", transport.subscribed[0], Topic(2, 1))
	}
	if got := p.GetString(prefs.KeyNotificationTopic, ""); got != Topic(2, 1) {
		t.Errorf("persisted topic %q, want %q", got, Topic(2, 1))
	}
}

func TestResync_PriorTopicSingleUnsubscribe(t *testing.T) {
	p := newTestPrefs(t)
	p.SetInt64(prefs.KeyDeviceID, 5)
	p.SetInt64(prefs.KeyUpdateMethodID, 2)
	p.SetString(prefs.KeyNotificationTopic, Topic(4, 2))

	transport := &recordingTransport{}
	m := NewSubscriptionManager(transport, p, nil)
	m.Resync([]models.Device{{ID: 4}, {ID: 5}}, []models.UpdateMethod{{ID: 2}})

	if len(transport.unsubscribed) != 1 || transport.unsubscribed[0] != Topic(4, 2) {
		t.Errorf("expected single unsubscribe from prior topic, got %v", transport.unsubscribed)
	}
	if len(transport.subscribed) != 1 || transport.subscribed[0] != Topic(5, 2) {
		t.Errorf("expected subscribe to new topic, got %v", transport.subscribed)
	}
	if got := p.GetString(prefs.KeyNotificationTopic, ""); got != Topic(5, 2) {
		t.Errorf("persisted topic %q, want %q", got, Topic(5, 2))
	}
}

func TestResync_Idempotent(t *testing.T) {
	p := newTestPrefs(t)
	p.SetInt64(prefs.KeyDeviceID, 7)
	p.SetInt64(prefs.KeyUpdateMethodID, 1)

	transport := &recordingTransport{}
	m := NewSubscriptionManager(transport, p, nil)

	m.Resync(nil, nil)
	m.Resync(nil, nil)

	// Second run: unsubscribe-then-resubscribe to the same topic.
	want := Topic(7, 1)
	if got := p.GetString(prefs.KeyNotificationTopic, ""); got != want {
		t.Errorf("persisted topic %q, want %q", got, want)
	}
	if len(transport.subscribed) != 2 {
		t.Fatalf("expected two subscribes, got %d", len(transport.subscribed))
	}
	if transport.subscribed[0] != want || transport.subscribed[1] != want {
		t.Errorf("both subscribes should target %q, got %v", want, transport.subscribed)
	}
	// The second resync unsubscribes exactly the persisted topic.
	if transport.unsubscribed[len(transport.unsubscribed)-1] != want {
		t.Errorf("second resync should unsubscribe %q, got %v", want, transport.unsubscribed)
	}
}

func TestResync_SubscribeFailureDoesNotPersist(t *testing.T) {
	p := newTestPrefs(t)
	p.SetInt64(prefs.KeyDeviceID, 1)
	p.SetInt64(prefs.KeyUpdateMethodID, 1)

	transport := &recordingTransport{subscribeErr: errors.New("transport down")}
	m := NewSubscriptionManager(transport, p, nil)
	m.Resync(nil, nil)

	if got := p.GetString(prefs.KeyNotificationTopic, ""); got != "" {
		t.Errorf("topic must not be persisted after failed subscribe, got %q", got)
	}
}
