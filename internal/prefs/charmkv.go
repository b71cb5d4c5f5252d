// ABOUTME: Charm KV preference store for multi-device preference sync
// ABOUTME: Uses short-lived transactional Do connections to avoid lock contention

package prefs

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/charm/kv"
)

const (
	// DefaultCharmHost is used when CHARM_HOST is not set.
	DefaultCharmHost = "charm.2389.dev"

	// charmDBName is the charm kv database name for otacheck preferences.
	charmDBName = "otacheck-prefs"
)

// CharmStore is a Store backed by a Charm Cloud KV database, so preferences
// (including the offline update snapshot) follow the user across devices.
// It does not hold a persistent connection: each operation opens the
// database, performs the operation, and closes it.
type CharmStore struct {
	dbName   string
	autoSync bool
}

// NewCharmStore creates a Charm-backed preference store.
func NewCharmStore() (*CharmStore, error) {
	if os.Getenv("CHARM_HOST") == "" {
		os.Setenv("CHARM_HOST", DefaultCharmHost)
	}
	return &CharmStore{dbName: charmDBName, autoSync: true}, nil
}

func (s *CharmStore) GetString(key, def string) string {
	var v string
	if !s.get(key, &v) {
		return def
	}
	return v
}

func (s *CharmStore) GetInt(key string, def int) int {
	var v int
	if !s.get(key, &v) {
		return def
	}
	return v
}

func (s *CharmStore) GetInt64(key string, def int64) int64 {
	var v int64
	if !s.get(key, &v) {
		return def
	}
	return v
}

func (s *CharmStore) GetBool(key string, def bool) bool {
	var v bool
	if !s.get(key, &v) {
		return def
	}
	return v
}

func (s *CharmStore) SetString(key, value string) error      { return s.set(key, value) }
func (s *CharmStore) SetInt(key string, value int) error     { return s.set(key, value) }
func (s *CharmStore) SetInt64(key string, value int64) error { return s.set(key, value) }
func (s *CharmStore) SetBool(key string, value bool) error   { return s.set(key, value) }

func (s *CharmStore) Has(key string) bool {
	found := false
	_ = kv.DoReadOnly(s.dbName, func(k *kv.KV) error {
		data, err := k.Get([]byte(key))
		found = err == nil && data != nil
		return nil
	})
	return found
}

// Close is a no-op; Do connections close after each operation.
func (s *CharmStore) Close() error { return nil }

// get reads and JSON-decodes one key, reporting whether a value was found.
// Read failures resolve to "not found" so callers fall back to defaults.
func (s *CharmStore) get(key string, out any) bool {
	found := false
	_ = kv.DoReadOnly(s.dbName, func(k *kv.KV) error {
		data, err := k.Get([]byte(key))
		if err != nil || data == nil {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return nil
		}
		found = true
		return nil
	})
	return found
}

func (s *CharmStore) set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal preference %s: %w", key, err)
	}
	return kv.Do(s.dbName, func(k *kv.KV) error {
		if err := k.Set([]byte(key), data); err != nil {
			return err
		}
		if s.autoSync {
			return k.Sync()
		}
		return nil
	})
}
