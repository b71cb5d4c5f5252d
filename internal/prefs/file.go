// ABOUTME: JSON-file preference store with atomic writes
// ABOUTME: Default backend; the whole map is held in memory behind a mutex

package prefs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is a Store backed by a single JSON file. All values live in
// memory; every write rewrites the file atomically via temp-and-rename.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]any
}

// NewFileStore opens (or creates) the preference file at path.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create preference directory: %w", err)
	}

	s := &FileStore{path: path, values: make(map[string]any)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	if len(data) > 0 {
		// UseNumber keeps int64 ids exact; plain Unmarshal would round them
		// through float64 above 2^53.
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&s.values); err != nil {
			return nil, fmt.Errorf("parse preferences: %w", err)
		}
	}
	return s, nil
}

func (s *FileStore) GetString(key, def string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key].(string); ok {
		return v
	}
	return def
}

func (s *FileStore) GetInt(key string, def int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := asInt64(s.values[key]); ok {
		return int(v)
	}
	return def
}

func (s *FileStore) GetInt64(key string, def int64) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := asInt64(s.values[key]); ok {
		return v
	}
	return def
}

// asInt64 normalizes the numeric shapes a stored value can take: int64 from a
// Set call in this process, json.Number from a loaded file.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func (s *FileStore) GetBool(key string, def bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key].(bool); ok {
		return v
	}
	return def
}

func (s *FileStore) SetString(key, value string) error      { return s.set(key, value) }
func (s *FileStore) SetInt(key string, value int) error     { return s.set(key, int64(value)) }
func (s *FileStore) SetInt64(key string, value int64) error { return s.set(key, value) }
func (s *FileStore) SetBool(key string, value bool) error   { return s.set(key, value) }

func (s *FileStore) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flushLocked()
}

// flushLocked writes the map to disk atomically. Callers hold the write lock.
func (s *FileStore) flushLocked() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace preferences: %w", err)
	}
	return nil
}
