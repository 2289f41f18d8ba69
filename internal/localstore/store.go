package localstore

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Key is a typed store key. Two keys with the same Name share state.
type Key[T any] struct {
	Name    string
	Default T
}

// NewKey returns a key with a default value.
func NewKey[T any](name string, def T) Key[T] {
	return Key[T]{Name: name, Default: def}
}

// Store is a cached, typed view over a Port. Reads never fail: missing or
// malformed entries fall back to the key's default. Writes update the cache
// before the port, so a failing port still leaves the new value visible.
type Store struct {
	port   Port
	logger zerolog.Logger

	mu    sync.Mutex
	cache map[string][]byte
}

// New returns a store over port.
func New(port Port, logger zerolog.Logger) *Store {
	return &Store{
		port:   port,
		logger: logger.With().Str("component", "localstore").Logger(),
		cache:  make(map[string][]byte),
	}
}

// raw returns the encoded value for name from the cache or the port.
func (s *Store) raw(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value, ok := s.cache[name]; ok {
		return value, true
	}
	value, ok, err := s.port.Get(name)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", name).Msg("read failed, using default")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	s.cache[name] = value
	return value, true
}

// Get returns the stored value for key or key.Default.
func Get[T any](s *Store, key Key[T]) T {
	data, ok := s.raw(key.Name)
	if !ok {
		return key.Default
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		s.logger.Warn().Err(err).Str("key", key.Name).Str("raw", string(data)).Msg("malformed entry, using default")
		return key.Default
	}
	return value
}

// Set stores value under key. Port failures are logged, not returned.
func Set[T any](s *Store, key Key[T], value T) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key.Name).Msg("cannot encode value")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key.Name] = data
	if err := s.port.Set(key.Name, data); err != nil {
		s.logger.Warn().Err(err).Str("key", key.Name).Msg("write failed, value kept in memory")
	}
}

// Has reports whether a value is stored under name.
func (s *Store) Has(name string) bool {
	_, ok := s.raw(name)
	return ok
}

// Delete removes name from the cache and the port.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, name)
	if err := s.port.Delete(name); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

// IsFilterKey reports whether name follows the filter naming convention:
// a filter_ prefix, or a tab segment after the first one such as
// tasks_active_tab or active_tab_smm_projects.
func IsFilterKey(name string) bool {
	return strings.HasPrefix(name, "filter_") || strings.HasSuffix(name, "_tab") || strings.Contains(name, "_tab_")
}

// filterKeys lists the filter keys known to the port or the cache.
func (s *Store) filterKeys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.port.Keys()
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	seen := make(map[string]bool, len(keys))
	var matches []string
	for _, name := range keys {
		if IsFilterKey(name) && !seen[name] {
			seen[name] = true
			matches = append(matches, name)
		}
	}
	for name := range s.cache {
		if IsFilterKey(name) && !seen[name] {
			seen[name] = true
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// ClearFilters deletes every filter key and returns how many were removed.
func (s *Store) ClearFilters() (int, error) {
	keys, err := s.filterKeys()
	if err != nil {
		return 0, err
	}
	for i, name := range keys {
		if err := s.Delete(name); err != nil {
			return i, err
		}
	}
	s.logger.Debug().Int("count", len(keys)).Msg("cleared filters")
	return len(keys), nil
}

// ExportFilters returns a snapshot of every filter key with its decoded
// value. Malformed entries are exported as their raw text.
func (s *Store) ExportFilters() (map[string]any, error) {
	keys, err := s.filterKeys()
	if err != nil {
		return nil, err
	}
	snapshot := make(map[string]any, len(keys))
	for _, name := range keys {
		data, ok := s.raw(name)
		if !ok {
			continue
		}
		var value any
		if err := json.Unmarshal(data, &value); err != nil {
			snapshot[name] = string(data)
			continue
		}
		snapshot[name] = value
	}
	return snapshot, nil
}
