// Package localstore persists small JSON values under string keys.
//
// It stands in for the browser local storage of the web dashboard: filter
// scopes, the active tab and the session credentials all live here. A Store
// wraps a Port with an in-memory cache and typed keys; the Port decides where
// bytes end up (memory, a locked JSON file, or SQLite).
package localstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Port is the persistent key-value storage behind a Store.
type Port interface {
	// Get returns the raw value for key. ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns a port for the named backend rooted at dir. An empty backend
// selects the file backend.
func Open(backend string, dir string, logger zerolog.Logger) (Port, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFilePort(dir, logger), nil
	case BackendSQLite:
		return OpenSQLitePort(dir, logger)
	case BackendMemory:
		return NewMemoryPort(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
