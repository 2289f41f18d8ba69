package localstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/rs/zerolog"
)

var errCorruptFile = errors.New("store file is not a JSON object")

// FilePort stores every entry in one JSON object file. Writes take an
// exclusive flock so several ag processes can share a state directory.
//
// A corrupt file reads as empty. The next write moves it to
// localstore.json.corrupt and starts over.
type FilePort struct {
	dir    string
	logger zerolog.Logger
}

// NewFilePort returns a port storing localstore.json in dir.
func NewFilePort(dir string, logger zerolog.Logger) *FilePort {
	return &FilePort{dir: dir, logger: logger}
}

func (p *FilePort) dataPath() string {
	return filepath.Join(p.dir, "localstore.json")
}

func (p *FilePort) lockPath() string {
	return filepath.Join(p.dir, "localstore.lock")
}

// load reads all entries. A missing file is an empty store.
func (p *FilePort) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(p.dataPath())
	if os.IsNotExist(err) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	entries := make(map[string]json.RawMessage)
	if len(bytes.TrimSpace(data)) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptFile, err)
	}
	return entries, nil
}

// read is load for the unlocked read paths.
func (p *FilePort) read() (map[string]json.RawMessage, error) {
	entries, err := p.load()
	if errors.Is(err, errCorruptFile) {
		p.logger.Warn().Err(err).Str("path", p.dataPath()).Msg("reading corrupt store file as empty")
		return make(map[string]json.RawMessage), nil
	}
	return entries, err
}

// quarantine moves a corrupt store file aside. Callers hold the lock.
func (p *FilePort) quarantine(cause error) (map[string]json.RawMessage, error) {
	corrupt := p.dataPath() + ".corrupt"
	if err := os.Rename(p.dataPath(), corrupt); err != nil {
		return nil, fmt.Errorf("move corrupt store file: %w", err)
	}
	p.logger.Warn().Err(cause).Str("moved_to", corrupt).Msg("moved corrupt store file aside")
	return make(map[string]json.RawMessage), nil
}

// save writes all entries atomically via a temp file.
func (p *FilePort) save(entries map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	if existing, err := os.ReadFile(p.dataPath()); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read store file: %w", err)
	}

	tmpFile, err := os.CreateTemp(p.dir, filepath.Base(p.dataPath())+".tmp")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp store file: %w", err)
	}

	if err := os.Rename(name, p.dataPath()); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename store file: %w", err)
	}
	return nil
}

// update reads, modifies and writes the entries under the lock.
func (p *FilePort) update(fn func(entries map[string]json.RawMessage) error) error {
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	lockFile, err := os.OpenFile(p.lockPath(), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	entries, err := p.load()
	if errors.Is(err, errCorruptFile) {
		entries, err = p.quarantine(err)
	}
	if err != nil {
		return err
	}
	if err := fn(entries); err != nil {
		return err
	}
	return p.save(entries)
}

func (p *FilePort) Get(key string) ([]byte, bool, error) {
	entries, err := p.read()
	if err != nil {
		return nil, false, err
	}
	value, ok := entries[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

// Set stores value verbatim. Values that are not valid JSON are stored as
// JSON strings so the file stays parseable.
func (p *FilePort) Set(key string, value []byte) error {
	raw := json.RawMessage(value)
	if !json.Valid(value) {
		quoted, err := json.Marshal(string(value))
		if err != nil {
			return fmt.Errorf("quote value: %w", err)
		}
		raw = quoted
	}
	return p.update(func(entries map[string]json.RawMessage) error {
		entries[key] = raw
		return nil
	})
}

func (p *FilePort) Delete(key string) error {
	return p.update(func(entries map[string]json.RawMessage) error {
		delete(entries, key)
		return nil
	})
}

func (p *FilePort) Keys() ([]string, error) {
	entries, err := p.read()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
