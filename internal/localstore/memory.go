package localstore

import (
	"sort"
	"sync"
)

// MemoryPort keeps values in a map. It is safe for concurrent use.
type MemoryPort struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryPort returns an empty in-memory port.
func NewMemoryPort() *MemoryPort {
	return &MemoryPort{entries: make(map[string][]byte)}
}

func (p *MemoryPort) Get(key string) ([]byte, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	value, ok := p.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (p *MemoryPort) Set(key string, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[key] = append([]byte(nil), value...)
	return nil
}

func (p *MemoryPort) Delete(key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.entries, key)
	return nil
}

func (p *MemoryPort) Keys() ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.entries))
	for key := range p.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
