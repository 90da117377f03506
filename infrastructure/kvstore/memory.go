// Package kvstore provides the key/value backends behind host storage.
package kvstore

import (
	"sort"
	"sync"

	"github.com/calimero-network/calimero-sdk-js/domain/ports"
)

// Compile-time interface compliance check
var _ ports.KVStore = (*Memory)(nil)

// Memory is a map-backed KVStore. It is safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (m *Memory) Get(key []byte) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[string(key)]
	if !ok {
		return nil, false
	}
	return clone(v), true
}

// Put stores a copy of value under key.
func (m *Memory) Put(key, value []byte) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, existed := m.data[string(key)]
	m.data[string(key)] = clone(value)
	return prev, existed
}

// Delete removes key.
func (m *Memory) Delete(key []byte) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, existed := m.data[string(key)]
	if existed {
		delete(m.data, string(key))
	}
	return prev, existed
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Keys returns all keys in byte order.
func (m *Memory) Keys() [][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = []byte(k)
	}
	return out
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
