// Package blobstore provides content-addressed blob backends.
package blobstore

import (
	"sync"

	"github.com/calimero-network/calimero-sdk-js/domain/entities"
	"github.com/calimero-network/calimero-sdk-js/domain/ports"
)

// Compile-time interface compliance check
var _ ports.BlobStore = (*Memory)(nil)

// Memory keeps blobs in a map. It is safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	blobs map[entities.BlobID][]byte
}

// NewMemory creates an empty in-memory blob store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[entities.BlobID][]byte)}
}

// Put stores a copy of data under id. Re-storing an existing id is a no-op.
func (m *Memory) Put(id entities.BlobID, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.blobs[id]; ok {
		return nil
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.blobs[id] = stored
	return nil
}

// Get returns the blob stored under id. The returned slice must not be modified.
func (m *Memory) Get(id entities.BlobID) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[id]
	return data, ok, nil
}

// Has reports whether id is stored.
func (m *Memory) Has(id entities.BlobID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.blobs[id]
	return ok, nil
}

// Len returns the number of stored blobs.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}
