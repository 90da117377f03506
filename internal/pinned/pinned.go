// Package pinned keeps guest allocations reachable while a caller outside the
// Go runtime holds their addresses.
package pinned

import (
	"fmt"
	"sync"

	"github.com/calimero-network/calimero-sdk-js/internal/rawspan"
)

// DefaultLimit is the default cap on bytes pinned at once (100MB).
const DefaultLimit = 100 * 1024 * 1024

// Arena tracks pinned allocations by address. The zero value is not usable;
// use NewArena.
type Arena struct {
	mu    sync.Mutex
	ptrs  map[uint64][]byte
	total int
	limit int
}

// NewArena returns an arena that pins at most limit bytes.
func NewArena(limit int) *Arena {
	return &Arena{
		ptrs:  make(map[uint64][]byte),
		limit: limit,
	}
}

// Alloc returns the address of size zeroed bytes that stay valid until Free.
// A zero size returns 0. It fails when the pinned total would exceed the limit.
func (a *Arena) Alloc(size uint64) (uint64, error) {
	if size == 0 {
		return 0, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if size > uint64(a.limit-a.total) { //nolint:gosec // G115: total never exceeds limit
		return 0, fmt.Errorf("pinned: allocation limit exceeded (requested: %d bytes, current: %d bytes, limit: %d bytes)",
			size, a.total, a.limit)
	}

	buf := make([]byte, size)
	ptr := rawspan.Addr(buf)
	a.ptrs[ptr] = buf
	a.total += len(buf)
	return ptr, nil
}

// Free releases the allocation at ptr. Unknown addresses are ignored, so a
// double free is harmless.
func (a *Arena) Free(ptr uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	buf, ok := a.ptrs[ptr]
	if !ok {
		return
	}
	delete(a.ptrs, ptr)
	a.total -= len(buf)
}

// Pinned returns the number of bytes currently pinned.
func (a *Arena) Pinned() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// Reset releases every allocation.
func (a *Arena) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.ptrs)
	a.total = 0
}
