package abi

import (
	"fmt"
	"sync"
)

// MaxTotalAllocations caps the bytes pinned at any one time.
const MaxTotalAllocations = 100 * 1024 * 1024

// Table pins buffers by address so the garbage collector keeps them alive
// while the host holds a reference. It is safe for concurrent use.
type Table struct {
	ptrs  map[uint32][]byte
	limit int
	total int
	mu    sync.Mutex
}

// NewTable returns a table that refuses to pin more than limit bytes.
func NewTable(limit int) *Table {
	return &Table{ptrs: make(map[uint32][]byte), limit: limit}
}

// Pin records buf under ptr.
func (t *Table) Pin(ptr uint32, buf []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.total+len(buf) > t.limit {
		return fmt.Errorf("abi: allocation limit exceeded (requested %d bytes, pinned %d, limit %d)",
			len(buf), t.total, t.limit)
	}
	if _, exists := t.ptrs[ptr]; exists {
		return fmt.Errorf("abi: address %#x is already pinned", ptr)
	}
	t.ptrs[ptr] = buf
	t.total += len(buf)
	return nil
}

// Unpin forgets ptr and returns the number of bytes released. Unknown
// pointers are ignored and release nothing.
func (t *Table) Unpin(ptr uint32) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	buf, ok := t.ptrs[ptr]
	if !ok {
		return 0
	}
	delete(t.ptrs, ptr)
	t.total -= len(buf)
	return len(buf)
}

// Lookup returns the buffer pinned under ptr.
func (t *Table) Lookup(ptr uint32) ([]byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	buf, ok := t.ptrs[ptr]
	return buf, ok
}

// Stats reports the number of pinned buffers and their total size.
func (t *Table) Stats() (live, bytes int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ptrs), t.total
}
