// Package memtable implements the in-memory sorted write buffer that
// feeds the merge layer alongside flushed SSTables (spec.md §2 data
// flow). A delete is represented the same way it is everywhere else in
// the read path: a Put with an empty value, the tombstone sentinel.
package memtable

import (
	"bytes"
	"sort"
	"sync"
)

// entry is a single key/value pair held in the table.
type entry struct {
	key   []byte
	value []byte
}

// MemTable is an in-memory sorted structure for recent writes. It uses a
// sorted slice with binary search, matching the access pattern of a real
// memtable (mostly sequential flushes, occasional point lookups) without
// the bookkeeping of a full skip list.
type MemTable struct {
	mu      sync.RWMutex
	entries []entry
	size    int
	maxSize int
}

// New creates a memtable that reports full once its approximate size
// reaches maxSize.
func New(maxSize int) *MemTable {
	return &MemTable{
		entries: make([]entry, 0, 1024),
		maxSize: maxSize,
	}
}

func (m *MemTable) search(key []byte) int {
	return sort.Search(len(m.entries), func(i int) bool {
		return bytes.Compare(m.entries[i].key, key) >= 0
	})
}

// Put inserts or overwrites key with value. Passing an empty value
// records a tombstone rather than removing the key outright — the
// tombstone must survive until compaction so it can shadow older
// versions in other sources during a merge.
func (m *MemTable) Put(key, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.search(key)
	k := append([]byte(nil), key...)
	v := append([]byte(nil), value...)

	if idx < len(m.entries) && bytes.Equal(m.entries[idx].key, key) {
		m.size += len(v) - len(m.entries[idx].value)
		m.entries[idx].value = v
		return
	}

	m.entries = append(m.entries, entry{})
	copy(m.entries[idx+1:], m.entries[idx:])
	m.entries[idx] = entry{key: k, value: v}
	m.size += len(k) + len(v) + 16
}

// Delete records a tombstone for key; equivalent to Put(key, nil).
func (m *MemTable) Delete(key []byte) {
	m.Put(key, nil)
}

// Get returns the raw stored value (which may be empty, meaning a
// tombstone) and whether key is present at all.
func (m *MemTable) Get(key []byte) (value []byte, found bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx := m.search(key)
	if idx < len(m.entries) && bytes.Equal(m.entries[idx].key, key) {
		return m.entries[idx].value, true
	}
	return nil, false
}

// Size returns the approximate size in bytes.
func (m *MemTable) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.size
}

// IsFull reports whether the memtable has reached its configured budget.
func (m *MemTable) IsFull() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.size >= m.maxSize
}

// Len returns the number of entries, including tombstones.
func (m *MemTable) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
