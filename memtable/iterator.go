package memtable

import "sort"

// Iterator walks a snapshot of a MemTable's entries taken at creation
// time, so concurrent writes to the table never perturb an iteration in
// progress. It implements the same StorageIterator shape the block and
// sstable iterators do (Key/Value/IsValid/Next/NumActiveIterators), so it
// plugs into the merge layer without a separate adapter type.
type Iterator struct {
	entries []entry
	idx     int
}

// CreateAndSeekToFirst snapshots table and positions at its first entry.
func CreateAndSeekToFirst(table *MemTable) *Iterator {
	it := &Iterator{entries: snapshot(table)}
	return it
}

// CreateAndSeekToKey snapshots table and positions at the first entry
// whose key is >= key.
func CreateAndSeekToKey(table *MemTable, key []byte) *Iterator {
	it := &Iterator{entries: snapshot(table)}
	it.SeekToKey(key)
	return it
}

func snapshot(table *MemTable) []entry {
	table.mu.RLock()
	defer table.mu.RUnlock()
	out := make([]entry, len(table.entries))
	copy(out, table.entries)
	return out
}

// SeekToKey repositions the iterator at the first entry whose key is
// >= key.
func (it *Iterator) SeekToKey(key []byte) {
	it.idx = sort.Search(len(it.entries), func(i int) bool {
		return string(it.entries[i].key) >= string(key)
	})
}

// IsValid reports whether the iterator is positioned at an entry.
func (it *Iterator) IsValid() bool {
	return it.idx < len(it.entries)
}

// Key returns the current entry's key.
func (it *Iterator) Key() []byte {
	return it.entries[it.idx].key
}

// Value returns the current entry's value. An empty value is a
// tombstone; the memtable iterator does not filter it, leaving that to
// the top-level LsmIterator once the merge has resolved versions.
func (it *Iterator) Value() []byte {
	return it.entries[it.idx].value
}

// Next advances to the next entry.
func (it *Iterator) Next() error {
	it.idx++
	return nil
}

// NumActiveIterators satisfies the StorageIterator contract; a memtable
// iterator is always exactly one underlying iterator.
func (it *Iterator) NumActiveIterators() int { return 1 }
