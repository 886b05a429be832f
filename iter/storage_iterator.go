// Package iter implements the merge layer that sits above block and
// sstable: the k-way MergeIterator, the FusedIterator safety wrapper, and
// the top-level LsmIterator that skips tombstones and surfaces raw keys,
// per spec.md §4.7-§4.9.
package iter

// StorageIterator is the capability every layer in the read path is
// polymorphic over (spec.md §6). Implementations never return an error
// from Key()/Value() — those are pure reads of already-validated state —
// and callers must check IsValid() before calling either.
type StorageIterator interface {
	// Key returns the current entry's key. Only defined while IsValid().
	Key() []byte
	// Value returns the current entry's value. Only defined while
	// IsValid(). An empty value is the tombstone sentinel.
	Value() []byte
	// IsValid reports whether the iterator is currently positioned at an
	// entry.
	IsValid() bool
	// Next advances to the next entry. If it returns an error, the
	// iterator's state is undefined thereafter — only a FusedIterator is
	// safe to keep calling.
	Next() error
	// NumActiveIterators reports how many underlying iterators this one
	// is composed of; simple iterators return 1.
	NumActiveIterators() int
}
