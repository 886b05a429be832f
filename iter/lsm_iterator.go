package iter

// LsmIterator is the top of the read path: it fuses a MergeIterator over
// memtable and sstable sources and skips tombstones (entries with an
// empty value), so callers only ever see live keys, per spec.md §4.9.
// Tombstones exist to shadow older versions during the merge; once
// they've done that job here, they're no longer surfaced.
type LsmIterator struct {
	fused *FusedIterator[*MergeIterator[SourceIter]]
}

// NewLsmIterator wraps inner in a FusedIterator and skips forward past
// any leading tombstone.
func NewLsmIterator(inner *MergeIterator[SourceIter]) (*LsmIterator, error) {
	it := &LsmIterator{fused: NewFusedIterator[*MergeIterator[SourceIter]](inner)}
	if err := it.skipTombstones(); err != nil {
		return nil, err
	}
	return it, nil
}

func (it *LsmIterator) skipTombstones() error {
	for it.fused.IsValid() && len(it.fused.Value()) == 0 {
		if err := it.fused.Next(); err != nil {
			return err
		}
	}
	return nil
}

// IsValid reports whether the iterator is positioned at a live entry.
func (it *LsmIterator) IsValid() bool {
	return it.fused.IsValid()
}

// Key returns the current entry's key.
func (it *LsmIterator) Key() []byte {
	return it.fused.Key()
}

// Value returns the current entry's value. Never empty: tombstones are
// filtered out before they're ever visible here.
func (it *LsmIterator) Value() []byte {
	return it.fused.Value()
}

// Next advances to the next live entry, skipping any tombstones in
// between.
func (it *LsmIterator) Next() error {
	if err := it.fused.Next(); err != nil {
		return err
	}
	return it.skipTombstones()
}

// NumActiveIterators delegates to the wrapped merge iterator.
func (it *LsmIterator) NumActiveIterators() int {
	return it.fused.NumActiveIterators()
}
