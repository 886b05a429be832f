package iter

// SourceIter wraps any StorageIterator implementation behind a single
// concrete type. MergeIterator is generic over one concrete iterator
// type, so merging heterogeneous children — a memtable iterator here, an
// sstable iterator there — means lifting them all into SourceIter first.
type SourceIter struct {
	StorageIterator
}

// NewSourceIter wraps it.
func NewSourceIter(it StorageIterator) SourceIter {
	return SourceIter{StorageIterator: it}
}
