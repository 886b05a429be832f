package iter

// sliceIter is a minimal StorageIterator backed by a sorted slice of
// key/value pairs, used to exercise MergeIterator/FusedIterator/
// LsmIterator without needing a real block or sstable.
type sliceIter struct {
	keys   [][]byte
	values [][]byte
	idx    int
	failAt int // -1 disables; otherwise Next() errors once idx reaches this
}

func newSliceIter(pairs ...[2]string) *sliceIter {
	it := &sliceIter{failAt: -1}
	for _, p := range pairs {
		it.keys = append(it.keys, []byte(p[0]))
		it.values = append(it.values, []byte(p[1]))
	}
	return it
}

func (s *sliceIter) IsValid() bool { return s.idx < len(s.keys) }
func (s *sliceIter) Key() []byte   { return s.keys[s.idx] }
func (s *sliceIter) Value() []byte { return s.values[s.idx] }

func (s *sliceIter) Next() error {
	s.idx++
	if s.idx == s.failAt {
		return errFaultyIter
	}
	return nil
}

func (s *sliceIter) NumActiveIterators() int { return 1 }
