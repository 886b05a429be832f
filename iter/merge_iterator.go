package iter

import (
	"bytes"
	"container/heap"
)

// heapItem pairs a child iterator with its source index. Lower
// sourceIndex means "newer" — ties on key are broken in its favor.
type heapItem[I StorageIterator] struct {
	sourceIndex int
	it          I
}

// itemHeap is a min-heap over heapItem by (key, sourceIndex), implementing
// container/heap.Interface. Smaller key sorts first; on equal keys, the
// smaller sourceIndex (newer source) sorts first.
type itemHeap[I StorageIterator] []*heapItem[I]

func (h itemHeap[I]) Len() int { return len(h) }

func (h itemHeap[I]) Less(i, j int) bool {
	c := bytes.Compare(h[i].it.Key(), h[j].it.Key())
	if c != 0 {
		return c < 0
	}
	return h[i].sourceIndex < h[j].sourceIndex
}

func (h itemHeap[I]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap[I]) Push(x any) { *h = append(*h, x.(*heapItem[I])) }

func (h *itemHeap[I]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

func (h itemHeap[I]) less(a, b *heapItem[I]) bool {
	c := bytes.Compare(a.it.Key(), b.it.Key())
	if c != 0 {
		return c < 0
	}
	return a.sourceIndex < b.sourceIndex
}

// MergeIterator merges iterators of a single concrete type I, newest wins
// on a key tie, implementing spec.md §4.7. Heterogeneous sources (a
// memtable iterator and an sstable iterator, say) are unified one layer up
// by wrapping them in a common variant type before construction — see
// source.go's SourceIter.
type MergeIterator[I StorageIterator] struct {
	heap    itemHeap[I]
	current *heapItem[I]
}

// NewMergeIterator filters out already-invalid iterators, heapifies the
// rest, and pops the smallest into current.
func NewMergeIterator[I StorageIterator](iters []I) *MergeIterator[I] {
	h := make(itemHeap[I], 0, len(iters))
	for i, it := range iters {
		if it.IsValid() {
			h = append(h, &heapItem[I]{sourceIndex: i, it: it})
		}
	}
	heap.Init(&h)

	m := &MergeIterator[I]{heap: h}
	if m.heap.Len() > 0 {
		m.current = heap.Pop(&m.heap).(*heapItem[I])
	}
	return m
}

// IsValid reports whether the merge has a current entry.
func (m *MergeIterator[I]) IsValid() bool {
	return m.current != nil && m.current.it.IsValid()
}

// Key returns the current entry's key — always the newest version of
// whichever key sorts smallest among all children.
func (m *MergeIterator[I]) Key() []byte {
	return m.current.it.Key()
}

// Value returns the current entry's value.
func (m *MergeIterator[I]) Value() []byte {
	return m.current.it.Value()
}

// NumActiveIterators sums the active-iterator counts of every child still
// in the heap, plus current.
func (m *MergeIterator[I]) NumActiveIterators() int {
	n := m.heap.Len()
	if m.current != nil {
		n++
	}
	for _, item := range m.heap {
		n += item.it.NumActiveIterators() - 1
	}
	if m.current != nil {
		n += m.current.it.NumActiveIterators() - 1
	}
	return n
}

// Next implements spec.md §4.7's algorithm:
//  1. While the heap top has a key equal to current's, it's an older
//     duplicate: pop it, advance it, and push it back only if it's still
//     valid. A child error is propagated immediately — the faulted child
//     has already been popped, so no later drop can read its broken key.
//  2. Advance current; propagate its error if any.
//  3. If current is still valid and the new heap top sorts before it,
//     swap them (current always ends up holding the smallest key).
//  4. Otherwise, if current is now invalid, pop the next smallest into it
//     (possibly leaving the merge exhausted).
func (m *MergeIterator[I]) Next() error {
	for m.heap.Len() > 0 && bytes.Equal(m.heap[0].it.Key(), m.current.it.Key()) {
		item := heap.Pop(&m.heap).(*heapItem[I])
		if err := item.it.Next(); err != nil {
			return err
		}
		if item.it.IsValid() {
			heap.Push(&m.heap, item)
		}
	}

	if err := m.current.it.Next(); err != nil {
		return err
	}

	if m.current.it.IsValid() {
		if m.heap.Len() > 0 && m.heap.less(m.heap[0], m.current) {
			heap.Push(&m.heap, m.current)
			m.current = heap.Pop(&m.heap).(*heapItem[I])
		}
		return nil
	}

	if m.heap.Len() > 0 {
		m.current = heap.Pop(&m.heap).(*heapItem[I])
	} else {
		m.current = nil
	}
	return nil
}
