package iter

import (
	"fmt"

	"github.com/intellect4all/lsmtree/common"
)

// FusedIterator wraps any StorageIterator to make post-error behavior
// sticky: once the wrapped iterator returns an error from Next(), the
// fuse trips — further Key()/Value() calls panic and Next() becomes a
// no-op returning an error that wraps the original one, so a caller that ignores one error
// return can't go on to read undefined state, per spec.md §4.8.
type FusedIterator[I StorageIterator] struct {
	inner      I
	hasErrored bool
	err        error
}

// NewFusedIterator wraps inner.
func NewFusedIterator[I StorageIterator](inner I) *FusedIterator[I] {
	return &FusedIterator[I]{inner: inner}
}

// IsValid reports false once the fuse has tripped, regardless of what the
// wrapped iterator would otherwise report.
func (f *FusedIterator[I]) IsValid() bool {
	if f.hasErrored {
		return false
	}
	return f.inner.IsValid()
}

// Key panics if the fuse has tripped or the iterator isn't positioned at
// an entry; otherwise it delegates to inner.
func (f *FusedIterator[I]) Key() []byte {
	if f.hasErrored {
		panic(common.ErrIteratorErrored)
	}
	if !f.inner.IsValid() {
		panic("iter: Key called on an invalid iterator")
	}
	return f.inner.Key()
}

// Value panics under the same conditions as Key.
func (f *FusedIterator[I]) Value() []byte {
	if f.hasErrored {
		panic(common.ErrIteratorErrored)
	}
	if !f.inner.IsValid() {
		panic("iter: Value called on an invalid iterator")
	}
	return f.inner.Value()
}

// Next refuses to call through once the fuse has tripped, instead
// returning an error wrapping the original one forever. If the inner iterator is merely
// exhausted (not errored) it stays a safe no-op, matching the contract
// that callers may keep calling Next() past the end.
func (f *FusedIterator[I]) Next() error {
	if f.hasErrored {
		return fmt.Errorf("iter: fused iterator already errored: %w", f.err)
	}
	if !f.inner.IsValid() {
		return nil
	}
	if err := f.inner.Next(); err != nil {
		f.hasErrored = true
		f.err = err
		return err
	}
	return nil
}

// NumActiveIterators delegates to the wrapped iterator.
func (f *FusedIterator[I]) NumActiveIterators() int {
	return f.inner.NumActiveIterators()
}
