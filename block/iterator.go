package block

import "bytes"

// Iterator provides forward and seek access within a single decoded Block.
// A zero-value Iterator is not usable; construct one via
// CreateAndSeekToFirst or CreateAndSeekToKey.
//
// An empty Key means the iterator is positioned past the end (invalid).
// Key()/Value() are only defined while IsValid() is true.
type Iterator struct {
	block      *Block
	firstKey   []byte
	idx        int
	key        []byte
	valueStart int
	valueEnd   int
}

func newIterator(blk *Block) *Iterator {
	return &Iterator{
		block:    blk,
		firstKey: blk.FirstKey(),
	}
}

// CreateAndSeekToFirst builds an iterator positioned at the block's first
// entry.
func CreateAndSeekToFirst(blk *Block) *Iterator {
	it := newIterator(blk)
	it.seekToIdx(0)
	return it
}

// CreateAndSeekToKey builds an iterator positioned at the first entry
// whose key is >= key. The iterator is invalid if no such entry exists.
func CreateAndSeekToKey(blk *Block, key []byte) *Iterator {
	it := newIterator(blk)
	it.SeekToKey(key)
	return it
}

// IsValid reports whether the iterator currently exposes an entry.
func (it *Iterator) IsValid() bool {
	return len(it.key) > 0
}

// Key returns the current entry's key. Only valid to call when IsValid().
func (it *Iterator) Key() []byte {
	return it.key
}

// Value returns the current entry's value. Only valid to call when
// IsValid().
func (it *Iterator) Value() []byte {
	return it.block.Data[it.valueStart:it.valueEnd]
}

// SeekToFirst repositions the iterator at index 0.
func (it *Iterator) SeekToFirst() {
	it.seekToIdx(0)
}

// Next advances to the next entry, or invalidates the iterator if the
// current entry was the last one.
func (it *Iterator) Next() {
	if it.idx+1 >= it.block.NumEntries() {
		it.invalidate()
		return
	}
	it.seekToIdx(it.idx + 1)
}

// SeekToKey performs a binary search over the block's offsets for the
// first entry whose key is >= key, maintaining the invariant that entries
// in [0, lo) are < key and entries in [hi, N) are >= key. An invalid
// final position — key greater than every entry in the block — is
// reported by IsValid() == false, not an error.
func (it *Iterator) SeekToKey(key []byte) {
	lo, hi := 0, it.block.NumEntries()
	for lo < hi {
		mid := lo + (hi-lo)/2
		it.seekToIdx(mid)
		if bytes.Compare(it.key, key) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	it.seekToIdx(lo)
}

// seekToIdx decodes the entry at offsets[idx] and positions the iterator
// there, or invalidates the iterator if idx is out of range.
func (it *Iterator) seekToIdx(idx int) {
	if idx >= it.block.NumEntries() {
		it.idx = it.block.NumEntries()
		it.key = nil
		return
	}
	it.idx = idx
	offset := int(it.block.Offsets[idx])
	key, valueStart, valueEnd := entryAt(it.block.Data, offset)
	it.key = key
	it.valueStart = valueStart
	it.valueEnd = valueEnd
}

func (it *Iterator) invalidate() {
	it.idx = it.block.NumEntries()
	it.key = nil
}
