package sstable

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/intellect4all/lsmtree/block"
)

// Iterator iterates across the blocks of a single SsTable, implementing
// spec.md §4.6.
type Iterator struct {
	table   *SsTable
	blkIter *block.Iterator
	blkIdx  int
}

// CreateAndSeekToFirst builds an iterator positioned at the table's first
// entry.
func CreateAndSeekToFirst(table *SsTable) (*Iterator, error) {
	it := &Iterator{table: table}
	if err := it.SeekToFirst(); err != nil {
		return nil, err
	}
	return it, nil
}

// CreateAndSeekToKey builds an iterator positioned at the first entry
// whose key is >= key.
func CreateAndSeekToKey(table *SsTable, key []byte) (*Iterator, error) {
	it := &Iterator{table: table}
	if err := it.SeekToKey(key); err != nil {
		return nil, err
	}
	return it, nil
}

// SeekToFirst repositions the iterator at the table's first entry.
func (it *Iterator) SeekToFirst() error {
	blk, err := it.table.ReadBlock(0)
	if err != nil {
		return err
	}
	it.blkIdx = 0
	it.blkIter = block.CreateAndSeekToFirst(blk)
	return nil
}

// SeekToKey implements spec.md §4.6's three-way block-selection algorithm:
// binary search block_meta for the smallest lo with first_key > k, then
// decide whether k falls in the last block, the previous block, or block
// lo itself.
func (it *Iterator) SeekToKey(key []byte) error {
	meta := it.table.blockMeta
	lo := sort.Search(len(meta), func(i int) bool {
		return bytes.Compare(meta[i].FirstKey, key) > 0
	})

	switch {
	case lo == len(meta):
		blk, err := it.table.ReadBlock(len(meta) - 1)
		if err != nil {
			return err
		}
		it.blkIdx = len(meta) - 1
		it.blkIter = block.CreateAndSeekToKey(blk, key)
	case lo > 0 && bytes.Compare(key, meta[lo-1].LastKey) <= 0:
		blk, err := it.table.ReadBlock(lo - 1)
		if err != nil {
			return err
		}
		it.blkIdx = lo - 1
		it.blkIter = block.CreateAndSeekToKey(blk, key)
	default:
		blk, err := it.table.ReadBlock(lo)
		if err != nil {
			return err
		}
		it.blkIdx = lo
		it.blkIter = block.CreateAndSeekToFirst(blk)
	}
	return nil
}

// IsValid reports whether the iterator currently exposes an entry.
func (it *Iterator) IsValid() bool {
	return it.blkIter != nil && it.blkIter.IsValid()
}

// Key returns the current entry's key.
func (it *Iterator) Key() []byte {
	return it.blkIter.Key()
}

// Value returns the current entry's value.
func (it *Iterator) Value() []byte {
	return it.blkIter.Value()
}

// Next advances within the current block, crossing into the next block
// (reading it from the table) once the current one is exhausted.
func (it *Iterator) Next() error {
	if !it.IsValid() {
		return fmt.Errorf("sstable: Next called on an invalid iterator")
	}
	it.blkIter.Next()
	if it.blkIter.IsValid() {
		return nil
	}
	if it.blkIdx+1 >= it.table.NumBlocks() {
		return nil
	}
	it.blkIdx++
	blk, err := it.table.ReadBlock(it.blkIdx)
	if err != nil {
		return err
	}
	it.blkIter = block.CreateAndSeekToFirst(blk)
	return nil
}

// NumActiveIterators satisfies the StorageIterator contract; an
// SsTableIterator is always exactly one underlying iterator.
func (it *Iterator) NumActiveIterators() int { return 1 }
