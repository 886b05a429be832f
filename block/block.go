// Package block implements the smallest unit of read and cache in the LSM
// tree: a sorted run of key/value entries plus an offset directory, encoded
// to and decoded from a single contiguous byte buffer.
//
// Encoded layout (little-endian throughout):
//
//	| data (variable) | offsets: u16 x N | num_entries: u16 |
//
// Entry layout inside data:
//
//	| key_len: u16 | key | value_len: u16 | value |
//
// Blocks are built once by a Builder, then shared read-only across
// iterators and block caches; Block itself has no mutating methods.
package block

import (
	"encoding/binary"

	"github.com/intellect4all/lsmtree/common"
)

const sizeOfU16 = 2

// MaxKeyLen and MaxValueLen are the per-entry size limits spec.md requires
// so that every offset fits in a uint16.
const (
	MaxKeyLen   = 65535
	MaxValueLen = 65535
	MaxEntries  = 65535
)

// Block is two parallel arrays derived from one backing buffer: the
// concatenated entries in insertion order, and the byte offset of each
// entry's start within Data. Immutable after construction; safe to share
// across goroutines via a single read-only *Block.
type Block struct {
	Data    []byte
	Offsets []uint16
}

// Encode returns the on-disk byte representation: data, then each offset as
// little-endian u16, then the entry count as little-endian u16.
func (b *Block) Encode() []byte {
	buf := make([]byte, 0, len(b.Data)+len(b.Offsets)*sizeOfU16+sizeOfU16)
	buf = append(buf, b.Data...)
	for _, off := range b.Offsets {
		buf = binary.LittleEndian.AppendUint16(buf, off)
	}
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(b.Offsets)))
	return buf
}

// Decode reverses Encode. It panics on an input shorter than the 2-byte
// entry-count trailer, the empty input included (spec.md's
// test_malicious_block contract), and returns an error for any other
// malformed buffer — an offset section whose count doesn't fit the
// remaining bytes, or offsets that don't point at well-formed entries.
func Decode(data []byte) (*Block, error) {
	if len(data) < sizeOfU16 {
		panic("block: cannot decode empty or sub-header buffer")
	}

	offsetEnd := len(data) - sizeOfU16
	numEntries := int(binary.LittleEndian.Uint16(data[offsetEnd:]))

	offsetBytes := numEntries * sizeOfU16
	if offsetBytes > offsetEnd {
		return nil, common.ErrBlockTruncated
	}
	dataEnd := offsetEnd - offsetBytes

	offsets := make([]uint16, numEntries)
	for i := 0; i < numEntries; i++ {
		start := dataEnd + i*sizeOfU16
		offsets[i] = binary.LittleEndian.Uint16(data[start : start+sizeOfU16])
	}

	blockData := make([]byte, dataEnd)
	copy(blockData, data[:dataEnd])

	blk := &Block{Data: blockData, Offsets: offsets}
	if err := blk.validate(); err != nil {
		return nil, err
	}
	return blk, nil
}

// validate checks the structural invariants spec.md §3 requires of a
// decoded block: strictly increasing offsets, each pointing at a
// well-formed entry header that doesn't run past the end of Data.
func (b *Block) validate() error {
	for i, off := range b.Offsets {
		if i > 0 && off <= b.Offsets[i-1] {
			return common.ErrBlockCorrupt
		}
		pos := int(off)
		if pos+sizeOfU16 > len(b.Data) {
			return common.ErrBlockCorrupt
		}
		keyLen := int(binary.LittleEndian.Uint16(b.Data[pos:]))
		pos += sizeOfU16 + keyLen
		if pos+sizeOfU16 > len(b.Data) {
			return common.ErrBlockCorrupt
		}
		valLen := int(binary.LittleEndian.Uint16(b.Data[pos:]))
		pos += sizeOfU16 + valLen
		if pos > len(b.Data) {
			return common.ErrBlockCorrupt
		}
	}
	return nil
}

// NumEntries returns the number of key/value pairs in the block.
func (b *Block) NumEntries() int {
	return len(b.Offsets)
}

// Size returns the encoded size in bytes (data plus the offset array, not
// counting the trailing entry-count field).
func (b *Block) Size() int {
	return len(b.Data) + len(b.Offsets)*sizeOfU16
}

// FirstKey returns the key of the block's first entry. Panics if the block
// is empty; callers only call this on blocks a Builder actually produced.
func (b *Block) FirstKey() []byte {
	keyLen := int(binary.LittleEndian.Uint16(b.Data[0:]))
	return b.Data[sizeOfU16 : sizeOfU16+keyLen]
}

// entryAt decodes the key and value byte range starting at byte offset
// `pos` in Data. Returns the key, and the (start, end) value range.
func entryAt(data []byte, pos int) (key []byte, valueStart, valueEnd int) {
	keyLen := int(binary.LittleEndian.Uint16(data[pos:]))
	pos += sizeOfU16
	key = data[pos : pos+keyLen]
	pos += keyLen
	valLen := int(binary.LittleEndian.Uint16(data[pos:]))
	pos += sizeOfU16
	return key, pos, pos + valLen
}
