package sstable

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/intellect4all/lsmtree/common"
)

// Meta is the per-block directory record spec.md §3 calls BlockMeta: the
// byte offset of the block's on-disk region (see codec.go), and copies of
// its first and last keys so SsTableIterator.SeekToKey can binary search
// without touching disk.
type Meta struct {
	Offset   uint32
	FirstKey []byte
	LastKey  []byte
}

// encodeMeta serializes the block-meta section:
//
//	[num_entries: u32] { [offset: u32] [first_key_len: u16] [first_key]
//	                      [last_key_len: u16] [last_key] }* [checksum: u64]
//
// spec.md §6 leaves this encoding unprescribed provided it round-trips;
// this shape follows the original mini-lsm tutorial's
// BlockMeta::encode_block_meta (see SPEC_FULL.md §12), extended with an
// xxhash64 checksum trailer.
func encodeMeta(meta []Meta) []byte {
	buf := binary.LittleEndian.AppendUint32(nil, uint32(len(meta)))
	for _, m := range meta {
		buf = binary.LittleEndian.AppendUint32(buf, m.Offset)
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(m.FirstKey)))
		buf = append(buf, m.FirstKey...)
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(m.LastKey)))
		buf = append(buf, m.LastKey...)
	}
	buf = binary.LittleEndian.AppendUint64(buf, xxhash.Sum64(buf))
	return buf
}

// decodeMeta parses a block-meta section starting at the head of data,
// returning the decoded entries and the number of bytes consumed (so the
// caller can locate whatever trailer follows).
func decodeMeta(data []byte) ([]Meta, int, error) {
	if len(data) < 4 {
		return nil, 0, common.ErrMetaCorrupt
	}
	numEntries := int(binary.LittleEndian.Uint32(data))
	pos := 4

	meta := make([]Meta, numEntries)
	for i := 0; i < numEntries; i++ {
		if pos+4+2 > len(data) {
			return nil, 0, common.ErrMetaCorrupt
		}
		offset := binary.LittleEndian.Uint32(data[pos:])
		pos += 4
		fkLen := int(binary.LittleEndian.Uint16(data[pos:]))
		pos += 2
		if pos+fkLen+2 > len(data) {
			return nil, 0, common.ErrMetaCorrupt
		}
		firstKey := append([]byte(nil), data[pos:pos+fkLen]...)
		pos += fkLen
		lkLen := int(binary.LittleEndian.Uint16(data[pos:]))
		pos += 2
		if pos+lkLen > len(data) {
			return nil, 0, common.ErrMetaCorrupt
		}
		lastKey := append([]byte(nil), data[pos:pos+lkLen]...)
		pos += lkLen

		meta[i] = Meta{Offset: offset, FirstKey: firstKey, LastKey: lastKey}
	}

	if pos+checksumSize > len(data) {
		return nil, 0, common.ErrMetaCorrupt
	}
	wantChecksum := binary.LittleEndian.Uint64(data[pos:])
	if xxhash.Sum64(data[:pos]) != wantChecksum {
		return nil, 0, common.ErrChecksumMismatch
	}
	pos += checksumSize

	return meta, pos, nil
}
