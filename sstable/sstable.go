package sstable

import (
	"encoding/binary"
	"fmt"

	"github.com/intellect4all/lsmtree/block"
	"github.com/intellect4all/lsmtree/common"
)

const footerTrailerSize = 8 + 4 // max_ts + block_meta_offset

// SsTable is an immutable, on-disk file view: a concatenation of encoded
// blocks followed by a block-meta directory, implementing spec.md §4.5.
type SsTable struct {
	file FileObject

	id    uint64
	cache Cache

	blockMeta       []Meta
	blockMetaOffset int

	firstKey []byte
	lastKey  []byte

	bloom *Filter
	maxTs uint64
}

// Open parses an existing SSTable file, reading its footer and block-meta
// section into memory. Blocks themselves are read lazily.
func Open(id uint64, cache Cache, file FileObject) (*SsTable, error) {
	size := file.Size()
	if size < int64(footerTrailerSize) {
		return nil, fmt.Errorf("sstable: file too small to be a valid sstable: %w", common.ErrMetaCorrupt)
	}

	trailer, err := file.ReadAt(size-int64(footerTrailerSize), footerTrailerSize)
	if err != nil {
		return nil, fmt.Errorf("sstable: read footer: %w", err)
	}
	maxTs := binary.LittleEndian.Uint64(trailer[0:8])
	blockMetaOffset := int64(binary.LittleEndian.Uint32(trailer[8:12]))

	rest, err := file.ReadAt(blockMetaOffset, int(size-int64(footerTrailerSize)-blockMetaOffset))
	if err != nil {
		return nil, fmt.Errorf("sstable: read block-meta section: %w", err)
	}

	meta, consumed, err := decodeMeta(rest)
	if err != nil {
		return nil, fmt.Errorf("sstable: decode block-meta: %w", err)
	}
	if len(meta) == 0 {
		return nil, common.ErrSSTableEmpty
	}

	if consumed+4 > len(rest) {
		return nil, fmt.Errorf("sstable: missing bloom length: %w", common.ErrMetaCorrupt)
	}
	bloomLen := int(binary.LittleEndian.Uint32(rest[consumed:]))
	bloomStart := consumed + 4
	var bloomFilter *Filter
	if bloomLen > 0 {
		if bloomStart+bloomLen > len(rest) {
			return nil, fmt.Errorf("sstable: truncated bloom filter: %w", common.ErrMetaCorrupt)
		}
		bloomFilter, err = DecodeFilter(rest[bloomStart : bloomStart+bloomLen])
		if err != nil {
			return nil, err
		}
	}

	return &SsTable{
		file:            file,
		id:              id,
		cache:           cache,
		blockMeta:       meta,
		blockMetaOffset: int(blockMetaOffset),
		firstKey:        meta[0].FirstKey,
		lastKey:         meta[len(meta)-1].LastKey,
		bloom:           bloomFilter,
		maxTs:           maxTs,
	}, nil
}

// ReadBlock fetches block idx, consulting the cache first if one is
// attached and falling back to a disk read on a miss, per spec.md §4.5 and
// §5.
func (s *SsTable) ReadBlock(idx int) (*block.Block, error) {
	if idx < 0 || idx >= len(s.blockMeta) {
		return nil, fmt.Errorf("sstable: block index %d out of range [0,%d)", idx, len(s.blockMeta))
	}

	if s.cache != nil {
		if blk, ok := s.cache.Get(s.id, idx); ok {
			return blk, nil
		}
	}

	start := int64(s.blockMeta[idx].Offset)
	var end int64
	if idx+1 < len(s.blockMeta) {
		end = int64(s.blockMeta[idx+1].Offset)
	} else {
		end = int64(s.blockMetaOffset)
	}

	region, err := s.file.ReadAt(start, int(end-start))
	if err != nil {
		return nil, fmt.Errorf("sstable: read block %d: %w", idx, err)
	}
	blk, err := decodeBlockRegion(region)
	if err != nil {
		return nil, fmt.Errorf("sstable: decode block %d: %w", idx, err)
	}

	if s.cache != nil {
		s.cache.Insert(s.id, idx, blk)
	}
	return blk, nil
}

// NumBlocks returns the number of blocks in the table.
func (s *SsTable) NumBlocks() int { return len(s.blockMeta) }

// FirstKey returns the smallest key in the table.
func (s *SsTable) FirstKey() []byte { return s.firstKey }

// LastKey returns the largest key in the table.
func (s *SsTable) LastKey() []byte { return s.lastKey }

// ID returns the table's numeric identity, used as the block-cache key
// namespace.
func (s *SsTable) ID() uint64 { return s.id }

// MaxTs returns the reserved MVCC timestamp field; always 0 today (see
// SPEC_FULL.md §13(a)).
func (s *SsTable) MaxTs() uint64 { return s.maxTs }

// MayContain reports whether key might be present, consulting the table's
// bloom filter if one was built. A table without a filter always answers
// true (no information to rule the key out).
func (s *SsTable) MayContain(key []byte) bool {
	if s.bloom == nil {
		return true
	}
	return s.bloom.MayContain(key)
}

// Close releases the underlying file resources, if the FileObject
// implementation holds any (osFileObject does; memFileObject is a no-op).
func (s *SsTable) Close() error {
	type closer interface{ Close() error }
	if c, ok := s.file.(closer); ok {
		return c.Close()
	}
	return nil
}
