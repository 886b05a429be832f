package sstable

import (
	"encoding/binary"
	"fmt"

	"github.com/intellect4all/lsmtree/block"
	"github.com/intellect4all/lsmtree/common"
)

// Options configures a Builder. Compress and ExpectedKeys are additive
// knobs beyond spec.md's core contract (the domain stack from
// SPEC_FULL.md §11). A false Compress disables compression; a bloom
// filter is always built, and an ExpectedKeys below 1 sizes it for one key.
type Options struct {
	BlockSize    int
	Compress     bool
	ExpectedKeys int
}

// DefaultOptions returns reasonable defaults: 4KiB blocks, no compression,
// a bloom filter sized for 1024 keys.
func DefaultOptions() Options {
	return Options{BlockSize: 4096, Compress: false, ExpectedKeys: 1024}
}

// Builder accumulates blocks into a file and emits the block directory,
// implementing spec.md §4.4's SsTableBuilder.
type Builder struct {
	opts Options

	inner *block.Builder
	data  []byte
	meta  []Meta
	bloom *Filter

	firstKey []byte
	lastKey  []byte
}

// NewBuilder creates a builder targeting opts.BlockSize per block.
func NewBuilder(opts Options) *Builder {
	return &Builder{
		opts:  opts,
		inner: block.NewBuilder(opts.BlockSize),
		bloom: NewFilter(opts.ExpectedKeys),
	}
}

// Add inserts a key/value pair. Keys must be added in ascending order;
// Add finishes the current block and starts a fresh one transparently
// when the block is full.
func (b *Builder) Add(key, value []byte) error {
	b.bloom.Add(key)

	wasEmpty := b.inner.IsEmpty()
	ok, err := b.inner.Add(key, value)
	if err != nil {
		return err
	}
	if ok {
		if wasEmpty {
			b.firstKey = append([]byte(nil), key...)
		}
		b.lastKey = append([]byte(nil), key...)
		return nil
	}

	// Block full: finish it, then retry on the fresh inner builder, which
	// must succeed since it starts empty.
	b.finishBlock()
	ok, err = b.inner.Add(key, value)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("sstable: entry did not fit a fresh block")
	}
	b.firstKey = append([]byte(nil), key...)
	b.lastKey = append([]byte(nil), key...)
	return nil
}

// finishBlock replaces inner with a fresh block.Builder, encodes the
// just-finished block (with compression and a checksum trailer) into
// data, and records its Meta entry.
func (b *Builder) finishBlock() {
	blk := b.inner.Build()
	region := encodeBlockRegion(blk, b.opts.Compress)

	b.meta = append(b.meta, Meta{
		Offset:   uint32(len(b.data)),
		FirstKey: b.firstKey,
		LastKey:  b.lastKey,
	})
	b.data = append(b.data, region...)

	b.inner = block.NewBuilder(b.opts.BlockSize)
	b.firstKey = nil
	b.lastKey = nil
}

// EstimatedSize returns the number of data bytes accumulated so far, the
// signal a flush/compaction policy (out of scope here) would use to decide
// when to roll a new table — see SPEC_FULL.md §12.
func (b *Builder) EstimatedSize() int {
	return len(b.data)
}

// Build finishes any open block, writes the file to path, and returns the
// resulting read-only SsTable bound to id and cache (cache may be nil).
func (b *Builder) Build(id uint64, cache Cache, path string) (*SsTable, error) {
	if !b.inner.IsEmpty() {
		b.finishBlock()
	}
	if len(b.meta) == 0 {
		return nil, common.ErrSSTableEmpty
	}

	blockMetaOffset := len(b.data)
	b.data = append(b.data, encodeMeta(b.meta)...)

	bloomBytes, err := b.bloom.Encode()
	if err != nil {
		return nil, err
	}
	b.data = binary.LittleEndian.AppendUint32(b.data, uint32(len(bloomBytes)))
	b.data = append(b.data, bloomBytes...)

	const maxTs uint64 = 0 // reserved; see SPEC_FULL.md §13(a)
	b.data = binary.LittleEndian.AppendUint64(b.data, maxTs)
	b.data = binary.LittleEndian.AppendUint32(b.data, uint32(blockMetaOffset))

	file, err := CreateFile(path, b.data)
	if err != nil {
		return nil, err
	}

	return &SsTable{
		file:            file,
		id:              id,
		cache:           cache,
		blockMeta:       b.meta,
		blockMetaOffset: blockMetaOffset,
		firstKey:        b.meta[0].FirstKey,
		lastKey:         b.meta[len(b.meta)-1].LastKey,
		bloom:           b.bloom,
		maxTs:           maxTs,
	}, nil
}
