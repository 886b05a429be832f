package block

import (
	"encoding/binary"

	"github.com/intellect4all/lsmtree/common"
)

// Builder accumulates sorted key/value entries into a single block, up to
// a target byte budget. The first entry is always accepted regardless of
// size — spec.md's "large first entry" contract — so a caller never gets
// stuck unable to make progress on an oversized singleton.
type Builder struct {
	offsets   []uint16
	data      []byte
	blockSize int
	firstKey  []byte
}

// NewBuilder creates a builder targeting blockSize bytes per block.
func NewBuilder(blockSize int) *Builder {
	return &Builder{
		blockSize: blockSize,
	}
}

// Add appends a key/value entry. It returns false without mutating the
// builder when the block is non-empty and the entry would push the
// projected encoded size past blockSize; the caller is expected to finish
// the current block and retry on a fresh Builder.
func (b *Builder) Add(key, value []byte) (bool, error) {
	if len(key) == 0 {
		return false, common.ErrKeyEmpty
	}
	if len(key) > MaxKeyLen {
		return false, common.ErrKeyTooLarge
	}
	if len(value) > MaxValueLen {
		return false, common.ErrValueTooLarge
	}
	if len(b.offsets) >= MaxEntries {
		return false, nil
	}

	entryLen := 2 + len(key) + 2 + len(value)
	projected := len(b.data) + (len(b.offsets)+1)*2 + 2 + entryLen

	if !b.IsEmpty() && projected > b.blockSize {
		return false, nil
	}

	if b.IsEmpty() {
		b.firstKey = append([]byte(nil), key...)
	}

	b.offsets = append(b.offsets, uint16(len(b.data)))
	b.data = binary.LittleEndian.AppendUint16(b.data, uint16(len(key)))
	b.data = append(b.data, key...)
	b.data = binary.LittleEndian.AppendUint16(b.data, uint16(len(value)))
	b.data = append(b.data, value...)

	return true, nil
}

// IsEmpty reports whether any entry has been added.
func (b *Builder) IsEmpty() bool {
	return b.firstKey == nil
}

// FirstKey returns the key of the first entry added, or nil if empty.
func (b *Builder) FirstKey() []byte {
	return b.firstKey
}

// Build consumes the builder and returns the finished, immutable Block.
func (b *Builder) Build() *Block {
	return &Block{Data: b.data, Offsets: b.offsets}
}
