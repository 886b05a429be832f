// Package common holds the error sentinels shared by the block, sstable,
// memtable and iterator packages. The full storage-engine interface the
// teacher package exposed here (StorageEngine, Stats) belonged to the
// compaction/WAL-backed engine layer that sits above this repo's scope and
// was dropped along with it; see DESIGN.md.
package common

import "errors"

var (
	// ErrKeyEmpty is returned when a caller supplies a zero-length key;
	// spec.md requires key length > 0.
	ErrKeyEmpty = errors.New("lsmtree: key must not be empty")

	// ErrKeyTooLarge and ErrValueTooLarge enforce the 65535-byte limits
	// blocks rely on to fit offsets in a uint16.
	ErrKeyTooLarge   = errors.New("lsmtree: key exceeds 65535 bytes")
	ErrValueTooLarge = errors.New("lsmtree: value exceeds 65535 bytes")

	// ErrBlockTruncated and ErrBlockCorrupt are decode-failure kinds for
	// a block whose trailer or offsets don't describe a well-formed
	// entry stream.
	ErrBlockTruncated = errors.New("lsmtree: block data truncated")
	ErrBlockCorrupt   = errors.New("lsmtree: block offsets corrupt")

	// ErrChecksumMismatch signals that an on-disk checksum doesn't match
	// the bytes it covers: a block's stored payload (compressed, when
	// compression is on) or the block-meta section.
	ErrChecksumMismatch = errors.New("lsmtree: block checksum mismatch")

	// ErrMetaCorrupt marks a malformed SSTable block-meta section.
	ErrMetaCorrupt = errors.New("lsmtree: sstable block-meta corrupt")

	// ErrSSTableEmpty is returned by SsTableBuilder.Build when no entry
	// was ever added.
	ErrSSTableEmpty = errors.New("lsmtree: sstable has no blocks")

	// ErrIteratorErrored is the panic value FusedIterator surfaces
	// from Key()/Value() once it has recorded a prior Next() failure.
	ErrIteratorErrored = errors.New("lsmtree: iterator used after error")
)
