package sstable

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/golang/snappy"

	"github.com/intellect4all/lsmtree/block"
	"github.com/intellect4all/lsmtree/common"
)

// compressionNone and compressionSnappy tag the byte immediately preceding
// a block's payload in the on-disk block region (spec.md §6's "future
// extensions ... append additional trailers").
const (
	compressionNone   byte = 0
	compressionSnappy byte = 1
)

const checksumSize = 8 // xxhash64

// encodeBlockRegion wraps an encoded block with an optional snappy
// compression pass and an xxhash64 checksum trailer:
//
//	[compression: 1][payload][checksum: 8]
//
// This sits outside block.Block.Encode entirely — the 64KiB budget in
// spec.md §4.2 is computed against the uncompressed, unchecksummed form,
// exactly as spec.md prescribes.
func encodeBlockRegion(blk *block.Block, compress bool) []byte {
	encoded := blk.Encode()

	compression := compressionNone
	payload := encoded
	if compress {
		compressed := snappy.Encode(nil, encoded)
		if len(compressed) < len(encoded) {
			compression = compressionSnappy
			payload = compressed
		}
	}

	region := make([]byte, 0, 1+len(payload)+checksumSize)
	region = append(region, compression)
	region = append(region, payload...)
	region = binary.LittleEndian.AppendUint64(region, xxhash.Sum64(payload))
	return region
}

// decodeBlockRegion reverses encodeBlockRegion: verifies the checksum,
// reverses compression if present, and decodes the resulting bytes as a
// block.Block.
func decodeBlockRegion(region []byte) (*block.Block, error) {
	if len(region) < 1+checksumSize {
		return nil, common.ErrBlockTruncated
	}
	compression := region[0]
	payload := region[1 : len(region)-checksumSize]
	wantChecksum := binary.LittleEndian.Uint64(region[len(region)-checksumSize:])

	if xxhash.Sum64(payload) != wantChecksum {
		return nil, common.ErrChecksumMismatch
	}

	encoded := payload
	if compression == compressionSnappy {
		decoded, err := snappy.Decode(nil, payload)
		if err != nil {
			return nil, common.ErrBlockCorrupt
		}
		encoded = decoded
	}

	return block.Decode(encoded)
}
