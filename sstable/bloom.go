package sstable

import (
	"bytes"
	"fmt"

	"github.com/bits-and-blooms/bloom/v3"
)

// defaultFalsePositiveRate is the target false-positive rate for the
// optional per-table bloom filter, matching the rate the teacher's own
// bloom filter used (_examples/intellect4all-storage-engines/lsm/sstable_builder.go).
const defaultFalsePositiveRate = 0.01

// Filter wraps bits-and-blooms/bloom/v3 as the optional membership filter
// spec.md §3 lists as an SsTable attribute. A Builder keeps one filter for
// the whole table and adds every key to it, serializes it into the
// SSTable's trailer, and Open loads it back.
type Filter struct {
	inner *bloom.BloomFilter
}

// NewFilter creates a filter sized for expectedKeys entries.
func NewFilter(expectedKeys int) *Filter {
	if expectedKeys < 1 {
		expectedKeys = 1
	}
	return &Filter{inner: bloom.NewWithEstimates(uint(expectedKeys), defaultFalsePositiveRate)}
}

// Add records key's membership.
func (f *Filter) Add(key []byte) {
	f.inner.Add(key)
}

// MayContain reports whether key might be present; false is a definitive
// answer, true may be a false positive.
func (f *Filter) MayContain(key []byte) bool {
	return f.inner.Test(key)
}

// Encode serializes the filter for the SSTable trailer.
func (f *Filter) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := f.inner.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("sstable: encode bloom filter: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeFilter deserializes a filter previously produced by Encode.
func DecodeFilter(data []byte) (*Filter, error) {
	inner := &bloom.BloomFilter{}
	if _, err := inner.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("sstable: decode bloom filter: %w", err)
	}
	return &Filter{inner: inner}, nil
}
