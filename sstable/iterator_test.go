package sstable

import (
	"bytes"
	"testing"
)

// Invariant #3: exhaustive iteration from the first entry yields a
// non-decreasing key sequence matching insertion order.
func TestIteratorExhaustiveMatchesInsertionOrder(t *testing.T) {
	const n = 733
	sst := buildTestTable(t, n, 1024, false)

	it, err := CreateAndSeekToFirst(sst)
	if err != nil {
		t.Fatalf("CreateAndSeekToFirst: %v", err)
	}
	count := 0
	var prev []byte
	for it.IsValid() {
		key, value := it.Key(), it.Value()
		if prev != nil && bytes.Compare(prev, key) >= 0 {
			t.Fatalf("keys not strictly increasing at index %d: %q then %q", count, prev, key)
		}
		if !bytes.Equal(key, keyOf(count)) || !bytes.Equal(value, valueOf(count)) {
			t.Fatalf("entry %d = (%q,%q), want (%q,%q)", count, key, value, keyOf(count), valueOf(count))
		}
		prev = append([]byte(nil), key...)
		count++
		if err := it.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	if count != n {
		t.Fatalf("iterated %d entries, want %d", count, n)
	}
}

func TestSeekToKeyAcrossBlocks(t *testing.T) {
	const n = 500
	sst := buildTestTable(t, n, 256, false)

	for _, i := range []int{0, 1, 50, 250, 499} {
		it, err := CreateAndSeekToKey(sst, keyOf(i))
		if err != nil {
			t.Fatalf("CreateAndSeekToKey(%d): %v", i, err)
		}
		if !it.IsValid() {
			t.Fatalf("seek to existing key %d produced an invalid iterator", i)
		}
		if !bytes.Equal(it.Key(), keyOf(i)) {
			t.Fatalf("seek to key %d landed on %q", i, it.Key())
		}
	}
}

func TestSeekToKeyPastLastKeyIsInvalid(t *testing.T) {
	sst := buildTestTable(t, 100, 512, false)
	it, err := CreateAndSeekToKey(sst, []byte("zzzzzzzzzz"))
	if err != nil {
		t.Fatalf("CreateAndSeekToKey: %v", err)
	}
	if it.IsValid() {
		t.Fatal("expected seek past the last key to be invalid")
	}
}

func TestSeekToKeyBetweenEntries(t *testing.T) {
	const n = 200
	sst := buildTestTable(t, n, 512, false)

	// keyOf uses %05d so "key_00010a" sorts between keyOf(10) and keyOf(11).
	it, err := CreateAndSeekToKey(sst, []byte("key_00010a"))
	if err != nil {
		t.Fatalf("CreateAndSeekToKey: %v", err)
	}
	if !it.IsValid() {
		t.Fatal("expected a valid successor entry")
	}
	if !bytes.Equal(it.Key(), keyOf(11)) {
		t.Fatalf("got %q, want %q", it.Key(), keyOf(11))
	}
}
