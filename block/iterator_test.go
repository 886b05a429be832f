package block

import (
	"bytes"
	"fmt"
	"testing"
)

func buildHundredEntryBlock(t *testing.T) *Block {
	t.Helper()
	keys, values := hundredEntries()
	b := NewBuilder(10000)
	for i := range keys {
		if ok, err := b.Add(keys[i], values[i]); err != nil || !ok {
			t.Fatalf("Add(%d): ok=%v err=%v", i, ok, err)
		}
	}
	return b.Build()
}

// S4: forward seek within a block. Seeking for key_of(i)+off lands on the
// entry at index i+1 (the next key_of boundary), or invalid once no larger
// key exists.
func TestSeekToKeyForwardWithinBlock(t *testing.T) {
	blk := buildHundredEntryBlock(t)

	for _, off := range []int{1, 2, 3, 4, 5} {
		for i := 0; i < 100; i++ {
			seekKey := keyOfOffset(i, off)
			it := CreateAndSeekToKey(blk, seekKey)
			if i == 99 && off >= 1 {
				if it.IsValid() {
					t.Fatalf("off=%d i=%d: expected invalid iterator past the last key, got %q", off, i, it.Key())
				}
				continue
			}
			if !it.IsValid() {
				t.Fatalf("off=%d i=%d: expected a valid entry", off, i)
			}
			if !bytes.Equal(it.Key(), keyOf(i+1)) {
				t.Fatalf("off=%d i=%d: got key %q want %q", off, i, it.Key(), keyOf(i+1))
			}
		}
	}
}

func TestSeekToKeyPastLastIsInvalid(t *testing.T) {
	blk := buildHundredEntryBlock(t)
	it := CreateAndSeekToKey(blk, []byte("zzzzzzzz"))
	if it.IsValid() {
		t.Fatal("expected seek past the last key to be invalid")
	}
}

func TestSeekToKeyExactMatch(t *testing.T) {
	blk := buildHundredEntryBlock(t)
	it := CreateAndSeekToKey(blk, keyOf(42))
	if !it.IsValid() {
		t.Fatal("expected exact match to be valid")
	}
	if !bytes.Equal(it.Key(), keyOf(42)) || !bytes.Equal(it.Value(), valueOf(42)) {
		t.Fatalf("got (%q,%q)", it.Key(), it.Value())
	}
}

func TestIteratorNumEntriesAndSize(t *testing.T) {
	blk := buildHundredEntryBlock(t)
	if blk.NumEntries() != 100 {
		t.Fatalf("expected 100 entries, got %d", blk.NumEntries())
	}
	if blk.Size() <= 0 {
		t.Fatalf("expected positive size, got %d", blk.Size())
	}
}

// keyOfOffset mirrors spec.md S4: "key_" + zero-pad(i*5+off, 3).
func keyOfOffset(i, off int) []byte {
	return []byte(fmt.Sprintf("key_%03d", i*5+off))
}
