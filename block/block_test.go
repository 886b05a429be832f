package block

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	b := NewBuilder(16)
	ok, err := b.Add([]byte("233"), []byte("233333"))
	if err != nil || !ok {
		t.Fatalf("Add failed: ok=%v err=%v", ok, err)
	}
	blk := b.Build()

	decoded, err := Decode(blk.Encode())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded.Data, blk.Data) {
		t.Fatalf("data mismatch: got %v want %v", decoded.Data, blk.Data)
	}
	if len(decoded.Offsets) != len(blk.Offsets) {
		t.Fatalf("offsets length mismatch: got %d want %d", len(decoded.Offsets), len(blk.Offsets))
	}
	for i := range blk.Offsets {
		if decoded.Offsets[i] != blk.Offsets[i] {
			t.Fatalf("offset[%d] mismatch: got %d want %d", i, decoded.Offsets[i], blk.Offsets[i])
		}
	}

	it := CreateAndSeekToFirst(decoded)
	if !it.IsValid() {
		t.Fatal("expected a single valid entry")
	}
	if string(it.Key()) != "233" || string(it.Value()) != "233333" {
		t.Fatalf("got (%q, %q)", it.Key(), it.Value())
	}
	it.Next()
	if it.IsValid() {
		t.Fatal("expected exactly one entry")
	}
}

// test_malicious_block: decoding an empty buffer must fail loudly.
func TestMaliciousBlockEmptyInputPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected Decode(nil) to panic")
		}
	}()
	_, _ = Decode(nil)
}

func TestMaliciousBlockTruncatedReturnsError(t *testing.T) {
	b := NewBuilder(4096)
	if ok, _ := b.Add([]byte("a"), []byte("1")); !ok {
		t.Fatal("Add failed")
	}
	encoded := b.Build().Encode()
	_, err := Decode(encoded[:len(encoded)-3])
	if err == nil {
		t.Fatal("expected decode of truncated block to fail")
	}
}

func Test100KeyRoundTrip(t *testing.T) {
	keys, values := hundredEntries()
	b := NewBuilder(10000)
	for i := range keys {
		ok, err := b.Add(keys[i], values[i])
		if err != nil || !ok {
			t.Fatalf("Add(%d) failed: ok=%v err=%v", i, ok, err)
		}
	}
	blk := b.Build()

	for pass := 0; pass < 5; pass++ {
		it := CreateAndSeekToFirst(blk)
		for i := 0; i < 100; i++ {
			if !it.IsValid() {
				t.Fatalf("pass %d: iterator invalid at i=%d", pass, i)
			}
			if !bytes.Equal(it.Key(), keys[i]) || !bytes.Equal(it.Value(), values[i]) {
				t.Fatalf("pass %d: entry %d = (%q,%q) want (%q,%q)", pass, i, it.Key(), it.Value(), keys[i], values[i])
			}
			it.Next()
		}
		if it.IsValid() {
			t.Fatalf("pass %d: expected exhaustion after 100 entries", pass)
		}
	}
}
