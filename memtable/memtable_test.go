package memtable

import (
	"bytes"
	"testing"
)

func TestPutGetRoundTrip(t *testing.T) {
	m := New(1 << 20)
	m.Put([]byte("b"), []byte("2"))
	m.Put([]byte("a"), []byte("1"))
	m.Put([]byte("c"), []byte("3"))

	v, ok := m.Get([]byte("a"))
	if !ok || !bytes.Equal(v, []byte("1")) {
		t.Fatalf("Get(a) = (%q,%v), want (1,true)", v, ok)
	}
	if _, ok := m.Get([]byte("missing")); ok {
		t.Fatal("expected missing key to report not found")
	}
}

func TestPutOverwritesExistingKey(t *testing.T) {
	m := New(1 << 20)
	m.Put([]byte("a"), []byte("1"))
	m.Put([]byte("a"), []byte("2"))
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	v, _ := m.Get([]byte("a"))
	if !bytes.Equal(v, []byte("2")) {
		t.Fatalf("Get(a) = %q, want 2", v)
	}
}

func TestDeleteRecordsEmptyValueTombstone(t *testing.T) {
	m := New(1 << 20)
	m.Put([]byte("a"), []byte("1"))
	m.Delete([]byte("a"))

	v, ok := m.Get([]byte("a"))
	if !ok {
		t.Fatal("expected the tombstoned key to still be present")
	}
	if len(v) != 0 {
		t.Fatalf("expected an empty value for a tombstone, got %q", v)
	}
}

func TestIsFullAtBudget(t *testing.T) {
	m := New(10)
	if m.IsFull() {
		t.Fatal("empty table should not be full")
	}
	m.Put([]byte("key"), []byte("value"))
	if !m.IsFull() {
		t.Fatalf("expected table to be full after exceeding budget, size=%d", m.Size())
	}
}

func TestIteratorSnapshotIsStableUnderMutation(t *testing.T) {
	m := New(1 << 20)
	m.Put([]byte("a"), []byte("1"))
	m.Put([]byte("b"), []byte("2"))

	it := CreateAndSeekToFirst(m)
	m.Put([]byte("c"), []byte("3")) // mutate after snapshot

	var keys []string
	for it.IsValid() {
		keys = append(keys, string(it.Key()))
		if err := it.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	if len(keys) != 2 {
		t.Fatalf("iterator should not observe post-snapshot writes, got %v", keys)
	}
}

func TestIteratorSeekToKey(t *testing.T) {
	m := New(1 << 20)
	for _, k := range []string{"a", "c", "e", "g"} {
		m.Put([]byte(k), []byte(k))
	}
	it := CreateAndSeekToKey(m, []byte("d"))
	if !it.IsValid() || string(it.Key()) != "e" {
		t.Fatalf("seek to d landed on valid=%v key=%q, want e", it.IsValid(), it.Key())
	}
}

func TestIteratorSurfacesTombstonesUnfiltered(t *testing.T) {
	m := New(1 << 20)
	m.Put([]byte("a"), []byte("1"))
	m.Delete([]byte("b"))
	m.Put([]byte("c"), []byte("3"))

	it := CreateAndSeekToFirst(m)
	count := 0
	sawTombstone := false
	for it.IsValid() {
		if len(it.Value()) == 0 {
			sawTombstone = true
		}
		count++
		if err := it.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	if count != 3 {
		t.Fatalf("expected all 3 entries including the tombstone, got %d", count)
	}
	if !sawTombstone {
		t.Fatal("expected the tombstone to be surfaced, not filtered, by the memtable iterator")
	}
}
