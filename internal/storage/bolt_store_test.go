package storage

import (
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"
)

func TestBoltStoreAppendsAndReadsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	storeRaw, err := openBolt(dir+"/journal.db", normalizeOptions(Options{}))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	now := time.Now()
	for i, rec := range []string{"first", "second", "third"} {
		if err := store.Append(now.Add(time.Duration(i)*time.Millisecond), []byte(rec)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	recent, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 || string(recent[0]) != "third" || string(recent[1]) != "second" {
		t.Fatalf("unexpected records %q", recent)
	}

	all, err := store.Recent(0)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected all 3 records, got %d err=%v", len(all), err)
	}
}

func TestBoltStoreExpiresRecords(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		RecordTTL:       1 * time.Second,
		CleanupInterval: 1 * time.Second,
	}

	storeRaw, err := openBolt(dir+"/journal.db", opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	if err := store.Append(time.Now().Add(-2*time.Second), []byte("old")); err != nil {
		t.Fatalf("Append old: %v", err)
	}

	recent, err := store.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expired record should be hidden, got %q", recent)
	}

	// Fast-forward cleanup cadence and trigger expiry.
	store.lastCleanup.Store(time.Now().Add(-2 * time.Second).Unix())
	if err := store.Append(time.Now(), []byte("new")); err != nil {
		t.Fatalf("Append new: %v", err)
	}

	var keys int
	if err := store.db.View(func(tx *bolt.Tx) error {
		keys = tx.Bucket([]byte(journalBucket)).Stats().KeyN
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}
	if keys != 1 {
		t.Fatalf("expected expired record to be removed, %d keys remain", keys)
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.Append(time.Now(), []byte("x")); err != nil {
		t.Fatalf("noop store Append: %v", err)
	}
	if recs, err := store.Recent(10); err != nil || recs != nil {
		t.Fatalf("noop store Recent = %v, %v", recs, err)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported storage type")
	}
	if _, err := NewStore("bbolt", " ", Options{}); err == nil {
		t.Fatalf("expected error for missing bbolt path")
	}
}
