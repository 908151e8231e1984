package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func TestBoltStoreMarksAndExpiresUsers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "users.db")
	store, err := openBolt(path, Options{UserTTL: time.Minute, CleanupInterval: time.Hour})
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer store.Close()

	clock := time.Now()
	store.now = func() time.Time { return clock }

	seen, err := store.SeenUser(42)
	if err != nil || seen {
		t.Fatalf("expected unseen user, seen=%v err=%v", seen, err)
	}

	if err := store.MarkUser(42); err != nil {
		t.Fatalf("MarkUser: %v", err)
	}

	seen, err = store.SeenUser(42)
	if err != nil || !seen {
		t.Fatalf("expected user marked as seen, got seen=%v err=%v", seen, err)
	}

	clock = clock.Add(2 * time.Minute)
	seen, err = store.SeenUser(42)
	if err != nil {
		t.Fatalf("SeenUser after expiry: %v", err)
	}
	if seen {
		t.Fatalf("expected entry to expire")
	}
}

func TestBoltStoreCleanupSweepsExpired(t *testing.T) {
	store, err := openBolt(filepath.Join(t.TempDir(), "users.db"), Options{UserTTL: time.Minute, CleanupInterval: time.Hour})
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer store.Close()

	clock := time.Now()
	store.now = func() time.Time { return clock }

	for _, id := range []uint32{1, 2, 3} {
		if err := store.MarkUser(id); err != nil {
			t.Fatalf("MarkUser(%d): %v", id, err)
		}
	}

	clock = clock.Add(2 * time.Hour)
	if _, err := store.SeenUser(99); err != nil {
		t.Fatalf("SeenUser: %v", err)
	}

	n, err := store.count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected expired entries to be swept, %d remain", n)
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.MarkUser(1); err != nil {
		t.Fatalf("noop store MarkUser: %v", err)
	}
	if seen, _ := store.SeenUser(1); seen {
		t.Fatalf("noop store must never report seen")
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "x", Options{}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
	if _, err := NewStore("bbolt", " ", Options{}); err == nil {
		t.Fatalf("expected error for missing path")
	}
}
