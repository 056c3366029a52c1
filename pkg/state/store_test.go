package state

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

// openStores returns every backend under test, closed on cleanup.
func openStores(t *testing.T) map[string]Store {
	t.Helper()

	ctx := context.Background()
	sqlite, err := OpenSQLiteStore(ctx, filepath.Join(t.TempDir(), "folio.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrKeyNotFound) {
				t.Fatalf("expected ErrKeyNotFound, got %v", err)
			}

			if err := s.Set(ctx, "k", []byte("v1"), 0); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := s.Set(ctx, "k", []byte("v2"), 0); err != nil {
				t.Fatalf("overwrite: %v", err)
			}

			got, err := s.Get(ctx, "k")
			if err != nil || string(got) != "v2" {
				t.Fatalf("expected v2, got %q (%v)", got, err)
			}

			if ok, _ := s.Exists(ctx, "k"); !ok {
				t.Error("expected key to exist")
			}

			if err := s.Delete(ctx, "k"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if ok, _ := s.Exists(ctx, "k"); ok {
				t.Error("expected key to be gone")
			}
		})
	}
}

func TestStore_TTL(t *testing.T) {
	ctx := context.Background()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(ctx, "short", []byte("x"), 20*time.Millisecond); err != nil {
				t.Fatalf("set: %v", err)
			}
			time.Sleep(40 * time.Millisecond)

			if _, err := s.Get(ctx, "short"); !errors.Is(err, ErrKeyNotFound) {
				t.Errorf("expected expired key to be missing, got %v", err)
			}
		})
	}
}

func TestStore_Keys(t *testing.T) {
	ctx := context.Background()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"flag:a:site-theme", "flag:b:site-theme", "flag:a:other"} {
				if err := s.Set(ctx, k, []byte("1"), 0); err != nil {
					t.Fatalf("set %s: %v", k, err)
				}
			}

			keys, err := s.Keys(ctx, "flag:*:site-theme")
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			sort.Strings(keys)
			if len(keys) != 2 || keys[0] != "flag:a:site-theme" || keys[1] != "flag:b:site-theme" {
				t.Errorf("unexpected keys: %v", keys)
			}
		})
	}
}

func TestMemoryStore_Closed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Close()
	s.Close()

	if err := s.Set(ctx, "k", nil, 0); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("expected ErrStoreClosed, got %v", err)
	}
	if err := s.Ping(ctx); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("expected ping to fail, got %v", err)
	}
}

func TestSQLiteStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "folio.db")

	s, err := OpenSQLiteStore(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(ctx, "k", []byte("kept"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	reopened, err := OpenSQLiteStore(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "k")
	if err != nil || string(got) != "kept" {
		t.Errorf("expected persisted value, got %q (%v)", got, err)
	}
}

func TestSQLiteStore_Purge(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLiteStore(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	s.Set(ctx, "gone", []byte("x"), time.Millisecond)
	s.Set(ctx, "kept", []byte("x"), 0)
	time.Sleep(10 * time.Millisecond)

	n, err := s.Purge(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 purged row, got %d", n)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "", "")
	if err != nil {
		t.Fatalf("default driver: %v", err)
	}
	s.Close()

	if _, err := Open(ctx, "redis", ""); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("expected ErrUnknownDriver, got %v", err)
	}
	if _, err := Open(ctx, DriverSQLite, ""); err == nil {
		t.Error("expected sqlite without a path to fail")
	}
}
