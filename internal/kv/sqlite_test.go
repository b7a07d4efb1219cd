package kv

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "data", "kopilka.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer store.Close()

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := store.Set(ctx, "budget_transactions", `[]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, "budget_transactions", `[{"id":"1"}]`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, ok, err := store.Get(ctx, "budget_transactions")
	if err != nil || !ok || v != `[{"id":"1"}]` {
		t.Fatalf("Get = %q ok=%v err=%v", v, ok, err)
	}

	if err := store.Delete(ctx, "budget_transactions"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "budget_transactions"); ok {
		t.Fatal("key still present after Delete")
	}
}

func TestSQLiteMigrationsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kopilka.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	store.Close()

	// Reopening runs migrations again; ErrNoChange must be swallowed.
	store, err = OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	store.Close()
}
