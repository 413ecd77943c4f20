package contracttest

import (
	"context"
	"testing"

	kvstoreport "github.com/yatraplan/trip-planner-api/internal/ports/out/kvstore"
)

type CleanupFunc = func()

type KVStoreFactory func(t *testing.T) (kvstoreport.Store, CleanupFunc)

// RunKVStore exercises the kvstore.Store contract against an adapter: absent
// keys report ok=false, values round-trip byte-for-byte, and writes replace
// the whole value.
func RunKVStore(t *testing.T, newStore KVStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	const key = "travelApp.savedTrips.v1"

	if _, ok, err := store.Get(ctx, key); err != nil {
		t.Fatalf("Get absent: %v", err)
	} else if ok {
		t.Fatalf("expected ok=false for absent key")
	}

	v1 := []byte(`[{"id":"1"}]`)
	if err := store.Set(ctx, key, v1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if string(got) != string(v1) {
		t.Fatalf("value=%q, want %q", got, v1)
	}

	// Whole-value replace semantics.
	v2 := []byte(`[]`)
	if err := store.Set(ctx, key, v2); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, ok, err = store.Get(ctx, key)
	if err != nil || !ok || string(got) != string(v2) {
		t.Fatalf("expected overwritten value, got ok=%v err=%v value=%q", ok, err, string(got))
	}

	// Keys are independent.
	other := key + ".other"
	if _, ok, err := store.Get(ctx, other); err != nil || ok {
		t.Fatalf("expected other key absent, got ok=%v err=%v", ok, err)
	}
}
