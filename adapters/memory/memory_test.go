package memory

import (
	"context"
	"testing"

	"github.com/mandiconnect/mandi-go/core"
)

func TestStore(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); err != core.ErrKeyNotFound {
		t.Fatalf("Get(missing) error = %v, want ErrKeyNotFound", err)
	}

	if err := store.SetMany(ctx, map[string]string{"a": "1", "b": "2"}); err != nil {
		t.Fatalf("SetMany error = %v", err)
	}
	if got, _ := store.Get(ctx, "a"); got != "1" {
		t.Errorf("Get(a) = %q, want %q", got, "1")
	}
	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}

	// Removing a mix of present and absent keys succeeds.
	if err := store.RemoveMany(ctx, "a", "missing"); err != nil {
		t.Fatalf("RemoveMany error = %v", err)
	}
	if _, err := store.Get(ctx, "a"); err != core.ErrKeyNotFound {
		t.Errorf("Get(a) after remove error = %v, want ErrKeyNotFound", err)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestStore_Overwrite(t *testing.T) {
	store := New()
	ctx := context.Background()

	store.SetMany(ctx, map[string]string{"token": "old"})
	store.SetMany(ctx, map[string]string{"token": "new"})

	if got, _ := store.Get(ctx, "token"); got != "new" {
		t.Errorf("Get(token) = %q, want %q", got, "new")
	}
}
