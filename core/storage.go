package core

import "context"

// Durable session keys. Written together on login, removed together on
// logout; no other code writes them.
const (
	KeyToken    = "token"
	KeyUser     = "user"
	KeyUserRole = "userRole"
	KeyUserID   = "userId"
)

// SessionKeys lists every durable key owned by the session store.
func SessionKeys() []string {
	return []string{KeyToken, KeyUser, KeyUserRole, KeyUserID}
}

// KeyValueStore is the durable storage port behind the session store.
type KeyValueStore interface {
	// Get returns the value for key, or ErrKeyNotFound when absent.
	Get(ctx context.Context, key string) (string, error)

	// SetMany writes all items as one atomic operation. Either every key
	// is written or none is; a reader never observes a partial write from
	// a single call.
	SetMany(ctx context.Context, items map[string]string) error

	// RemoveMany deletes the given keys. Absent keys are not an error.
	RemoveMany(ctx context.Context, keys ...string) error
}
