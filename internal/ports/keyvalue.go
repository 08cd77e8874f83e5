package ports

import "context"

// KeyValueStore is the persistence collaborator. Values are JSON-encoded
// domain objects or arrays; the store itself knows nothing about them.
//
// Get distinguishes a missing key (found == false, err == nil) from a failed
// read (err != nil) so callers can tell "genuinely empty" from "broken".
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	RemoveMany(ctx context.Context, keys []string) error
	Close() error
}
