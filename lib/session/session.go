// Package session provides stores for persisted component trees.
//
// A store maps a session id to the encoded tree of that session. The whole
// tree is the unit of persistence: every cycle loads it, mutates it and
// saves it back. Stores do not lock across a load/save pair, so two
// concurrent requests for the same session race and the last save wins.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when the session holds no tree.
var ErrNotFound = errors.New("hxtree: session not found")

// Store persists encoded trees keyed by session id.
type Store interface {
	Load(ctx context.Context, id string) ([]byte, error)
	Save(ctx context.Context, id string, data []byte) error
	Delete(ctx context.Context, id string) error
}
