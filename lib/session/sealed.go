package session

import (
	"context"

	"github.com/pthm/hxtree/lib/encoding"
)

// Sealed wraps a store and encrypts trees at rest with AES-256-GCM, so a
// shared backend such as Redis never sees widget state in the clear.
type Sealed struct {
	Store
	enc *encoding.Encoder
}

// NewSealed wraps store with the given encoder.
func NewSealed(store Store, enc *encoding.Encoder) *Sealed {
	return &Sealed{Store: store, enc: enc}
}

// Load decrypts the stored tree.
func (s *Sealed) Load(ctx context.Context, id string) ([]byte, error) {
	sealed, err := s.Store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enc.Open(string(sealed))
}

// Save encrypts data before storing it.
func (s *Sealed) Save(ctx context.Context, id string, data []byte) error {
	sealed, err := s.enc.Seal(data)
	if err != nil {
		return err
	}
	return s.Store.Save(ctx, id, []byte(sealed))
}
