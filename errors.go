package hxtree

import (
	"errors"
	"fmt"

	"github.com/pthm/hxtree/lib/session"
)

// Sentinel errors for tree and cycle operations.
var (
	ErrNodeNotFound     = errors.New("hxtree: node not found")
	ErrDuplicateID      = errors.New("hxtree: duplicate node id")
	ErrAttached         = errors.New("hxtree: node already has a parent")
	ErrHandlerNotFound  = errors.New("hxtree: handler not found")
	ErrMissingHandler   = errors.New("hxtree: request names no handler")
	ErrMissingOrigin    = errors.New("hxtree: request names no component id")
	ErrUnknownKind      = errors.New("hxtree: unknown widget kind")
	ErrDecryptFailed    = errors.New("hxtree: parameter decryption failed")
	ErrSignatureInvalid = errors.New("hxtree: signature verification failed")
	ErrInvalidFormat    = errors.New("hxtree: invalid parameter format")

	// ErrSessionNotFound is returned when no tree is stored for the session.
	// It is the same value as session.ErrNotFound so store implementations
	// don't need to import this package.
	ErrSessionNotFound = session.ErrNotFound
)

// HandlerNotFoundError reports that no node between the event origin and the
// root exposes the requested handler.
type HandlerNotFoundError struct {
	Handler  string
	OriginID string
}

func (e *HandlerNotFoundError) Error() string {
	return fmt.Sprintf("hxtree: no handler %q from %q up to root", e.Handler, e.OriginID)
}

func (e *HandlerNotFoundError) Unwrap() error {
	return ErrHandlerNotFound
}

// IsHandlerNotFound checks if err is a handler resolution failure.
func IsHandlerNotFound(err error) bool {
	return errors.Is(err, ErrHandlerNotFound)
}

// IsSessionNotFound checks if err means the session holds no tree.
func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

// IsBadRequest checks if err was caused by a malformed event request.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrMissingHandler) ||
		errors.Is(err, ErrMissingOrigin) ||
		errors.Is(err, ErrHandlerNotFound)
}

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}
