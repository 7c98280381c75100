package keystore

import (
	"context"
	"errors"
	"fmt"
)

// Entry is one physical record in the active credential store.
// Name is the store-level target name; for chunked secrets the logical
// credential spans several entries with related names.
type Entry struct {
	// Name is the unique target name of the record.
	Name string

	// Username is the account the record was stored for.
	Username string

	// Secret is the opaque secret payload. Listings return entries with an
	// empty Secret; only single-entry reads populate it.
	Secret string
}

// KeyStore is the single-entry primitive supplied by whichever platform
// credential store is active. Implementations must map the store's own
// "missing entry" signal to NotFoundError and wrap every other failure in
// an OpError.
//
// All methods are synchronous. Serialization of concurrent access is left
// to the underlying store.
type KeyStore interface {
	// Write stores or replaces the entry with the given name.
	Write(ctx context.Context, name, username, secret string) error

	// Read returns the entry with the given name, including its secret.
	Read(ctx context.Context, name string) (Entry, error)

	// Delete removes the entry with the given name.
	Delete(ctx context.Context, name string) error

	// List enumerates all entries visible to this store. Secrets are not
	// populated; retrieving a secret requires a Read per entry.
	List(ctx context.Context) ([]Entry, error)
}

// NotFoundError indicates that no entry with the requested name exists.
// It is not fatal: deletion treats it as a no-op and chunk reconstruction
// treats it as end-of-sequence.
type NotFoundError struct {
	Name string
}

func (e NotFoundError) Error() string {
	return "keystore entry not found: " + e.Name
}

// OpError wraps a primitive failure other than "not found" with the
// operation and entry name it occurred on.
type OpError struct {
	Op   string // "write", "read", "delete", "list"
	Name string
	Err  error
}

func (e *OpError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("keystore %s error for %q: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("keystore %s error: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
