// Package backend contains the two adapters that map the logical
// (resource, username) credential model onto a KeyStore primitive: the
// native adapter is a pass-through, the legacy adapter adds the chunking
// codec that hides the legacy store's per-entry size ceiling.
package backend

import (
	"context"
	"fmt"

	"github.com/systmms/credvault/internal/secure"
)

// Credential is one logical credential. Secret is nil in listings; only
// Get populates it, as an opaque protected value.
type Credential struct {
	Resource string
	Username string
	Secret   *secure.Value
}

// Filter narrows Find results. Empty fields match everything.
type Filter struct {
	Resource string
	Username string
}

// Adapter services every vault operation against one backend store.
type Adapter interface {
	// Name identifies the backend ("native" or "legacy").
	Name() string

	// Add stores a credential, replacing any existing one for the identity.
	Add(ctx context.Context, resource, username, secret string) error

	// Remove deletes a credential and all of its physical parts. Removing
	// a credential that does not exist is not an error.
	Remove(ctx context.Context, resource, username string) error

	// Get returns one reconstructed credential, or keystore.NotFoundError.
	Get(ctx context.Context, resource, username string) (Credential, error)

	// List enumerates all logical credentials without secrets.
	List(ctx context.Context) ([]Credential, error)

	// Find returns credentials matching the filter, without secrets.
	Find(ctx context.Context, f Filter) ([]Credential, error)
}

// CapabilityError reports an operation the active backend cannot service.
// It is a distinct, recoverable condition and is never degraded into a
// partial result.
type CapabilityError struct {
	Backend string
	Op      string
	Reason  string
}

func (e CapabilityError) Error() string {
	return fmt.Sprintf("%s backend cannot %s: %s", e.Backend, e.Op, e.Reason)
}
