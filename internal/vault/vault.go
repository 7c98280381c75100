// Package vault is the single public surface over the credential backends.
// A Vault resolves the active backend adapter exactly once, from the
// immutable capability decided at startup, and forwards every operation to
// it unchanged.
package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/systmms/credvault/internal/backend"
	"github.com/systmms/credvault/internal/config"
	"github.com/systmms/credvault/internal/logging"
	"github.com/systmms/credvault/internal/metrics"
	"github.com/systmms/credvault/pkg/keystore"
)

// Identity addresses one logical credential.
type Identity struct {
	Resource string
	Username string
}

// Validate reports a ValidationError when either field is empty.
func (id Identity) Validate() error {
	if id.Resource == "" {
		return ValidationError{Field: "resource", Message: "must not be empty"}
	}
	if id.Username == "" {
		return ValidationError{Field: "username", Message: "must not be empty"}
	}
	return nil
}

// ValidationError reports an identity missing a required field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid identity: %s %s", e.Field, e.Message)
}

// NotFoundError reports that no credential exists for an identity.
type NotFoundError struct {
	Resource string
	Username string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("credential not found for %s/%s", e.Resource, e.Username)
}

// IsNotFound reports whether err is a vault-level NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// Vault dispatches every call to the adapter selected at construction.
// It holds no persistent state of its own between calls.
type Vault struct {
	adapter backend.Adapter
	logger  *logging.Logger
}

// New builds a Vault for the given capability. The adapter is resolved here,
// once; the capability is never re-evaluated.
func New(capability config.Capability, ks keystore.KeyStore, logger *logging.Logger) *Vault {
	var adapter backend.Adapter
	if capability.Backend == config.BackendLegacy {
		adapter = backend.NewLegacy(ks)
	} else {
		adapter = backend.NewNative(ks)
	}
	logger.Debug("vault using %s backend", adapter.Name())
	return &Vault{adapter: adapter, logger: logger}
}

// Backend returns the name of the active backend adapter.
func (v *Vault) Backend() string {
	return v.adapter.Name()
}

// Add stores a credential, replacing any existing one for the identity.
// An update is logically delete-then-recreate; entries are never partially
// mutated.
func (v *Vault) Add(ctx context.Context, id Identity, secret string) error {
	if err := id.Validate(); err != nil {
		return err
	}
	err := v.adapter.Add(ctx, id.Resource, id.Username, secret)
	metrics.ObserveOp(v.adapter.Name(), "add", err)
	return err
}

// Remove deletes a credential and every physical part of it. Removing an
// identity that was never stored succeeds.
func (v *Vault) Remove(ctx context.Context, id Identity) error {
	if err := id.Validate(); err != nil {
		return err
	}
	err := v.adapter.Remove(ctx, id.Resource, id.Username)
	metrics.ObserveOp(v.adapter.Name(), "remove", err)
	return err
}

// Get returns one reconstructed credential with its opaque secret, or
// NotFoundError when the identity has no stored credential.
func (v *Vault) Get(ctx context.Context, id Identity) (backend.Credential, error) {
	if err := id.Validate(); err != nil {
		return backend.Credential{}, err
	}
	cred, err := v.adapter.Get(ctx, id.Resource, id.Username)
	if keystore.IsNotFound(err) {
		// An absent credential is not a backend failure; count it apart
		// from both "ok" and "error".
		metrics.ObserveOpStatus(v.adapter.Name(), "get", "not_found")
		return backend.Credential{}, NotFoundError{Resource: id.Resource, Username: id.Username}
	}
	metrics.ObserveOp(v.adapter.Name(), "get", err)
	return cred, err
}

// List enumerates all logical credentials. Secrets are never populated in
// the enumeration, regardless of backend.
func (v *Vault) List(ctx context.Context) ([]backend.Credential, error) {
	creds, err := v.adapter.List(ctx)
	metrics.ObserveOp(v.adapter.Name(), "list", err)
	return creds, err
}

// Find returns credentials matching the filter. On the legacy backend a
// filter naming only one of resource or username is a CapabilityError.
func (v *Vault) Find(ctx context.Context, f backend.Filter) ([]backend.Credential, error) {
	creds, err := v.adapter.Find(ctx, f)
	metrics.ObserveOp(v.adapter.Name(), "find", err)
	return creds, err
}
