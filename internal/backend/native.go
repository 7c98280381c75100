package backend

import (
	"context"

	"github.com/systmms/credvault/internal/chunk"
	"github.com/systmms/credvault/internal/secure"
	"github.com/systmms/credvault/pkg/keystore"
)

// Native adapts the structured credential store. Operations map 1:1 onto
// the primitive; no chunking is needed because the store has no practical
// per-entry size limit.
type Native struct {
	ks keystore.KeyStore
}

// NewNative wraps a structured-store primitive.
func NewNative(ks keystore.KeyStore) *Native {
	return &Native{ks: ks}
}

// Name implements Adapter.
func (n *Native) Name() string {
	return "native"
}

// Add stores the secret as a single entry. The primitive overwrites an
// existing entry with the same name (upsert).
func (n *Native) Add(ctx context.Context, resource, username, secret string) error {
	return n.ks.Write(ctx, chunk.EntryName(resource, username), username, secret)
}

// Remove deletes the entry. A missing entry is a successful no-op.
func (n *Native) Remove(ctx context.Context, resource, username string) error {
	err := n.ks.Delete(ctx, chunk.EntryName(resource, username))
	if keystore.IsNotFound(err) {
		return nil
	}
	return err
}

// Get returns the credential, or keystore.NotFoundError when absent.
func (n *Native) Get(ctx context.Context, resource, username string) (Credential, error) {
	entry, err := n.ks.Read(ctx, chunk.EntryName(resource, username))
	if err != nil {
		return Credential{}, err
	}
	return Credential{
		Resource: resource,
		Username: username,
		Secret:   secure.FromString(entry.Secret),
	}, nil
}

// List enumerates stored credentials. Secrets are withheld.
func (n *Native) List(ctx context.Context) ([]Credential, error) {
	entries, err := n.ks.List(ctx)
	if err != nil {
		return nil, err
	}
	creds := make([]Credential, 0, len(entries))
	for _, e := range entries {
		creds = append(creds, credentialFromName(e.Name, e.Username))
	}
	return creds, nil
}

// Find filters the enumeration by username only, resource only, or both.
func (n *Native) Find(ctx context.Context, f Filter) ([]Credential, error) {
	creds, err := n.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := creds[:0]
	for _, c := range creds {
		if f.Resource != "" && c.Resource != f.Resource {
			continue
		}
		if f.Username != "" && c.Username != f.Username {
			continue
		}
		matched = append(matched, c)
	}
	return matched, nil
}

// credentialFromName recovers the logical identity from a physical entry
// name. Entries written outside the naming convention keep the full name
// as their resource so they still show up in enumeration.
func credentialFromName(name, username string) Credential {
	resource, ok := chunk.SplitName(name, username)
	if !ok {
		resource = name
	}
	return Credential{Resource: resource, Username: username}
}

var _ Adapter = (*Native)(nil)
