package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/systmms/credvault/internal/chunk"
	"github.com/systmms/credvault/internal/metrics"
	"github.com/systmms/credvault/internal/secure"
	"github.com/systmms/credvault/pkg/keystore"
)

// Legacy adapts the line-oriented command-line store. Secrets above the
// per-entry ceiling are split by the chunk codec into physically separate
// entries; reconstruction, enumeration, and deletion reassemble or discover
// every part so the ceiling stays invisible to callers.
type Legacy struct {
	ks keystore.KeyStore
}

// NewLegacy wraps a legacy-store primitive.
func NewLegacy(ks keystore.KeyStore) *Legacy {
	return &Legacy{ks: ks}
}

// Name implements Adapter.
func (l *Legacy) Name() string {
	return "legacy"
}

// Add writes the chunk plan sequentially and clears whatever physical
// representation a previous secret left behind: a stale plain entry would
// shadow a new chunk set on Get, and stale trailing chunks from a longer
// secret would be concatenated onto a shorter one. A failure partway
// through a multi-chunk secret leaves the already-written chunks in
// place — there is no rollback — and the error names the failing chunk
// index.
func (l *Legacy) Add(ctx context.Context, resource, username, secret string) error {
	parts := chunk.Split(secret)
	if len(parts) == 1 {
		if err := l.ks.Write(ctx, chunk.EntryName(resource, username), username, parts[0]); err != nil {
			return err
		}
		return l.removeChunks(ctx, resource, username, 0)
	}
	// Get tries the plain name before the chunk sequence, so the stale
	// plain entry has to go before the new chunks become visible.
	if err := l.ks.Delete(ctx, chunk.EntryName(resource, username)); err != nil && !keystore.IsNotFound(err) {
		return fmt.Errorf("delete superseded entry: %w", err)
	}
	for i, part := range parts {
		name := chunk.ChunkName(resource, username, i)
		if err := l.ks.Write(ctx, name, username, part); err != nil {
			return fmt.Errorf("write chunk %02d of %d: %w", i, len(parts), err)
		}
	}
	metrics.ObserveChunks("write", len(parts))
	return l.removeChunks(ctx, resource, username, len(parts))
}

// Remove deletes the plain entry, then chunks in ascending index order
// until the next index is missing. Both representations are always swept
// so that no secret survives a change of representation. Deleting zero
// entries is success — Remove is idempotent.
func (l *Legacy) Remove(ctx context.Context, resource, username string) error {
	err := l.ks.Delete(ctx, chunk.EntryName(resource, username))
	if err != nil && !keystore.IsNotFound(err) {
		return err
	}
	return l.removeChunks(ctx, resource, username, 0)
}

// removeChunks deletes chunk entries from index from upward until the
// store reports one missing.
func (l *Legacy) removeChunks(ctx context.Context, resource, username string, from int) error {
	deleted := 0
	for i := from; ; i++ {
		err := l.ks.Delete(ctx, chunk.ChunkName(resource, username, i))
		if keystore.IsNotFound(err) {
			metrics.ObserveChunks("delete", deleted)
			return nil
		}
		if err != nil {
			return fmt.Errorf("delete chunk %02d: %w", i, err)
		}
		deleted++
	}
}

// Get tries the plain entry, then pulls chunks 0, 1, 2, … concatenating in
// index order until the store reports the next index missing. A gap in the
// sequence truncates the recovered secret rather than erroring. Absence of
// both the plain entry and chunk 0 is NotFound.
func (l *Legacy) Get(ctx context.Context, resource, username string) (Credential, error) {
	entry, err := l.ks.Read(ctx, chunk.EntryName(resource, username))
	if err == nil {
		return Credential{
			Resource: resource,
			Username: username,
			Secret:   secure.FromString(entry.Secret),
		}, nil
	}
	if !keystore.IsNotFound(err) {
		return Credential{}, err
	}

	var sb strings.Builder
	for i := 0; ; i++ {
		entry, err := l.ks.Read(ctx, chunk.ChunkName(resource, username, i))
		if keystore.IsNotFound(err) {
			if i == 0 {
				return Credential{}, keystore.NotFoundError{Name: chunk.EntryName(resource, username)}
			}
			break
		}
		if err != nil {
			return Credential{}, fmt.Errorf("read chunk %02d: %w", i, err)
		}
		sb.WriteString(entry.Secret)
	}
	return Credential{
		Resource: resource,
		Username: username,
		Secret:   secure.FromString(sb.String()),
	}, nil
}

// List parses the primitive's enumeration, strips chunk suffixes so a
// multi-chunk secret reports as one logical entry, and de-duplicates by
// identity. Secrets are never populated: reconstructing each one would
// cost a Get per entry and is deferred to an explicit Get call.
func (l *Legacy) List(ctx context.Context) ([]Credential, error) {
	entries, err := l.ks.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(entries))
	creds := make([]Credential, 0, len(entries))
	for _, e := range entries {
		base, _ := chunk.StripChunkSuffix(e.Name)
		c := credentialFromName(base, e.Username)
		key := c.Resource + "\x00" + c.Username
		if seen[key] {
			continue
		}
		seen[key] = true
		creds = append(creds, c)
	}
	return creds, nil
}

// Find supports only the full identity: the underlying store offers exact
// single-key lookup, not partial scans. A username-only or resource-only
// filter is a CapabilityError, never a degraded search. An empty filter is
// the full enumeration.
func (l *Legacy) Find(ctx context.Context, f Filter) ([]Credential, error) {
	switch {
	case f.Resource == "" && f.Username == "":
		return l.List(ctx)
	case f.Resource != "" && f.Username != "":
		cred, err := l.Get(ctx, f.Resource, f.Username)
		if keystore.IsNotFound(err) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		// Find reports metadata only; the secret stays behind Get.
		return []Credential{{Resource: cred.Resource, Username: cred.Username}}, nil
	default:
		return nil, CapabilityError{
			Backend: l.Name(),
			Op:      "find",
			Reason:  "filtering needs both resource and username; the legacy store only supports exact lookup",
		}
	}
}

var _ Adapter = (*Legacy)(nil)
