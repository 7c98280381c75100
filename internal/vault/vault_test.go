package vault_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/credvault/internal/backend"
	"github.com/systmms/credvault/internal/config"
	"github.com/systmms/credvault/internal/logging"
	"github.com/systmms/credvault/internal/secure"
	"github.com/systmms/credvault/internal/vault"
	"github.com/systmms/credvault/pkg/keystore"
)

func newVault(t *testing.T, backendKind config.BackendKind) (*vault.Vault, *keystore.Fake) {
	t.Helper()
	fake := keystore.NewFake()
	v := vault.New(config.Capability{Backend: backendKind}, fake, logging.New(false, true))
	return v, fake
}

func TestNewResolvesAdapterFromCapability(t *testing.T) {
	t.Parallel()

	native, _ := newVault(t, config.BackendNative)
	assert.Equal(t, "native", native.Backend())

	legacy, _ := newVault(t, config.BackendLegacy)
	assert.Equal(t, "legacy", legacy.Backend())
}

func TestIdentityValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		id        vault.Identity
		wantField string
	}{
		{name: "empty_resource", id: vault.Identity{Username: "alice"}, wantField: "resource"},
		{name: "empty_username", id: vault.Identity{Resource: "site"}, wantField: "username"},
		{name: "both_empty", id: vault.Identity{}, wantField: "resource"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, fake := newVault(t, config.BackendNative)
			ctx := context.Background()

			for _, err := range []error{
				v.Add(ctx, tt.id, "secret"),
				v.Remove(ctx, tt.id),
				func() error { _, e := v.Get(ctx, tt.id); return e }(),
			} {
				var valErr vault.ValidationError
				require.True(t, errors.As(err, &valErr), "want ValidationError, got %v", err)
				assert.Equal(t, tt.wantField, valErr.Field)
			}

			// Nothing reached the store.
			assert.Empty(t, fake.Writes)
			assert.Empty(t, fake.Deletes)
		})
	}
}

func TestVaultLifecycle(t *testing.T) {
	t.Parallel()

	for _, kind := range []config.BackendKind{config.BackendNative, config.BackendLegacy} {
		kind := kind
		t.Run(string(kind), func(t *testing.T) {
			t.Parallel()

			v, _ := newVault(t, kind)
			ctx := context.Background()
			id := vault.Identity{Resource: "site.example.com", Username: "alice"}
			secret := strings.Repeat("s", 2500)

			require.NoError(t, v.Add(ctx, id, secret))

			cred, err := v.Get(ctx, id)
			require.NoError(t, err)
			got, err := secure.Reveal(cred.Secret)
			require.NoError(t, err)
			assert.Equal(t, secret, got)

			require.NoError(t, v.Remove(ctx, id))

			_, err = v.Get(ctx, id)
			require.Error(t, err)
			assert.True(t, vault.IsNotFound(err))
			var nf vault.NotFoundError
			require.True(t, errors.As(err, &nf))
			assert.Equal(t, "site.example.com", nf.Resource)
			assert.Equal(t, "alice", nf.Username)

			// Removing again is a no-op, not an error.
			require.NoError(t, v.Remove(ctx, id))
		})
	}
}

func TestVaultUpdateReplacesSecret(t *testing.T) {
	t.Parallel()

	v, fake := newVault(t, config.BackendLegacy)
	ctx := context.Background()
	id := vault.Identity{Resource: "site", Username: "alice"}

	require.NoError(t, v.Add(ctx, id, strings.Repeat("a", 3000)))
	require.NoError(t, v.Add(ctx, id, "short"))

	// The old chunk entries must not linger next to the new plain entry.
	assert.Equal(t, 1, fake.Len())

	cred, err := v.Get(ctx, id)
	require.NoError(t, err)
	got, err := secure.Reveal(cred.Secret)
	require.NoError(t, err)
	assert.Equal(t, "short", got)
}

func TestVaultListHidesSecrets(t *testing.T) {
	t.Parallel()

	v, _ := newVault(t, config.BackendNative)
	ctx := context.Background()
	require.NoError(t, v.Add(ctx, vault.Identity{Resource: "site", Username: "alice"}, "pw"))

	creds, err := v.List(ctx)
	require.NoError(t, err)
	require.Len(t, creds, 1)
	assert.Equal(t, "site", creds[0].Resource)
	assert.Equal(t, "alice", creds[0].Username)
	assert.True(t, creds[0].Secret.Empty())
}

func TestVaultFindCapabilityPassthrough(t *testing.T) {
	t.Parallel()

	v, _ := newVault(t, config.BackendLegacy)
	ctx := context.Background()
	require.NoError(t, v.Add(ctx, vault.Identity{Resource: "site", Username: "alice"}, "pw"))

	_, err := v.Find(ctx, backend.Filter{Username: "alice"})
	var capErr backend.CapabilityError
	require.True(t, errors.As(err, &capErr), "want CapabilityError, got %v", err)
	assert.Equal(t, "legacy", capErr.Backend)
	assert.Equal(t, "find", capErr.Op)
}

func TestVaultGetPropagatesPrimitiveFailure(t *testing.T) {
	t.Parallel()

	fake := keystore.NewFake()
	fake.ReadErr = errors.New("store unavailable")
	fake.Seed("site_alice", "alice", "pw")
	v := vault.New(config.Capability{Backend: config.BackendNative}, fake, logging.New(false, true))

	_, err := v.Get(context.Background(), vault.Identity{Resource: "site", Username: "alice"})
	require.Error(t, err)
	assert.False(t, vault.IsNotFound(err), "a primitive failure is not a missing credential")
}
