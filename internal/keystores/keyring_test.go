package keystores

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/systmms/credvault/internal/logging"
	"github.com/systmms/credvault/pkg/keystore"
)

// Each test uses its own service namespace; the mock provider is a shared
// in-memory map.
func newTestKeyring(t *testing.T) *Keyring {
	t.Helper()
	keyring.MockInit()
	return NewKeyringStore("credvault-test-"+t.Name(), logging.New(false, true))
}

func TestKeyringRoundTrip(t *testing.T) {
	kr := newTestKeyring(t)
	ctx := context.Background()

	require.NoError(t, kr.Write(ctx, "site_alice", "alice", "hunter2"))

	e, err := kr.Read(ctx, "site_alice")
	require.NoError(t, err)
	assert.Equal(t, "site_alice", e.Name)
	assert.Equal(t, "alice", e.Username)
	assert.Equal(t, "hunter2", e.Secret)

	require.NoError(t, kr.Delete(ctx, "site_alice"))
	_, err = kr.Read(ctx, "site_alice")
	assert.True(t, keystore.IsNotFound(err))
}

func TestKeyringUpsert(t *testing.T) {
	kr := newTestKeyring(t)
	ctx := context.Background()

	require.NoError(t, kr.Write(ctx, "site_alice", "alice", "old"))
	require.NoError(t, kr.Write(ctx, "site_alice", "alice", "new"))

	e, err := kr.Read(ctx, "site_alice")
	require.NoError(t, err)
	assert.Equal(t, "new", e.Secret)

	// The index must not accumulate duplicates on rewrite.
	entries, err := kr.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestKeyringDeleteMissing(t *testing.T) {
	kr := newTestKeyring(t)

	err := kr.Delete(context.Background(), "missing")
	assert.True(t, keystore.IsNotFound(err))
}

func TestKeyringListWithholdsSecrets(t *testing.T) {
	kr := newTestKeyring(t)
	ctx := context.Background()

	require.NoError(t, kr.Write(ctx, "a_alice", "alice", "1"))
	require.NoError(t, kr.Write(ctx, "b_bob", "bob", "2"))

	entries, err := kr.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a_alice", entries[0].Name)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, "b_bob", entries[1].Name)
	for _, e := range entries {
		assert.Empty(t, e.Secret)
	}

	// The index item itself never appears in the listing.
	for _, e := range entries {
		assert.NotEqual(t, indexItem, e.Name)
	}
}

func TestKeyringListEmpty(t *testing.T) {
	kr := newTestKeyring(t)

	entries, err := kr.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestKeyringSecretMayContainSeparators(t *testing.T) {
	kr := newTestKeyring(t)
	ctx := context.Background()

	// The record separator splits on the first NUL only, so NULs and
	// newlines inside the secret survive the round trip.
	secret := "pa\x00ss\nword"
	require.NoError(t, kr.Write(ctx, "site_alice", "alice", secret))

	e, err := kr.Read(ctx, "site_alice")
	require.NoError(t, err)
	assert.Equal(t, secret, e.Secret)
}

func TestKeyringContextCancellation(t *testing.T) {
	kr := newTestKeyring(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := kr.Write(ctx, "site_alice", "alice", "pw")
	require.Error(t, err)
	assert.False(t, keystore.IsNotFound(err))
}
