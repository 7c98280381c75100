package chunk_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/credvault/internal/chunk"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		secretLen int
		wantSizes []int
	}{
		{
			name:      "empty_secret_single_part",
			secretLen: 0,
			wantSizes: []int{0},
		},
		{
			name:      "one_char",
			secretLen: 1,
			wantSizes: []int{1},
		},
		{
			name:      "exactly_max_single_part",
			secretLen: chunk.MaxChunkSize,
			wantSizes: []int{chunk.MaxChunkSize},
		},
		{
			name:      "one_over_max",
			secretLen: chunk.MaxChunkSize + 1,
			wantSizes: []int{chunk.MaxChunkSize, 1},
		},
		{
			name:      "spec_example_3000",
			secretLen: 3000,
			wantSizes: []int{1200, 1200, 600},
		},
		{
			name:      "exact_multiple_no_empty_trailing_chunk",
			secretLen: 2 * chunk.MaxChunkSize,
			wantSizes: []int{chunk.MaxChunkSize, chunk.MaxChunkSize},
		},
		{
			name:      "three_full_chunks",
			secretLen: 3 * chunk.MaxChunkSize,
			wantSizes: []int{chunk.MaxChunkSize, chunk.MaxChunkSize, chunk.MaxChunkSize},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			secret := strings.Repeat("x", tt.secretLen)
			parts := chunk.Split(secret)

			require.Len(t, parts, len(tt.wantSizes))
			for i, want := range tt.wantSizes {
				assert.Len(t, parts[i], want, "part %d", i)
			}
			assert.Equal(t, secret, strings.Join(parts, ""), "parts must reassemble to the secret")
		})
	}
}

func TestSplitNeverEmitsEmptyChunk(t *testing.T) {
	t.Parallel()

	for _, length := range []int{1, chunk.MaxChunkSize, 2 * chunk.MaxChunkSize, 5 * chunk.MaxChunkSize} {
		parts := chunk.Split(strings.Repeat("s", length))
		for i, p := range parts {
			assert.NotEmpty(t, p, "length %d part %d", length, i)
		}
	}
}

func TestNaming(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "site.example.com_alice", chunk.EntryName("site.example.com", "alice"))
	assert.Equal(t, "site.example.com_alice_Chunk00", chunk.ChunkName("site.example.com", "alice", 0))
	assert.Equal(t, "site.example.com_alice_Chunk07", chunk.ChunkName("site.example.com", "alice", 7))
	assert.Equal(t, "site.example.com_alice_Chunk12", chunk.ChunkName("site.example.com", "alice", 12))
}

func TestStripChunkSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		in          string
		wantBase    string
		wantChunked bool
	}{
		{
			name:        "plain_entry",
			in:          "site_alice",
			wantBase:    "site_alice",
			wantChunked: false,
		},
		{
			name:        "chunk_zero",
			in:          "site_alice_Chunk00",
			wantBase:    "site_alice",
			wantChunked: true,
		},
		{
			name:        "high_index",
			in:          "site_alice_Chunk42",
			wantBase:    "site_alice",
			wantChunked: true,
		},
		{
			name:        "chunk_word_without_digits",
			in:          "site_Chunky",
			wantBase:    "site_Chunky",
			wantChunked: false,
		},
		{
			name:        "single_digit_not_a_suffix",
			in:          "site_alice_Chunk5",
			wantBase:    "site_alice_Chunk5",
			wantChunked: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			base, chunked := chunk.StripChunkSuffix(tt.in)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantChunked, chunked)
		})
	}
}

func TestSplitName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		base         string
		username     string
		wantResource string
		wantOK       bool
	}{
		{
			name:         "simple",
			base:         "site.example.com_alice",
			username:     "alice",
			wantResource: "site.example.com",
			wantOK:       true,
		},
		{
			name:         "resource_with_underscores",
			base:         "my_app_db_alice",
			username:     "alice",
			wantResource: "my_app_db",
			wantOK:       true,
		},
		{
			name:     "username_mismatch",
			base:     "site_alice",
			username: "bob",
			wantOK:   false,
		},
		{
			name:     "empty_username",
			base:     "site_alice",
			username: "",
			wantOK:   false,
		},
		{
			name:     "empty_resource",
			base:     "_alice",
			username: "alice",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resource, ok := chunk.SplitName(tt.base, tt.username)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantResource, resource)
			}
		})
	}
}
