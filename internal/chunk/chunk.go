// Package chunk implements the codec that splits oversized secrets into
// bounded parts for the legacy store and defines the physical naming
// convention for both plain and chunked entries.
//
// The naming scheme is externally visible in the store's management UI and
// must be preserved exactly for interoperability with existing data:
//
//	<resource>_<username>            plain (unchunked) entry
//	<resource>_<username>_ChunkNN    chunk NN of a chunked entry, NN from 00
package chunk

import (
	"fmt"
	"strings"
)

// MaxChunkSize is the per-entry capacity of the legacy store, in characters.
// Secrets longer than this are split into chunks of at most this size.
const MaxChunkSize = 1200

const chunkInfix = "_Chunk"

// Split breaks a secret into its chunk plan. Secrets of MaxChunkSize or
// less yield a single part stored under the plain entry name. Longer
// secrets yield ceil(len/MaxChunkSize) parts, all full-size except possibly
// the last. A length that is an exact multiple of MaxChunkSize yields only
// full chunks; Split never emits an empty trailing chunk.
func Split(secret string) []string {
	if len(secret) <= MaxChunkSize {
		return []string{secret}
	}
	parts := make([]string, 0, (len(secret)+MaxChunkSize-1)/MaxChunkSize)
	for start := 0; start < len(secret); start += MaxChunkSize {
		end := start + MaxChunkSize
		if end > len(secret) {
			end = len(secret)
		}
		parts = append(parts, secret[start:end])
	}
	return parts
}

// EntryName returns the physical name of an unchunked entry.
func EntryName(resource, username string) string {
	return resource + "_" + username
}

// ChunkName returns the physical name of chunk index for an identity.
// Indices are zero-padded to two digits starting at 00.
func ChunkName(resource, username string, index int) string {
	return fmt.Sprintf("%s_%s%s%02d", resource, username, chunkInfix, index)
}

// StripChunkSuffix removes a trailing chunk suffix from a physical name.
// It returns the base name and whether a suffix was present. Names whose
// tail after "_Chunk" is not at least two digits are returned unchanged,
// so resources that merely contain the word "Chunk" are not mangled.
func StripChunkSuffix(name string) (base string, chunked bool) {
	i := strings.LastIndex(name, chunkInfix)
	if i < 0 {
		return name, false
	}
	digits := name[i+len(chunkInfix):]
	if len(digits) < 2 {
		return name, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return name, false
		}
	}
	return name[:i], true
}

// SplitName recovers the resource from a base entry name given the username
// recorded alongside it. The base form is "<resource>_<username>"; the
// resource itself may contain underscores, so the username acts as the
// anchor. ok is false when the name does not follow the convention.
func SplitName(base, username string) (resource string, ok bool) {
	if username == "" {
		return "", false
	}
	suffix := "_" + username
	if !strings.HasSuffix(base, suffix) {
		return "", false
	}
	resource = strings.TrimSuffix(base, suffix)
	if resource == "" {
		return "", false
	}
	return resource, true
}
