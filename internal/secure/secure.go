// Package secure holds decrypted secret material in protected memory.
//
// A Value wraps a memguard enclave: the secret is encrypted at rest in
// memory and mlocked against swapping. Reveal and With are the only points
// in the system that produce raw plaintext from a Value; both guarantee the
// intermediate locked buffer is zero-filled and released on every exit path,
// including failures. Callers are expected to keep plaintext lifetimes short.
package secure

import (
	"fmt"

	"github.com/awnumar/memguard"
)

// Value is the opaque in-memory representation of a secret.
// A nil or zero Value represents an absent secret.
type Value struct {
	enclave *memguard.Enclave
}

// FromBytes seals secret bytes into a protected Value.
// memguard wipes the input slice as part of sealing; callers must not
// reuse it afterwards.
func FromBytes(data []byte) *Value {
	if len(data) == 0 {
		return &Value{}
	}
	return &Value{enclave: memguard.NewEnclave(data)}
}

// FromString seals a secret string into a protected Value. The byte copy
// handed to the enclave is wiped by memguard; the original string is
// immutable and remains the caller's responsibility.
func FromString(s string) *Value {
	return FromBytes([]byte(s))
}

// Empty reports whether v holds no secret material.
func (v *Value) Empty() bool {
	return v == nil || v.enclave == nil
}

// Reveal decrypts a Value into a plaintext string. The intermediate locked
// buffer is destroyed (zeroed and unmapped) before Reveal returns, on every
// path. An empty Value reveals as "".
func Reveal(v *Value) (string, error) {
	var out string
	err := With(v, func(b []byte) error {
		out = string(b)
		return nil
	})
	return out, err
}

// With opens a Value and passes the plaintext bytes to fn. The buffer is
// only valid for the duration of the call and is destroyed afterwards
// regardless of fn's outcome. fn must not retain the slice.
func With(v *Value, fn func([]byte) error) error {
	if v.Empty() {
		return fn(nil)
	}
	locked, err := v.enclave.Open()
	if err != nil {
		return fmt.Errorf("open secret enclave: %w", err)
	}
	defer locked.Destroy()
	return fn(locked.Bytes())
}

// Wipe overwrites a byte slice with zeros. Use it on transient plaintext
// buffers that did not come from an enclave.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
