//go:build !windows

package keystores

import (
	"github.com/systmms/credvault/internal/logging"
	"github.com/systmms/credvault/pkg/keystore"
)

// NewNative returns the platform's structured credential store: the OS
// keyring (Secret Service, macOS Keychain) under the given service
// namespace.
func NewNative(service string, logger *logging.Logger) keystore.KeyStore {
	return NewKeyringStore(service, logger)
}
