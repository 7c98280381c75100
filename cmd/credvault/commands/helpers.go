package commands

import (
	"github.com/systmms/credvault/internal/config"
	"github.com/systmms/credvault/internal/keystores"
	"github.com/systmms/credvault/internal/vault"
	"github.com/systmms/credvault/pkg/keystore"
)

// openVault loads configuration, resolves the backend capability once, and
// builds the vault facade over the matching keystore primitive.
func openVault(cfg *config.Config) (*vault.Vault, error) {
	if err := cfg.Load(); err != nil {
		return nil, err
	}
	capability := config.ResolveCapability(cfg.Definition)

	var ks keystore.KeyStore
	if capability.Backend == config.BackendLegacy {
		ks = keystores.NewCmdkey(capability.CmdkeyPath, cfg.Logger)
	} else {
		ks = keystores.NewNative(capability.Service, cfg.Logger)
	}

	return vault.New(capability, ks, cfg.Logger), nil
}
