package config

// BackendKind selects which backend adapter services all calls.
type BackendKind string

const (
	// BackendNative is the structured credential store with no practical
	// per-entry size limit.
	BackendNative BackendKind = "native"
	// BackendLegacy is the line-oriented command-line store with a hard
	// per-entry ceiling.
	BackendLegacy BackendKind = "legacy"
)

// Capability is the process-lifetime backend selection. It is resolved once
// at startup and passed by value into the vault constructor; nothing
// re-evaluates it afterwards.
type Capability struct {
	Backend BackendKind

	// CmdkeyPath is the legacy tool path, meaningful only when Backend is
	// BackendLegacy.
	CmdkeyPath string

	// Service is the keyring namespace, meaningful only when Backend is
	// BackendNative on hosts where the native store is the OS keyring.
	Service string
}

// ResolveCapability turns the loaded definition into the immutable
// capability. An explicit backend override wins; "auto" selects the native
// store, which every supported host provides. The legacy backend is only
// ever chosen explicitly, for interoperability with data already stored in
// the legacy layout.
func ResolveCapability(def *Definition) Capability {
	cap := Capability{
		Backend:    BackendNative,
		CmdkeyPath: def.Legacy.Cmdkey,
		Service:    def.Native.Service,
	}
	if def.Backend == "legacy" {
		cap.Backend = BackendLegacy
	}
	return cap
}
