package config

import (
	"os"

	"gopkg.in/yaml.v3"

	cverrors "github.com/systmms/credvault/internal/errors"
	"github.com/systmms/credvault/internal/logging"
)

// Config holds the runtime configuration
type Config struct {
	Path       string
	Logger     *logging.Logger
	Definition *Definition
}

// Definition represents the credvault.yaml structure
type Definition struct {
	Version int    `yaml:"version"`
	Backend string `yaml:"backend,omitempty"` // auto | native | legacy
	Legacy  Legacy `yaml:"legacy,omitempty"`
	Native  Native `yaml:"native,omitempty"`
}

// Legacy holds legacy-backend configuration
type Legacy struct {
	// Cmdkey is the path to the legacy store's command-line tool.
	// Empty means "cmdkey" from PATH.
	Cmdkey string `yaml:"cmdkey,omitempty"`
}

// Native holds native-backend configuration
type Native struct {
	// Service is the keyring service namespace on hosts where the native
	// store is the OS keyring. Empty means "credvault".
	Service string `yaml:"service,omitempty"`
}

// Load reads and parses the credvault.yaml file. A missing file is not an
// error: the defaults serve a zero-configuration install.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			c.Definition = &Definition{Version: 1, Backend: "auto"}
			return nil
		}
		return cverrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return cverrors.ConfigError{
			Field:      "file",
			Value:      c.Path,
			Message:    "invalid YAML: " + err.Error(),
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}
	if def.Backend == "" {
		def.Backend = "auto"
	}
	switch def.Backend {
	case "auto", "native", "legacy":
	default:
		return cverrors.ConfigError{
			Field:      "backend",
			Value:      def.Backend,
			Message:    "unknown backend",
			Suggestion: "Use one of: auto, native, legacy",
		}
	}
	c.Definition = &def
	return nil
}
