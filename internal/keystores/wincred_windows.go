//go:build windows

package keystores

import (
	"context"
	"strings"

	"github.com/danieljoos/wincred"

	"github.com/systmms/credvault/internal/logging"
	"github.com/systmms/credvault/pkg/keystore"
)

// Wincred implements keystore.KeyStore on the native Windows Credential
// Manager via the wincred API. Entries are generic credentials; there is no
// practical per-entry size limit at this layer.
type Wincred struct {
	logger *logging.Logger
}

// NewWincred creates a Credential Manager keystore.
func NewWincred(logger *logging.Logger) *Wincred {
	return &Wincred{logger: logger}
}

// Write stores or replaces a generic credential (upsert).
func (w *Wincred) Write(ctx context.Context, name, username, secret string) error {
	if err := ctx.Err(); err != nil {
		return &keystore.OpError{Op: "write", Name: name, Err: err}
	}
	w.logger.Debug("wincred write %s for user %s", name, username)
	cred := wincred.NewGenericCredential(name)
	cred.UserName = username
	cred.CredentialBlob = []byte(secret)
	cred.Persist = wincred.PersistLocalMachine
	if err := cred.Write(); err != nil {
		return &keystore.OpError{Op: "write", Name: name, Err: err}
	}
	return nil
}

// Read returns one credential with its secret.
func (w *Wincred) Read(ctx context.Context, name string) (keystore.Entry, error) {
	if err := ctx.Err(); err != nil {
		return keystore.Entry{}, &keystore.OpError{Op: "read", Name: name, Err: err}
	}
	cred, err := wincred.GetGenericCredential(name)
	if err != nil {
		if isWincredNotFound(err) {
			return keystore.Entry{}, keystore.NotFoundError{Name: name}
		}
		return keystore.Entry{}, &keystore.OpError{Op: "read", Name: name, Err: err}
	}
	return keystore.Entry{
		Name:     cred.TargetName,
		Username: cred.UserName,
		Secret:   string(cred.CredentialBlob),
	}, nil
}

// Delete removes one credential.
func (w *Wincred) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return &keystore.OpError{Op: "delete", Name: name, Err: err}
	}
	w.logger.Debug("wincred delete %s", name)
	cred, err := wincred.GetGenericCredential(name)
	if err != nil {
		if isWincredNotFound(err) {
			return keystore.NotFoundError{Name: name}
		}
		return &keystore.OpError{Op: "delete", Name: name, Err: err}
	}
	if err := cred.Delete(); err != nil {
		if isWincredNotFound(err) {
			return keystore.NotFoundError{Name: name}
		}
		return &keystore.OpError{Op: "delete", Name: name, Err: err}
	}
	return nil
}

// List enumerates stored credentials. Secrets are withheld; the API returns
// blobs for some credential types, and the listing contract is that callers
// issue a Read per entry when they need the secret.
func (w *Wincred) List(ctx context.Context) ([]keystore.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, &keystore.OpError{Op: "list", Err: err}
	}
	creds, err := wincred.List()
	if err != nil {
		return nil, &keystore.OpError{Op: "list", Err: err}
	}
	entries := make([]keystore.Entry, 0, len(creds))
	for _, c := range creds {
		entries = append(entries, keystore.Entry{
			Name:     c.TargetName,
			Username: c.UserName,
		})
	}
	return entries, nil
}

// isWincredNotFound reports whether a wincred error means the credential
// does not exist.
func isWincredNotFound(err error) bool {
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "element not found") ||
		strings.Contains(lower, "not found")
}

var _ keystore.KeyStore = (*Wincred)(nil)
