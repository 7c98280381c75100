package keystores

import (
	"context"
	"errors"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/systmms/credvault/internal/logging"
	"github.com/systmms/credvault/pkg/keystore"
)

// recordSep separates the username from the secret inside a keyring item.
// NUL cannot appear in a username.
const recordSep = "\x00"

// indexItem is the keyring item that carries the newline-separated list of
// entry names, since the OS keyring API has no enumeration call.
const indexItem = ".credvault-index"

// Keyring implements keystore.KeyStore on the OS keyring (Secret Service,
// macOS Keychain) via go-keyring. It is the native structured store on
// non-Windows hosts. The API is keyed by (service, item); each entry lives
// under its physical name, and an index item provides List.
type Keyring struct {
	service string
	logger  *logging.Logger
}

// NewKeyringStore creates a keyring-backed keystore under the given service
// namespace; empty means "credvault".
func NewKeyringStore(service string, logger *logging.Logger) *Keyring {
	if service == "" {
		service = "credvault"
	}
	return &Keyring{service: service, logger: logger}
}

// Write stores or replaces an entry (upsert) and adds it to the index.
// The two keyring calls are not atomic: a failure between them leaves an
// entry that Read can see but List cannot, until the next successful Write
// of the same name.
func (k *Keyring) Write(ctx context.Context, name, username, secret string) error {
	if err := ctx.Err(); err != nil {
		return &keystore.OpError{Op: "write", Name: name, Err: err}
	}
	k.logger.Debug("keyring write %s for user %s", name, username)
	if err := keyring.Set(k.service, name, username+recordSep+secret); err != nil {
		return &keystore.OpError{Op: "write", Name: name, Err: err}
	}
	if err := k.indexAdd(name); err != nil {
		return &keystore.OpError{Op: "write", Name: name, Err: err}
	}
	return nil
}

// Read returns one entry with its secret.
func (k *Keyring) Read(ctx context.Context, name string) (keystore.Entry, error) {
	if err := ctx.Err(); err != nil {
		return keystore.Entry{}, &keystore.OpError{Op: "read", Name: name, Err: err}
	}
	record, err := keyring.Get(k.service, name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return keystore.Entry{}, keystore.NotFoundError{Name: name}
		}
		return keystore.Entry{}, &keystore.OpError{Op: "read", Name: name, Err: err}
	}
	username, secret, _ := strings.Cut(record, recordSep)
	return keystore.Entry{Name: name, Username: username, Secret: secret}, nil
}

// Delete removes one entry and drops it from the index.
func (k *Keyring) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return &keystore.OpError{Op: "delete", Name: name, Err: err}
	}
	k.logger.Debug("keyring delete %s", name)
	if err := keyring.Delete(k.service, name); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return keystore.NotFoundError{Name: name}
		}
		return &keystore.OpError{Op: "delete", Name: name, Err: err}
	}
	if err := k.indexRemove(name); err != nil {
		return &keystore.OpError{Op: "delete", Name: name, Err: err}
	}
	return nil
}

// List enumerates entries via the index item. Secrets are withheld; a stale
// index line whose item has disappeared is skipped.
func (k *Keyring) List(ctx context.Context) ([]keystore.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, &keystore.OpError{Op: "list", Err: err}
	}
	names, err := k.indexNames()
	if err != nil {
		return nil, &keystore.OpError{Op: "list", Err: err}
	}
	entries := make([]keystore.Entry, 0, len(names))
	for _, name := range names {
		record, err := keyring.Get(k.service, name)
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				continue
			}
			return nil, &keystore.OpError{Op: "list", Name: name, Err: err}
		}
		username, _, _ := strings.Cut(record, recordSep)
		entries = append(entries, keystore.Entry{Name: name, Username: username})
	}
	return entries, nil
}

func (k *Keyring) indexNames() ([]string, error) {
	raw, err := keyring.Get(k.service, indexItem)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, n := range strings.Split(raw, "\n") {
		if n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}

func (k *Keyring) indexAdd(name string) error {
	names, err := k.indexNames()
	if err != nil {
		return err
	}
	for _, n := range names {
		if n == name {
			return nil
		}
	}
	names = append(names, name)
	return keyring.Set(k.service, indexItem, strings.Join(names, "\n"))
}

func (k *Keyring) indexRemove(name string) error {
	names, err := k.indexNames()
	if err != nil {
		return err
	}
	kept := names[:0]
	for _, n := range names {
		if n != name {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(names) {
		return nil
	}
	return keyring.Set(k.service, indexItem, strings.Join(kept, "\n"))
}

var _ keystore.KeyStore = (*Keyring)(nil)
