//go:build windows

package keystores

import (
	"context"

	"github.com/danieljoos/wincred"

	"github.com/systmms/credvault/pkg/keystore"
)

// newEntryReader returns the native single-entry reader for the legacy
// store. cmdkey never prints stored secrets, so reads go straight to the
// credential API the tool writes into.
func newEntryReader() entryReader {
	return func(ctx context.Context, name string) (keystore.Entry, error) {
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
}
