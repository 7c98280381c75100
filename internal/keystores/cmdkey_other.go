//go:build !windows

package keystores

import (
	"context"
	"errors"

	"github.com/systmms/credvault/pkg/keystore"
)

// newEntryReader returns a reader that always fails: the legacy store's
// native single-entry read API only exists on Windows hosts. Tests inject
// their own reader through NewCmdkeyWithExecutor.
func newEntryReader() entryReader {
	return func(ctx context.Context, name string) (keystore.Entry, error) {
		return keystore.Entry{}, &keystore.OpError{
			Op:   "read",
			Name: name,
			Err:  errors.New("legacy store reads require the native credential API, unavailable on this platform"),
		}
	}
}
