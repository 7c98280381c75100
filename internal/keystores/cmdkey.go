// Package keystores provides the concrete KeyStore primitives: the native
// structured credential store and the legacy cmdkey command-line store.
package keystores

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/systmms/credvault/internal/logging"
	pkgexec "github.com/systmms/credvault/pkg/exec"
	"github.com/systmms/credvault/pkg/keystore"
)

// entryReader reads one stored secret by name. cmdkey can write, list, and
// delete entries but cannot print a stored secret, so single-entry reads go
// through the platform's native credential API instead.
type entryReader func(ctx context.Context, name string) (keystore.Entry, error)

// Cmdkey implements keystore.KeyStore on top of the legacy cmdkey tool.
// Every operation spawns one tool invocation; the store's /list output is
// line-oriented text parsed with a fixed key:value grammar.
type Cmdkey struct {
	path     string
	executor pkgexec.CommandExecutor
	read     entryReader
	logger   *logging.Logger
}

// NewCmdkey creates a cmdkey-backed keystore. path is the tool to invoke;
// empty means "cmdkey" from PATH.
func NewCmdkey(path string, logger *logging.Logger) *Cmdkey {
	if path == "" {
		path = "cmdkey"
	}
	return &Cmdkey{
		path:     path,
		executor: pkgexec.DefaultExecutor(),
		read:     newEntryReader(),
		logger:   logger,
	}
}

// NewCmdkeyWithExecutor creates a cmdkey keystore with a custom executor and
// reader. This is primarily for testing, allowing tool invocations to be
// mocked.
func NewCmdkeyWithExecutor(path string, executor pkgexec.CommandExecutor, read entryReader, logger *logging.Logger) *Cmdkey {
	if path == "" {
		path = "cmdkey"
	}
	return &Cmdkey{
		path:     path,
		executor: executor,
		read:     read,
		logger:   logger,
	}
}

// Write stores or replaces a generic entry. cmdkey overwrites an existing
// target with the same name, giving upsert semantics.
func (c *Cmdkey) Write(ctx context.Context, name, username, secret string) error {
	c.logger.Debug("cmdkey write %s for user %s", name, username)
	_, stderr, err := c.executor.Execute(ctx, c.path,
		"/generic:"+name, "/user:"+username, "/pass:"+secret)
	if err != nil {
		return &keystore.OpError{Op: "write", Name: name, Err: toolError(err, stderr)}
	}
	return nil
}

// Read returns one entry with its secret via the native credential API.
func (c *Cmdkey) Read(ctx context.Context, name string) (keystore.Entry, error) {
	return c.read(ctx, name)
}

// Delete removes one entry. A missing target is reported as NotFoundError.
func (c *Cmdkey) Delete(ctx context.Context, name string) error {
	c.logger.Debug("cmdkey delete %s", name)
	stdout, stderr, err := c.executor.Execute(ctx, c.path, "/delete:"+name)
	if err != nil {
		if isToolNotFound(string(stdout)) || isToolNotFound(string(stderr)) {
			return keystore.NotFoundError{Name: name}
		}
		return &keystore.OpError{Op: "delete", Name: name, Err: toolError(err, stderr)}
	}
	// Some tool builds report a missing target on stdout with exit code 0.
	if isToolNotFound(string(stdout)) {
		return keystore.NotFoundError{Name: name}
	}
	return nil
}

// List enumerates stored entries by parsing the tool's /list output.
// Secrets are never part of the listing.
func (c *Cmdkey) List(ctx context.Context) ([]keystore.Entry, error) {
	stdout, stderr, err := c.executor.Execute(ctx, c.path, "/list")
	if err != nil {
		return nil, &keystore.OpError{Op: "list", Err: toolError(err, stderr)}
	}
	entries, err := parseListing(string(stdout))
	if err != nil {
		return nil, &keystore.OpError{Op: "list", Err: err}
	}
	return entries, nil
}

// targetPrefixes are store-internal prefixes the tool prepends to target
// names in listings. They are not part of the name the entry was written
// under and are stripped before the name is returned.
var targetPrefixes = []string{
	"LegacyGeneric:target=",
	"Domain:target=",
	"WindowsLive:target=",
}

// parseListing parses the tool's line-oriented /list output. Each record is
// a run of "Key: Value" lines terminated by a blank line; lines without a
// colon (persistence notes and other continuations) belong to the current
// record and carry no fields we need. Only records tagged Generic are
// returned.
func parseListing(out string) ([]keystore.Entry, error) {
	var (
		entries []keystore.Entry
		cur     keystore.Entry
		curType string
		open    bool
	)

	flush := func() {
		if open && cur.Name != "" && curType == "Generic" {
			entries = append(entries, cur)
		}
		cur = keystore.Entry{}
		curType = ""
		open = false
	}

	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			flush()
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "Target":
			// A new Target line starts a record even without a separating
			// blank line.
			if open && cur.Name != "" {
				flush()
			}
			open = true
			cur.Name = stripTargetPrefix(value)
		case "Type":
			curType = value
		case "User":
			cur.Username = value
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan listing: %w", err)
	}
	flush()
	return entries, nil
}

func stripTargetPrefix(target string) string {
	for _, p := range targetPrefixes {
		if strings.HasPrefix(target, p) {
			return strings.TrimPrefix(target, p)
		}
	}
	return target
}

// isToolNotFound reports whether tool output indicates a missing credential.
func isToolNotFound(out string) bool {
	lower := strings.ToLower(out)
	return strings.Contains(lower, "element not found") ||
		strings.Contains(lower, "not found") ||
		strings.Contains(lower, "cannot find")
}

// toolError folds captured stderr into the invocation error.
func toolError(err error, stderr []byte) error {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return err
	}
	return fmt.Errorf("%w: %s", err, msg)
}

var _ keystore.KeyStore = (*Cmdkey)(nil)
