package keystore

import (
	"context"
	"sync"
)

// Fake is an in-memory KeyStore for tests. Entries keep insertion order so
// listing-dependent behavior is deterministic. Error fields allow scripting
// failures; WriteErrFor scripts a failure for one specific entry name, which
// is how partial multi-chunk writes are exercised.
type Fake struct {
	mu      sync.Mutex
	entries map[string]Entry
	order   []string

	WriteErr    error
	WriteErrFor map[string]error
	ReadErr     error
	DeleteErr   error
	ListErr     error

	// Writes records every name passed to Write, in order.
	Writes []string
	// Deletes records every name passed to Delete, in order.
	Deletes []string
}

// NewFake creates an empty fake keystore.
func NewFake() *Fake {
	return &Fake{entries: make(map[string]Entry)}
}

// Seed stores an entry directly, bypassing error scripting.
func (f *Fake) Seed(name, username, secret string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.put(Entry{Name: name, Username: username, Secret: secret})
}

// Remove drops an entry directly, bypassing error scripting.
func (f *Fake) Remove(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drop(name)
}

// Len returns the number of stored entries.
func (f *Fake) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// Write implements KeyStore.
func (f *Fake) Write(ctx context.Context, name, username, secret string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes = append(f.Writes, name)
	if err := f.WriteErrFor[name]; err != nil {
		return &OpError{Op: "write", Name: name, Err: err}
	}
	if f.WriteErr != nil {
		return &OpError{Op: "write", Name: name, Err: f.WriteErr}
	}
	f.put(Entry{Name: name, Username: username, Secret: secret})
	return nil
}

// Read implements KeyStore.
func (f *Fake) Read(ctx context.Context, name string) (Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadErr != nil {
		return Entry{}, &OpError{Op: "read", Name: name, Err: f.ReadErr}
	}
	e, ok := f.entries[name]
	if !ok {
		return Entry{}, NotFoundError{Name: name}
	}
	return e, nil
}

// Delete implements KeyStore.
func (f *Fake) Delete(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deletes = append(f.Deletes, name)
	if f.DeleteErr != nil {
		return &OpError{Op: "delete", Name: name, Err: f.DeleteErr}
	}
	if _, ok := f.entries[name]; !ok {
		return NotFoundError{Name: name}
	}
	f.drop(name)
	return nil
}

// List implements KeyStore. Secrets are withheld, matching the contract.
func (f *Fake) List(ctx context.Context) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, &OpError{Op: "list", Err: f.ListErr}
	}
	out := make([]Entry, 0, len(f.order))
	for _, name := range f.order {
		e := f.entries[name]
		out = append(out, Entry{Name: e.Name, Username: e.Username})
	}
	return out, nil
}

func (f *Fake) put(e Entry) {
	if _, ok := f.entries[e.Name]; !ok {
		f.order = append(f.order, e.Name)
	}
	f.entries[e.Name] = e
}

func (f *Fake) drop(name string) {
	if _, ok := f.entries[name]; !ok {
		return
	}
	delete(f.entries, name)
	for i, n := range f.order {
		if n == name {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

var _ KeyStore = (*Fake)(nil)
