// Package keystore defines the single-entry primitive that backend adapters
// are built on.
//
// A KeyStore reads, writes, lists, and deletes one named entry in whichever
// platform credential store is active. It knows nothing about chunking or the
// logical (resource, username) credential model; those live in the backend
// adapters layered on top.
//
// Implementations must follow the error contract: a missing entry is reported
// as NotFoundError, and every other failure is wrapped in an OpError so that
// callers can distinguish "absent" from "broken" without string matching.
//
// The Fake type in this package is an in-memory KeyStore for tests.
package keystore
