// Package kv provides the durable key-value storage every other component
// reads and writes collections through. Values are opaque byte slices;
// callers handle JSON encoding themselves.
package kv

// Store persists values by logical collection name.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(name string) ([]byte, bool, error)
	// Set stores or replaces the value for a key.
	Set(name string, value []byte) error
	// Delete removes a key; deleting a missing key is not an error.
	Delete(name string) error
}
