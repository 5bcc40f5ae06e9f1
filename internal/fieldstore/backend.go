package fieldstore

import "errors"

// ErrNotFound is returned by a Backend when no value is cached for a key.
var ErrNotFound = errors.New("field not cached")

// Backend is a persistent key/value map of field values.
// Load returns ErrNotFound for keys that were never saved or were cleared.
// Clear removes every cached value on a best-effort basis; entries removed
// before a failure stay removed.
type Backend interface {
	Load(key string) (string, error)
	Save(key, value string) error
	Clear() error
}
