// Package kv defines the durable key-value substrate the transaction store
// persists into: a flat string-keyed byte store, one logical namespace per
// database file.
package kv

//go:generate mockgen -source=kv.go -destination=substrate_mock.go -package=kv
type Substrate interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent; an absent key is not an error.
	Get(key string) (value []byte, ok bool, err error)

	// Put replaces the value stored under key.
	Put(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}
