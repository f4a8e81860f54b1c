// Package boltkv implements the kv.Substrate on top of a bbolt database
// file: a single bucket of string keys, one file per tracker.
package boltkv

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketName = "storage"

// Store is a bbolt-backed substrate.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the database file and its bucket.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	var value []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(key))
		if data == nil {
			return nil
		}

		// The slice is only valid during the transaction.
		value = make([]byte, len(data))
		copy(value, data)

		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("reading %q: %w", key, err)
	}

	return value, value != nil, nil
}

func (s *Store) Put(key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}

	return nil
}

func (s *Store) Delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}

	return nil
}
