// Package store persists the transaction collection as a single JSON array
// under one substrate key, replaced wholesale on every write.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tallyhq/tally/internal/kv"
	"github.com/tallyhq/tally/internal/transaction"
)

// CollectionKey is the substrate key holding the JSON-encoded collection.
const CollectionKey = "transactions"

type Store struct {
	substrate kv.Substrate
}

func New(substrate kv.Substrate) *Store {
	return &Store{substrate: substrate}
}

// Load decodes the persisted collection. A missing key or a value that does
// not decode as an array of transactions resets to an empty collection; only
// substrate read failures are reported as errors.
func (s *Store) Load() ([]transaction.Transaction, error) {
	raw, ok, err := s.substrate.Get(CollectionKey)
	if err != nil {
		return nil, fmt.Errorf("loading collection: %w", err)
	}

	if !ok {
		return nil, nil
	}

	var txs []transaction.Transaction
	if err := json.Unmarshal(raw, &txs); err != nil {
		slog.Warn("corrupted collection, resetting", "error", err)
		return nil, nil
	}

	return txs, nil
}

// Save replaces the persisted collection with txs.
func (s *Store) Save(txs []transaction.Transaction) error {
	if txs == nil {
		txs = []transaction.Transaction{}
	}

	raw, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("encoding collection: %w", err)
	}

	if err := s.substrate.Put(CollectionKey, raw); err != nil {
		return fmt.Errorf("saving collection: %w", err)
	}

	return nil
}

// Clear removes the persisted collection key.
func (s *Store) Clear() error {
	if err := s.substrate.Delete(CollectionKey); err != nil {
		return fmt.Errorf("clearing collection: %w", err)
	}

	return nil
}
