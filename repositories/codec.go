// Package repositories implements the durable record store on BadgerDB.
// Values are encoded with CBOR; keys are prefix-scanned, so every entity
// gets a stable "<kind>:" namespace.
package repositories

import (
	stderrors "errors"
	"fmt"

	"opsroom/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
)

func encode(v any) ([]byte, error) {
	data, err := cbor.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return data, nil
}

func decode(data []byte, v any) error {
	if err := cbor.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// mapNotFound converts badger's sentinel into the domain taxonomy.
func mapNotFound(err error) error {
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return errors.ErrNotFound
	}
	return err
}

// getRecord reads and decodes one key inside a view transaction.
func getRecord(db *badger.DB, key string, v any) error {
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return decode(val, v)
		})
	})
	return mapNotFound(err)
}
