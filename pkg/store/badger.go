// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import (
	"encoding/json"
	"errors"

	badger "github.com/dgraph-io/badger/v4"
)

// Badger is the durable Store backend.
type Badger struct {
	db *badger.DB
}

// NewBadger opens (or creates) a badger-backed store at path.
func NewBadger(path string) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Badger{db: db}, nil
}

func (b *Badger) Get(key string, out any) (bool, error) {
	var raw []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(raw, out)
}

func (b *Badger) Put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
}

func (b *Badger) DictGet(dict, key string, out any) (bool, error) {
	return b.Get(dictKey(dict, key), out)
}

func (b *Badger) DictPut(dict, key string, v any) error {
	return b.Put(dictKey(dict, key), v)
}

func (b *Badger) Close() error {
	return b.db.Close()
}
