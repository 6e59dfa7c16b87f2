// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package store provides the durable key-value state shared by all
// Ignite components: scalar keys plus named sub-maps ("dictionaries"),
// with JSON-encoded values. Reads and writes never partially apply.
package store

// Store is the persistence interface every component operates against.
// Get/DictGet decode into out and report whether the key was present;
// an absent key is not an error.
type Store interface {
	Get(key string, out any) (bool, error)
	Put(key string, v any) error
	DictGet(dict, key string, out any) (bool, error)
	DictPut(dict, key string, v any) error
	Close() error
}

// dictKey flattens a dictionary entry into the backing keyspace.
func dictKey(dict, key string) string {
	return dict + "/" + key
}
