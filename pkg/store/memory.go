// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import (
	"encoding/json"
	"sync"
)

// Memory is an in-process Store used by tests and as the default
// backend of the demo binary.
type Memory struct {
	mu sync.RWMutex
	kv map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{kv: make(map[string][]byte)}
}

func (m *Memory) Get(key string, out any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.kv[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (m *Memory) Put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.kv[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *Memory) DictGet(dict, key string, out any) (bool, error) {
	return m.Get(dictKey(dict, key), out)
}

func (m *Memory) DictPut(dict, key string, v any) error {
	return m.Put(dictKey(dict, key), v)
}

func (m *Memory) Close() error {
	return nil
}
