// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, st Store) {
	require := require.New(t)

	var out string
	found, err := st.Get("missing", &out)
	require.NoError(err)
	require.False(found)

	require.NoError(st.Put("greeting", "hello"))
	found, err = st.Get("greeting", &out)
	require.NoError(err)
	require.True(found)
	require.Equal("hello", out)

	// Overwrite
	require.NoError(st.Put("greeting", "goodbye"))
	_, err = st.Get("greeting", &out)
	require.NoError(err)
	require.Equal("goodbye", out)

	// Dictionaries are independent of scalar keys
	require.NoError(st.DictPut("balances", "alice", uint64(42)))
	var n uint64
	found, err = st.DictGet("balances", "alice", &n)
	require.NoError(err)
	require.True(found)
	require.Equal(uint64(42), n)

	found, err = st.DictGet("balances", "bob", &n)
	require.NoError(err)
	require.False(found)

	found, err = st.Get("balances", &out)
	require.NoError(err)
	require.False(found)
}

func TestMemoryStore(t *testing.T) {
	st := NewMemory()
	defer st.Close()
	testStore(t, st)
}

func TestBadgerStore(t *testing.T) {
	st, err := NewBadger(t.TempDir())
	require.NoError(t, err)
	defer st.Close()
	testStore(t, st)
}

func TestBadgerPersistsAcrossReopen(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	st, err := NewBadger(dir)
	require.NoError(err)
	require.NoError(st.Put("counter", uint64(7)))
	require.NoError(st.Close())

	st, err = NewBadger(dir)
	require.NoError(err)
	defer st.Close()

	var n uint64
	found, err := st.Get("counter", &n)
	require.NoError(err)
	require.True(found)
	require.Equal(uint64(7), n)
}

func TestPrefixedIsolation(t *testing.T) {
	require := require.New(t)

	base := NewMemory()
	defer base.Close()
	a := Prefixed(base, "amm")
	b := Prefixed(base, "orderbook")

	require.NoError(a.Put("counter", uint64(1)))
	require.NoError(b.Put("counter", uint64(2)))

	var n uint64
	_, err := a.Get("counter", &n)
	require.NoError(err)
	require.Equal(uint64(1), n)

	_, err = b.Get("counter", &n)
	require.NoError(err)
	require.Equal(uint64(2), n)

	require.NoError(a.DictPut("balances", "alice", uint64(10)))
	found, err := b.DictGet("balances", "alice", &n)
	require.NoError(err)
	require.False(found)
}
