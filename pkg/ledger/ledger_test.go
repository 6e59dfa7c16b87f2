// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mertksk/casper-ignite/pkg/log"
	"github.com/mertksk/casper-ignite/pkg/types"
)

func TestPurseLifecycle(t *testing.T) {
	require := require.New(t)
	bank := New(log.NoOp())

	src := bank.CreatePurse()
	dst := bank.CreatePurse()
	require.NotEqual(src, dst)
	require.True(bank.Balance(src).IsZero())

	require.NoError(bank.Mint(src, types.NewAmount(1000)))
	require.Equal(uint64(1000), bank.Balance(src).Uint64())

	require.NoError(bank.Transfer(src, dst, types.NewAmount(400)))
	require.Equal(uint64(600), bank.Balance(src).Uint64())
	require.Equal(uint64(400), bank.Balance(dst).Uint64())
}

func TestTransferFailuresLeaveBalancesUntouched(t *testing.T) {
	require := require.New(t)
	bank := New(log.NoOp())

	src := bank.CreatePurse()
	dst := bank.CreatePurse()
	require.NoError(bank.Mint(src, types.NewAmount(100)))

	err := bank.Transfer(src, dst, types.NewAmount(101))
	require.ErrorIs(err, ErrInsufficientFunds)
	require.Equal(uint64(100), bank.Balance(src).Uint64())
	require.True(bank.Balance(dst).IsZero())

	err = bank.Transfer("no-such-purse", dst, types.NewAmount(1))
	require.ErrorIs(err, ErrUnknownPurse)

	err = bank.Transfer(src, "no-such-purse", types.NewAmount(1))
	require.ErrorIs(err, ErrUnknownPurse)
	require.Equal(uint64(100), bank.Balance(src).Uint64())
}

func TestAccountPurse(t *testing.T) {
	require := require.New(t)
	bank := New(log.NoOp())

	alice := types.AccountIDFromPublicKey([]byte("alice"))
	purse := bank.AccountPurse(alice)
	require.Equal(purse, bank.AccountPurse(alice))

	bob := types.AccountIDFromPublicKey([]byte("bob"))
	require.NotEqual(purse, bank.AccountPurse(bob))
}

func TestTransferToAccount(t *testing.T) {
	require := require.New(t)
	bank := New(log.NoOp())

	src := bank.CreatePurse()
	require.NoError(bank.Mint(src, types.NewAmount(500)))

	// Recipient purse is created on demand
	carol := types.AccountIDFromPublicKey([]byte("carol"))
	require.NoError(bank.TransferToAccount(src, carol, types.NewAmount(200)))
	require.Equal(uint64(200), bank.Balance(bank.AccountPurse(carol)).Uint64())
	require.Equal(uint64(300), bank.Balance(src).Uint64())
}

func TestMintUnknownPurse(t *testing.T) {
	require := require.New(t)
	bank := New(log.NoOp())
	require.ErrorIs(bank.Mint("no-such-purse", types.NewAmount(1)), ErrUnknownPurse)
}
