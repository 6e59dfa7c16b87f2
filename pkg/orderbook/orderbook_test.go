// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package orderbook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mertksk/casper-ignite/pkg/ledger"
	"github.com/mertksk/casper-ignite/pkg/log"
	"github.com/mertksk/casper-ignite/pkg/store"
	"github.com/mertksk/casper-ignite/pkg/types"
)

var (
	alice = types.AccountIDFromPublicKey([]byte("alice"))
	bob   = types.AccountIDFromPublicKey([]byte("bob"))
)

func newBook(t *testing.T) (*Book, *ledger.Ledger) {
	t.Helper()
	bank := ledger.New(log.NoOp())
	return New(store.NewMemory(), bank, log.NoOp(), nil), bank
}

func fundedPurse(t *testing.T, bank *ledger.Ledger, motes uint64) ledger.PurseID {
	t.Helper()
	purse := bank.CreatePurse()
	require.NoError(t, bank.Mint(purse, types.NewAmount(motes)))
	return purse
}

func TestPlaceBuyOrderEscrowsExactCost(t *testing.T) {
	require := require.New(t)
	book, bank := newBook(t)
	ctx := context.Background()

	// 2 CSPR per token for half a token escrows exactly 1 CSPR
	price := types.CSPRAmount(2)
	amount := types.NewAmount(types.Scale / 2)
	purse := fundedPurse(t, bank, 5*types.Scale)

	id, err := book.PlaceBuyOrder(ctx, alice, price, amount, purse)
	require.NoError(err)
	require.Equal(uint64(1), id)
	require.Equal(uint64(types.Scale), book.EscrowBalance().Uint64())
	require.Equal(uint64(4*types.Scale), bank.Balance(purse).Uint64())

	order, err := book.GetOrder(id)
	require.NoError(err)
	require.Equal(alice, order.Owner)
	require.Equal(SideBuy, order.Side)
	require.Equal(StatusOpen, order.Status)
	require.True(order.Filled.IsZero())
}

func TestPlaceSellOrderDebitsTokenBalance(t *testing.T) {
	require := require.New(t)
	book, _ := newBook(t)
	ctx := context.Background()

	require.NoError(book.DepositTokens(ctx, alice, types.NewAmount(1000)))

	id, err := book.PlaceSellOrder(ctx, alice, types.CSPRAmount(3), types.NewAmount(600))
	require.NoError(err)

	balance, err := book.TokenBalance(alice)
	require.NoError(err)
	require.Equal(uint64(400), balance.Uint64())

	order, err := book.GetOrder(id)
	require.NoError(err)
	require.Equal(SideSell, order.Side)

	// Escrowed tokens cannot be withdrawn
	err = book.WithdrawTokens(ctx, alice, types.NewAmount(401))
	require.ErrorIs(err, ErrInsufficientFunds)
}

func TestPlaceOrderRejections(t *testing.T) {
	require := require.New(t)
	book, bank := newBook(t)
	ctx := context.Background()
	purse := fundedPurse(t, bank, types.Scale)

	_, err := book.PlaceBuyOrder(ctx, alice, types.ZeroAmount(), types.NewAmount(1), purse)
	require.ErrorIs(err, ErrInvalidPrice)

	_, err = book.PlaceBuyOrder(ctx, alice, types.NewAmount(1), types.ZeroAmount(), purse)
	require.ErrorIs(err, ErrInvalidAmount)

	// Escrow cost exceeds the purse
	_, err = book.PlaceBuyOrder(ctx, alice, types.CSPRAmount(10), types.CSPRAmount(1), purse)
	require.ErrorIs(err, ErrTransferFailed)

	// No token balance deposited
	_, err = book.PlaceSellOrder(ctx, bob, types.CSPRAmount(1), types.NewAmount(10))
	require.ErrorIs(err, ErrInsufficientFunds)
}

func TestOrderIDsAreSequential(t *testing.T) {
	require := require.New(t)
	book, bank := newBook(t)
	ctx := context.Background()
	purse := fundedPurse(t, bank, 10*types.Scale)

	for want := uint64(1); want <= 3; want++ {
		id, err := book.PlaceBuyOrder(ctx, alice, types.NewAmount(types.Scale), types.NewAmount(types.Scale), purse)
		require.NoError(err)
		require.Equal(want, id)
	}
}

func TestCancelBuyOrderRefundsEscrow(t *testing.T) {
	require := require.New(t)
	book, bank := newBook(t)
	ctx := context.Background()

	price := types.CSPRAmount(2)
	amount := types.NewAmount(types.Scale / 2)
	purse := fundedPurse(t, bank, 5*types.Scale)

	id, err := book.PlaceBuyOrder(ctx, alice, price, amount, purse)
	require.NoError(err)

	err = book.CancelOrder(ctx, bob, id)
	require.ErrorIs(err, ErrNotAuthorized)

	require.NoError(book.CancelOrder(ctx, alice, id))
	require.True(book.EscrowBalance().IsZero())
	require.Equal(uint64(types.Scale), bank.Balance(bank.AccountPurse(alice)).Uint64())

	order, err := book.GetOrder(id)
	require.NoError(err)
	require.Equal(StatusCancelled, order.Status)

	// Cancelled orders stay cancelled
	err = book.CancelOrder(ctx, alice, id)
	require.ErrorIs(err, ErrOrderAlreadyFilled)
}

func TestCancelSellOrderRestoresTokens(t *testing.T) {
	require := require.New(t)
	book, _ := newBook(t)
	ctx := context.Background()

	require.NoError(book.DepositTokens(ctx, alice, types.NewAmount(1000)))
	id, err := book.PlaceSellOrder(ctx, alice, types.CSPRAmount(1), types.NewAmount(1000))
	require.NoError(err)

	require.NoError(book.CancelOrder(ctx, alice, id))
	balance, err := book.TokenBalance(alice)
	require.NoError(err)
	require.Equal(uint64(1000), balance.Uint64())
}

func TestCancelUnknownOrder(t *testing.T) {
	require := require.New(t)
	book, _ := newBook(t)
	err := book.CancelOrder(context.Background(), alice, 42)
	require.ErrorIs(err, ErrOrderNotFound)
}

func TestBestBidAskDefaults(t *testing.T) {
	require := require.New(t)
	book, _ := newBook(t)

	bid, err := book.BestBid()
	require.NoError(err)
	require.True(bid.IsZero())

	ask, err := book.BestAsk()
	require.NoError(err)
	require.Zero(ask.Cmp(types.MaxAmount()))
}

func TestBestBidAskTrackInsertions(t *testing.T) {
	require := require.New(t)
	book, bank := newBook(t)
	ctx := context.Background()
	purse := fundedPurse(t, bank, 100*types.Scale)

	_, err := book.PlaceBuyOrder(ctx, alice, types.CSPRAmount(2), types.NewAmount(types.Scale), purse)
	require.NoError(err)
	_, err = book.PlaceBuyOrder(ctx, alice, types.CSPRAmount(5), types.NewAmount(types.Scale), purse)
	require.NoError(err)
	_, err = book.PlaceBuyOrder(ctx, alice, types.CSPRAmount(3), types.NewAmount(types.Scale), purse)
	require.NoError(err)

	bid, err := book.BestBid()
	require.NoError(err)
	require.Zero(bid.Cmp(types.CSPRAmount(5)))

	require.NoError(book.DepositTokens(ctx, bob, types.NewAmount(10*types.Scale)))
	_, err = book.PlaceSellOrder(ctx, bob, types.CSPRAmount(9), types.NewAmount(types.Scale))
	require.NoError(err)
	_, err = book.PlaceSellOrder(ctx, bob, types.CSPRAmount(7), types.NewAmount(types.Scale))
	require.NoError(err)

	ask, err := book.BestAsk()
	require.NoError(err)
	require.Zero(ask.Cmp(types.CSPRAmount(7)))
}

func TestBestBidSurvivesCancellation(t *testing.T) {
	require := require.New(t)
	book, bank := newBook(t)
	ctx := context.Background()
	purse := fundedPurse(t, bank, 100*types.Scale)

	id, err := book.PlaceBuyOrder(ctx, alice, types.CSPRAmount(5), types.NewAmount(types.Scale), purse)
	require.NoError(err)

	// The extremum is maintained on insertion only: cancelling the
	// order that holds it leaves the stale quote in place.
	require.NoError(book.CancelOrder(ctx, alice, id))
	bid, err := book.BestBid()
	require.NoError(err)
	require.Zero(bid.Cmp(types.CSPRAmount(5)))

	require.NoError(book.DepositTokens(ctx, bob, types.NewAmount(types.Scale)))
	askID, err := book.PlaceSellOrder(ctx, bob, types.CSPRAmount(7), types.NewAmount(types.Scale))
	require.NoError(err)
	require.NoError(book.CancelOrder(ctx, bob, askID))

	ask, err := book.BestAsk()
	require.NoError(err)
	require.Zero(ask.Cmp(types.CSPRAmount(7)))
}

func TestDepositWithdrawTokens(t *testing.T) {
	require := require.New(t)
	book, _ := newBook(t)
	ctx := context.Background()

	err := book.DepositTokens(ctx, alice, types.ZeroAmount())
	require.ErrorIs(err, ErrInvalidAmount)
	err = book.WithdrawTokens(ctx, alice, types.ZeroAmount())
	require.ErrorIs(err, ErrInvalidAmount)

	require.NoError(book.DepositTokens(ctx, alice, types.NewAmount(500)))
	require.NoError(book.WithdrawTokens(ctx, alice, types.NewAmount(200)))

	balance, err := book.TokenBalance(alice)
	require.NoError(err)
	require.Equal(uint64(300), balance.Uint64())
}
