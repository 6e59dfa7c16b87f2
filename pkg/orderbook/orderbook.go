// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package orderbook implements the escrow side of a price-time-priority
// limit order book: placing an order escrows its backing value (CSPR
// for bids, internal token balance for asks) and records the order;
// settlement of crossings is left to an external matching process.
//
// Best bid and best ask are running extrema maintained on insertion
// only. They are never recomputed when an order is cancelled, so they
// are advisory bounds, not authoritative quotes.
package orderbook

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/mertksk/casper-ignite/pkg/ledger"
	"github.com/mertksk/casper-ignite/pkg/log"
	"github.com/mertksk/casper-ignite/pkg/metric"
	"github.com/mertksk/casper-ignite/pkg/store"
	"github.com/mertksk/casper-ignite/pkg/types"
)

// Storage keys.
const (
	keyOrderCounter = "order_counter"
	keyBestBid      = "best_bid"
	keyBestAsk      = "best_ask"
	dictOrders      = "orders"
	dictBalances    = "token_balances"
)

// Side of an order.
type Side uint8

const (
	SideBuy  Side = 0
	SideSell Side = 1
)

// Status of an order. Transitions are monotone: a Filled or Cancelled
// order is never resurrected.
type Status uint8

const (
	StatusOpen      Status = 0
	StatusFilled    Status = 1
	StatusCancelled Status = 2
	StatusPartial   Status = 3
)

// Order is a resting limit order. Filled tracks the quantity settled by
// the external matching process; Filled <= Amount always.
type Order struct {
	Owner  types.AccountID `json:"owner"`
	Side   Side            `json:"side"`
	Price  types.Amount    `json:"price"`
	Amount types.Amount    `json:"amount"`
	Filled types.Amount    `json:"filled"`
	Status Status          `json:"status"`
}

// Book is the order book instance. Bid escrow is held in a dedicated
// CSPR purse; ask escrow is debited from the internal token ledger.
type Book struct {
	st      store.Store
	bank    *ledger.Ledger
	escrow  ledger.PurseID
	log     log.Logger
	metrics *metric.Metrics
}

// New installs an order book over the given store, creating its escrow
// purse.
func New(st store.Store, bank *ledger.Ledger, logger log.Logger, metrics *metric.Metrics) *Book {
	return &Book{
		st:      st,
		bank:    bank,
		escrow:  bank.CreatePurse(),
		log:     logger,
		metrics: metrics,
	}
}

// PlaceBuyOrder escrows price*amount/Scale motes from the payment purse
// and records an open bid. Returns the new order id.
func (b *Book) PlaceBuyOrder(ctx context.Context, caller types.AccountID, price, amount types.Amount, payment ledger.PurseID) (uint64, error) {
	if price.IsZero() {
		return 0, ErrInvalidPrice
	}
	if amount.IsZero() {
		return 0, ErrInvalidAmount
	}

	cost, err := escrowCost(price, amount)
	if err != nil {
		return 0, err
	}
	if err := b.bank.Transfer(payment, b.escrow, cost); err != nil {
		return 0, ErrTransferFailed
	}

	id, err := b.nextOrderID()
	if err != nil {
		return 0, err
	}
	order := Order{
		Owner:  caller,
		Side:   SideBuy,
		Price:  price,
		Amount: amount,
		Status: StatusOpen,
	}
	if err := b.putOrder(id, order); err != nil {
		return 0, err
	}

	bestBid, err := b.BestBid()
	if err != nil {
		return 0, err
	}
	if price.Cmp(bestBid) > 0 {
		if err := b.st.Put(keyBestBid, price); err != nil {
			return 0, err
		}
	}
	if b.metrics != nil {
		b.metrics.OrdersPlaced.WithLabelValues("buy").Inc()
	}
	b.log.Debug("buy order placed",
		zap.Uint64("order", id),
		zap.String("owner", caller.String()),
		zap.String("price", price.String()),
		zap.String("amount", amount.String()))
	return id, nil
}

// PlaceSellOrder debits the caller's internal token balance and records
// an open ask. Returns the new order id.
func (b *Book) PlaceSellOrder(ctx context.Context, caller types.AccountID, price, amount types.Amount) (uint64, error) {
	if price.IsZero() {
		return 0, ErrInvalidPrice
	}
	if amount.IsZero() {
		return 0, ErrInvalidAmount
	}

	balance, err := b.TokenBalance(caller)
	if err != nil {
		return 0, err
	}
	remaining, err := balance.Sub(amount)
	if err != nil {
		return 0, ErrInsufficientFunds
	}
	if err := b.st.DictPut(dictBalances, caller.String(), remaining); err != nil {
		return 0, err
	}

	id, err := b.nextOrderID()
	if err != nil {
		return 0, err
	}
	order := Order{
		Owner:  caller,
		Side:   SideSell,
		Price:  price,
		Amount: amount,
		Status: StatusOpen,
	}
	if err := b.putOrder(id, order); err != nil {
		return 0, err
	}

	bestAsk, err := b.BestAsk()
	if err != nil {
		return 0, err
	}
	if price.Cmp(bestAsk) < 0 {
		if err := b.st.Put(keyBestAsk, price); err != nil {
			return 0, err
		}
	}
	if b.metrics != nil {
		b.metrics.OrdersPlaced.WithLabelValues("sell").Inc()
	}
	b.log.Debug("sell order placed",
		zap.Uint64("order", id),
		zap.String("owner", caller.String()),
		zap.String("price", price.String()),
		zap.String("amount", amount.String()))
	return id, nil
}

// CancelOrder cancels an open or partially filled order owned by the
// caller and refunds the unfilled remainder: escrowed CSPR for a bid,
// internal token balance for an ask. Filled quantity is not reversible.
// Best bid/ask are left as-is even if this order held the extremum.
func (b *Book) CancelOrder(ctx context.Context, caller types.AccountID, id uint64) error {
	order, err := b.GetOrder(id)
	if err != nil {
		return err
	}
	if order.Owner != caller {
		return ErrNotAuthorized
	}
	if order.Status != StatusOpen && order.Status != StatusPartial {
		return ErrOrderAlreadyFilled
	}

	unfilled, err := order.Amount.Sub(order.Filled)
	if err != nil {
		return ErrMathOverflow
	}

	if order.Side == SideBuy {
		refund, err := escrowCost(order.Price, unfilled)
		if err != nil {
			return err
		}
		if err := b.bank.TransferToAccount(b.escrow, caller, refund); err != nil {
			return ErrTransferFailed
		}
	} else {
		balance, err := b.TokenBalance(caller)
		if err != nil {
			return err
		}
		restored, err := balance.Add(unfilled)
		if err != nil {
			return ErrMathOverflow
		}
		if err := b.st.DictPut(dictBalances, caller.String(), restored); err != nil {
			return err
		}
	}

	order.Status = StatusCancelled
	if err := b.putOrder(id, order); err != nil {
		return err
	}
	if b.metrics != nil {
		b.metrics.OrdersCancelled.Inc()
	}
	b.log.Debug("order cancelled", zap.Uint64("order", id))
	return nil
}

// DepositTokens credits the caller's internal token balance. The token
// itself is not transferred cross-contract; the book only keeps the
// ledger entry backing sell orders.
func (b *Book) DepositTokens(ctx context.Context, caller types.AccountID, amount types.Amount) error {
	if amount.IsZero() {
		return ErrInvalidAmount
	}
	balance, err := b.TokenBalance(caller)
	if err != nil {
		return err
	}
	next, err := balance.Add(amount)
	if err != nil {
		return ErrMathOverflow
	}
	return b.st.DictPut(dictBalances, caller.String(), next)
}

// WithdrawTokens debits the caller's internal token balance.
func (b *Book) WithdrawTokens(ctx context.Context, caller types.AccountID, amount types.Amount) error {
	if amount.IsZero() {
		return ErrInvalidAmount
	}
	balance, err := b.TokenBalance(caller)
	if err != nil {
		return err
	}
	next, err := balance.Sub(amount)
	if err != nil {
		return ErrInsufficientFunds
	}
	return b.st.DictPut(dictBalances, caller.String(), next)
}

// GetOrder returns an order by id.
func (b *Book) GetOrder(id uint64) (Order, error) {
	var order Order
	found, err := b.st.DictGet(dictOrders, orderKey(id), &order)
	if err != nil {
		return Order{}, err
	}
	if !found {
		return Order{}, ErrOrderNotFound
	}
	return order, nil
}

// BestBid returns the advisory highest bid price; zero when no bid has
// ever been placed.
func (b *Book) BestBid() (types.Amount, error) {
	var bid types.Amount
	if _, err := b.st.Get(keyBestBid, &bid); err != nil {
		return types.Amount{}, err
	}
	return bid, nil
}

// BestAsk returns the advisory lowest ask price; the maximum amount
// when no ask has ever been placed.
func (b *Book) BestAsk() (types.Amount, error) {
	var ask types.Amount
	found, err := b.st.Get(keyBestAsk, &ask)
	if err != nil {
		return types.Amount{}, err
	}
	if !found {
		return types.MaxAmount(), nil
	}
	return ask, nil
}

// TokenBalance returns the caller's free internal token balance.
func (b *Book) TokenBalance(account types.AccountID) (types.Amount, error) {
	var balance types.Amount
	if _, err := b.st.DictGet(dictBalances, account.String(), &balance); err != nil {
		return types.Amount{}, err
	}
	return balance, nil
}

// EscrowBalance returns the CSPR held against open bids.
func (b *Book) EscrowBalance() types.Amount {
	return b.bank.Balance(b.escrow)
}

// escrowCost converts a price/amount pair into motes: price*amount/Scale.
func escrowCost(price, amount types.Amount) (types.Amount, error) {
	raw, err := price.Mul(amount)
	if err != nil {
		return types.Amount{}, ErrMathOverflow
	}
	cost, err := raw.Div(types.NewAmount(types.Scale))
	if err != nil {
		return types.Amount{}, ErrMathOverflow
	}
	return cost, nil
}

func (b *Book) nextOrderID() (uint64, error) {
	var counter uint64
	if _, err := b.st.Get(keyOrderCounter, &counter); err != nil {
		return 0, err
	}
	counter++
	if err := b.st.Put(keyOrderCounter, counter); err != nil {
		return 0, err
	}
	return counter, nil
}

func (b *Book) putOrder(id uint64, order Order) error {
	return b.st.DictPut(dictOrders, orderKey(id), order)
}

func orderKey(id uint64) string {
	return strconv.FormatUint(id, 10)
}
