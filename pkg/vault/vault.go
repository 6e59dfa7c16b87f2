// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vault implements generic named-order CSPR escrow: lock value
// under a caller-chosen order id, unlock to an arbitrary recipient
// (privileged callers only), or cancel and refund the owner.
package vault

import (
	"context"

	"go.uber.org/zap"

	"github.com/mertksk/casper-ignite/pkg/ledger"
	"github.com/mertksk/casper-ignite/pkg/log"
	"github.com/mertksk/casper-ignite/pkg/metric"
	"github.com/mertksk/casper-ignite/pkg/store"
	"github.com/mertksk/casper-ignite/pkg/types"
)

// Revert codes of the vault.
var (
	ErrInsufficientBalance = types.NewError(1, "vault: insufficient locked balance")
	ErrOrderNotFound       = types.NewError(2, "vault: order not found")
	ErrNotOrderOwner       = types.NewError(3, "vault: not order owner")
	ErrNotAuthorized       = types.NewError(4, "vault: not authorized")
	ErrAlreadyLocked       = types.NewError(5, "vault: order already locked")
	ErrInvalidAmount       = types.NewError(6, "vault: invalid amount")
	ErrTransferFailed      = types.NewError(7, "vault: transfer failed")
	ErrMissingKey          = types.NewError(10, "vault: missing key")
)

// Storage keys.
const (
	keyOrderBook = "order_book"
	dictLocked   = "locked_cspr"
	dictOwners   = "order_owners"
)

// Vault holds escrowed CSPR in a dedicated purse. An order id maps to
// exactly one owner for its lifetime; the locked amount is set once and
// only ever decreases.
type Vault struct {
	st      store.Store
	bank    *ledger.Ledger
	admin   types.AccountID
	purse   ledger.PurseID
	log     log.Logger
	metrics *metric.Metrics
}

// New installs a vault over the given store, creating its escrow purse.
func New(st store.Store, bank *ledger.Ledger, admin types.AccountID, logger log.Logger, metrics *metric.Metrics) *Vault {
	return &Vault{
		st:      st,
		bank:    bank,
		admin:   admin,
		purse:   bank.CreatePurse(),
		log:     logger,
		metrics: metrics,
	}
}

// Lock escrows amount motes from the payment purse under orderID. An id
// that has ever been locked cannot be locked again, even after full
// unlock.
func (v *Vault) Lock(ctx context.Context, caller types.AccountID, orderID string, amount types.Amount, payment ledger.PurseID) error {
	if amount.IsZero() {
		return ErrInvalidAmount
	}

	var existing types.Amount
	found, err := v.st.DictGet(dictLocked, orderID, &existing)
	if err != nil {
		return err
	}
	if found {
		return ErrAlreadyLocked
	}

	if err := v.bank.Transfer(payment, v.purse, amount); err != nil {
		return ErrTransferFailed
	}

	if err := v.st.DictPut(dictLocked, orderID, amount); err != nil {
		return err
	}
	if err := v.st.DictPut(dictOwners, orderID, caller); err != nil {
		return err
	}
	if v.metrics != nil {
		v.metrics.VaultLocks.Inc()
	}
	v.log.Debug("locked",
		zap.String("order", orderID),
		zap.String("owner", caller.String()),
		zap.String("amount", amount.String()))
	return nil
}

// Unlock releases amount motes of an order's escrow to recipient.
// Callable only by the admin or the designated order-book identity.
// The entry is kept at zero rather than deleted, so repeated partial
// unlocks compose.
func (v *Vault) Unlock(ctx context.Context, caller types.AccountID, orderID string, recipient types.AccountID, amount types.Amount) error {
	if err := v.onlyOrderBookOrAdmin(caller); err != nil {
		return err
	}

	var locked types.Amount
	found, err := v.st.DictGet(dictLocked, orderID, &locked)
	if err != nil {
		return err
	}
	if !found {
		return ErrOrderNotFound
	}
	remaining, err := locked.Sub(amount)
	if err != nil {
		return ErrInsufficientBalance
	}

	if err := v.bank.TransferToAccount(v.purse, recipient, amount); err != nil {
		return ErrTransferFailed
	}
	if err := v.st.DictPut(dictLocked, orderID, remaining); err != nil {
		return err
	}
	if v.metrics != nil {
		v.metrics.VaultUnlocks.Inc()
	}
	v.log.Debug("unlocked",
		zap.String("order", orderID),
		zap.String("recipient", recipient.String()),
		zap.String("amount", amount.String()))
	return nil
}

// CancelOrder refunds the full remaining escrow of an order to its
// owner and zeroes it. Owner-only. Succeeds as a no-op when nothing
// remains locked.
func (v *Vault) CancelOrder(ctx context.Context, caller types.AccountID, orderID string) error {
	var owner types.AccountID
	found, err := v.st.DictGet(dictOwners, orderID, &owner)
	if err != nil {
		return err
	}
	if !found {
		return ErrOrderNotFound
	}
	if owner != caller {
		return ErrNotOrderOwner
	}

	var locked types.Amount
	if _, err := v.st.DictGet(dictLocked, orderID, &locked); err != nil {
		return err
	}
	if locked.IsZero() {
		return nil
	}

	if err := v.bank.TransferToAccount(v.purse, caller, locked); err != nil {
		return ErrTransferFailed
	}
	if err := v.st.DictPut(dictLocked, orderID, types.ZeroAmount()); err != nil {
		return err
	}
	v.log.Debug("escrow cancelled", zap.String("order", orderID))
	return nil
}

// SetOrderBook designates the order-book identity allowed to unlock.
// Admin-only.
func (v *Vault) SetOrderBook(ctx context.Context, caller, orderBook types.AccountID) error {
	if caller != v.admin {
		return ErrNotAuthorized
	}
	return v.st.Put(keyOrderBook, orderBook)
}

// LockedAmount returns the remaining escrow under an order id; absent
// reads as zero.
func (v *Vault) LockedAmount(orderID string) (types.Amount, error) {
	var locked types.Amount
	if _, err := v.st.DictGet(dictLocked, orderID, &locked); err != nil {
		return types.Amount{}, err
	}
	return locked, nil
}

// onlyOrderBookOrAdmin admits the admin and the designated order book.
// The zero identity never authorizes: before SetOrderBook is called the
// stored default must not match any caller.
func (v *Vault) onlyOrderBookOrAdmin(caller types.AccountID) error {
	if caller == v.admin {
		return nil
	}
	var orderBook types.AccountID
	found, err := v.st.Get(keyOrderBook, &orderBook)
	if err != nil {
		return err
	}
	if found && !orderBook.IsEmpty() && caller == orderBook {
		return nil
	}
	return ErrNotAuthorized
}
