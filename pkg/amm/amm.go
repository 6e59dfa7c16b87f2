// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package amm implements the linear bonding-curve automated market
// maker: instant token buy/sell priced by integrating the curve over
// the traded supply interval, settled against a CSPR reserve purse.
//
// Every entry point is one atomic call: validate, read, compute, then
// write and transfer. A failed call leaves all state untouched.
package amm

import (
	"context"

	"go.uber.org/zap"

	"github.com/mertksk/casper-ignite/pkg/ledger"
	"github.com/mertksk/casper-ignite/pkg/log"
	"github.com/mertksk/casper-ignite/pkg/metric"
	"github.com/mertksk/casper-ignite/pkg/store"
	"github.com/mertksk/casper-ignite/pkg/types"
)

// Storage keys.
const (
	keyTotalSupply  = "total_supply"
	keyInitialPrice = "initial_price"
	keyReserveRatio = "reserve_ratio"
	keyInitialized  = "initialized"
	dictBalances    = "token_balances"
)

// AMM is a bonding-curve market over a single token, holding its CSPR
// reserve in a dedicated purse.
type AMM struct {
	st      store.Store
	bank    *ledger.Ledger
	admin   types.AccountID
	reserve ledger.PurseID
	log     log.Logger
	metrics *metric.Metrics
}

// New installs an AMM instance over the given store. The reserve purse
// is created immediately; curve parameters are set by Initialize.
func New(st store.Store, bank *ledger.Ledger, admin types.AccountID, logger log.Logger, metrics *metric.Metrics) *AMM {
	return &AMM{
		st:      st,
		bank:    bank,
		admin:   admin,
		reserve: bank.CreatePurse(),
		log:     logger,
		metrics: metrics,
	}
}

// Initialize sets the curve parameters. Admin-only, one-time.
func (a *AMM) Initialize(ctx context.Context, caller types.AccountID, initialPrice, reserveRatio types.Amount) error {
	if caller != a.admin {
		return ErrNotAuthorized
	}
	initialized, err := a.initialized()
	if err != nil {
		return err
	}
	if initialized {
		return ErrAlreadyInitialized
	}
	if initialPrice.IsZero() {
		return ErrInvalidAmount
	}

	if err := a.st.Put(keyInitialPrice, initialPrice); err != nil {
		return err
	}
	if err := a.st.Put(keyReserveRatio, reserveRatio); err != nil {
		return err
	}
	if err := a.st.Put(keyInitialized, true); err != nil {
		return err
	}
	a.log.Info("amm initialized",
		zap.String("initial_price", initialPrice.String()),
		zap.String("reserve_ratio", reserveRatio.String()))
	return nil
}

// Buy purchases tokenAmount tokens, paying at most maxCost motes out of
// the payment purse. The payment transfer is the last effect that can
// fail; after it succeeds the supply and buyer balance updates are
// unconditional.
func (a *AMM) Buy(ctx context.Context, caller types.AccountID, tokenAmount, maxCost types.Amount, payment ledger.PurseID) error {
	initialized, err := a.initialized()
	if err != nil {
		return err
	}
	if !initialized {
		return ErrNotInitialized
	}
	if tokenAmount.IsZero() {
		return ErrInvalidAmount
	}

	cost, err := a.BuyCost(tokenAmount)
	if err != nil {
		return err
	}
	if cost.Cmp(maxCost) > 0 {
		return ErrSlippageExceeded
	}

	supply, err := a.TotalSupply()
	if err != nil {
		return err
	}
	balance, err := a.BalanceOf(caller)
	if err != nil {
		return err
	}
	newSupply, err := supply.Add(tokenAmount)
	if err != nil {
		return ErrMathOverflow
	}
	newBalance, err := balance.Add(tokenAmount)
	if err != nil {
		return ErrMathOverflow
	}

	if err := a.bank.Transfer(payment, a.reserve, cost); err != nil {
		return ErrTransferFailed
	}

	if err := a.st.Put(keyTotalSupply, newSupply); err != nil {
		return err
	}
	if err := a.st.DictPut(dictBalances, caller.String(), newBalance); err != nil {
		return err
	}
	if a.metrics != nil {
		a.metrics.TokensBought.Inc()
	}
	a.log.Debug("buy",
		zap.String("buyer", caller.String()),
		zap.String("tokens", tokenAmount.String()),
		zap.String("cost", cost.String()))
	return nil
}

// Sell sells tokenAmount tokens back to the curve for at least
// minProceeds motes. Internal state is debited before the outbound
// transfer; the ledger collaborator is non-reentrant and all-or-nothing,
// which keeps the call atomic as a whole.
func (a *AMM) Sell(ctx context.Context, caller types.AccountID, tokenAmount, minProceeds types.Amount) error {
	initialized, err := a.initialized()
	if err != nil {
		return err
	}
	if !initialized {
		return ErrNotInitialized
	}
	if tokenAmount.IsZero() {
		return ErrInvalidAmount
	}

	balance, err := a.BalanceOf(caller)
	if err != nil {
		return err
	}
	if balance.Cmp(tokenAmount) < 0 {
		return ErrInsufficientTokens
	}

	proceeds, err := a.SellProceeds(tokenAmount)
	if err != nil {
		return err
	}
	if proceeds.Cmp(minProceeds) < 0 {
		return ErrSlippageExceeded
	}
	if a.bank.Balance(a.reserve).Cmp(proceeds) < 0 {
		return ErrInsufficientReserve
	}

	supply, err := a.TotalSupply()
	if err != nil {
		return err
	}
	newSupply, err := supply.Sub(tokenAmount)
	if err != nil {
		return ErrInsufficientTokens
	}
	newBalance, err := balance.Sub(tokenAmount)
	if err != nil {
		return ErrInsufficientTokens
	}

	if err := a.st.DictPut(dictBalances, caller.String(), newBalance); err != nil {
		return err
	}
	if err := a.st.Put(keyTotalSupply, newSupply); err != nil {
		return err
	}

	if err := a.bank.TransferToAccount(a.reserve, caller, proceeds); err != nil {
		return ErrTransferFailed
	}
	if a.metrics != nil {
		a.metrics.TokensSold.Inc()
	}
	a.log.Debug("sell",
		zap.String("seller", caller.String()),
		zap.String("tokens", tokenAmount.String()),
		zap.String("proceeds", proceeds.String()))
	return nil
}

// DepositReserve tops up the CSPR reserve. Admin-only.
func (a *AMM) DepositReserve(ctx context.Context, caller types.AccountID, amount types.Amount, payment ledger.PurseID) error {
	if caller != a.admin {
		return ErrNotAuthorized
	}
	if amount.IsZero() {
		return ErrInvalidAmount
	}
	if err := a.bank.Transfer(payment, a.reserve, amount); err != nil {
		return ErrTransferFailed
	}
	return nil
}

// AdminWithdraw draws down the reserve to a recipient account.
// Admin-only.
func (a *AMM) AdminWithdraw(ctx context.Context, caller types.AccountID, amount types.Amount, recipient types.AccountID) error {
	if caller != a.admin {
		return ErrNotAuthorized
	}
	if a.bank.Balance(a.reserve).Cmp(amount) < 0 {
		return ErrInsufficientReserve
	}
	if err := a.bank.TransferToAccount(a.reserve, recipient, amount); err != nil {
		return ErrTransferFailed
	}
	return nil
}

// BuyCost quotes the cost of buying tokenAmount tokens at the current
// supply. Side-effect free.
func (a *AMM) BuyCost(tokenAmount types.Amount) (types.Amount, error) {
	initialPrice, reserveRatio, err := a.params()
	if err != nil {
		return types.Amount{}, err
	}
	supply, err := a.TotalSupply()
	if err != nil {
		return types.Amount{}, err
	}
	hi, err := supply.Add(tokenAmount)
	if err != nil {
		return types.Amount{}, ErrMathOverflow
	}
	cost, err := integrate(initialPrice, reserveRatio, supply, hi)
	if err != nil {
		return types.Amount{}, ErrMathOverflow
	}
	return cost, nil
}

// SellProceeds quotes the proceeds of selling tokenAmount tokens at the
// current supply. Side-effect free.
func (a *AMM) SellProceeds(tokenAmount types.Amount) (types.Amount, error) {
	initialPrice, reserveRatio, err := a.params()
	if err != nil {
		return types.Amount{}, err
	}
	supply, err := a.TotalSupply()
	if err != nil {
		return types.Amount{}, err
	}
	lo, err := supply.Sub(tokenAmount)
	if err != nil {
		return types.Amount{}, ErrInsufficientTokens
	}
	proceeds, err := integrate(initialPrice, reserveRatio, lo, supply)
	if err != nil {
		return types.Amount{}, ErrMathOverflow
	}
	return proceeds, nil
}

// PriceAt returns the curve price at an arbitrary supply level.
func (a *AMM) PriceAt(supply types.Amount) (types.Amount, error) {
	initialPrice, reserveRatio, err := a.params()
	if err != nil {
		return types.Amount{}, err
	}
	price, err := spotPrice(initialPrice, reserveRatio, supply)
	if err != nil {
		return types.Amount{}, ErrMathOverflow
	}
	return price, nil
}

// CurrentPrice returns the curve price at the current supply.
func (a *AMM) CurrentPrice() (types.Amount, error) {
	supply, err := a.TotalSupply()
	if err != nil {
		return types.Amount{}, err
	}
	return a.PriceAt(supply)
}

// BalanceOf returns the token balance of an account; absent means zero.
func (a *AMM) BalanceOf(account types.AccountID) (types.Amount, error) {
	var balance types.Amount
	if _, err := a.st.DictGet(dictBalances, account.String(), &balance); err != nil {
		return types.Amount{}, err
	}
	return balance, nil
}

// TotalSupply returns the circulating token supply.
func (a *AMM) TotalSupply() (types.Amount, error) {
	var supply types.Amount
	if _, err := a.st.Get(keyTotalSupply, &supply); err != nil {
		return types.Amount{}, err
	}
	return supply, nil
}

// ReserveBalance returns the CSPR balance of the reserve purse.
func (a *AMM) ReserveBalance() types.Amount {
	return a.bank.Balance(a.reserve)
}

func (a *AMM) initialized() (bool, error) {
	var initialized bool
	if _, err := a.st.Get(keyInitialized, &initialized); err != nil {
		return false, err
	}
	return initialized, nil
}

func (a *AMM) params() (initialPrice, reserveRatio types.Amount, err error) {
	found, err := a.st.Get(keyInitialPrice, &initialPrice)
	if err != nil {
		return
	}
	if !found {
		err = ErrMissingKey
		return
	}
	found, err = a.st.Get(keyReserveRatio, &reserveRatio)
	if err != nil {
		return
	}
	if !found {
		err = ErrMissingKey
	}
	return
}
