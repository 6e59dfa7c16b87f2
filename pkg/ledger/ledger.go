// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger implements the native-value purse subsystem the
// Ignite components settle against. Transfers are all-or-nothing: a
// transfer either moves the full amount or leaves both purses
// untouched.
package ledger

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mertksk/casper-ignite/pkg/log"
	"github.com/mertksk/casper-ignite/pkg/types"
)

var (
	ErrUnknownPurse      = errors.New("ledger: unknown purse")
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")
)

// PurseID identifies an opaque value container.
type PurseID string

// Ledger tracks mote balances per purse, plus the main purse of each
// account for transfer-to-account settlement.
type Ledger struct {
	mu       sync.Mutex
	balances map[PurseID]types.Amount
	accounts map[types.AccountID]PurseID
	log      log.Logger
}

// New creates an empty ledger.
func New(logger log.Logger) *Ledger {
	return &Ledger{
		balances: make(map[PurseID]types.Amount),
		accounts: make(map[types.AccountID]PurseID),
		log:      logger,
	}
}

// CreatePurse allocates a new empty purse.
func (l *Ledger) CreatePurse() PurseID {
	id := PurseID(uuid.NewString())
	l.mu.Lock()
	l.balances[id] = types.ZeroAmount()
	l.mu.Unlock()
	return id
}

// AccountPurse returns the main purse of an account, creating it on
// first use.
func (l *Ledger) AccountPurse(account types.AccountID) PurseID {
	l.mu.Lock()
	defer l.mu.Unlock()
	if id, ok := l.accounts[account]; ok {
		return id
	}
	id := PurseID(uuid.NewString())
	l.balances[id] = types.ZeroAmount()
	l.accounts[account] = id
	return id
}

// Mint credits a purse out of thin air. Genesis and test funding only.
func (l *Ledger) Mint(purse PurseID, amount types.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	bal, ok := l.balances[purse]
	if !ok {
		return ErrUnknownPurse
	}
	next, err := bal.Add(amount)
	if err != nil {
		return err
	}
	l.balances[purse] = next
	return nil
}

// Balance returns the current balance of a purse. Unknown purses read
// as zero.
func (l *Ledger) Balance(purse PurseID) types.Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[purse]
}

// Transfer moves amount from src to dst.
func (l *Ledger) Transfer(src, dst PurseID, amount types.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.transfer(src, dst, amount)
}

// TransferToAccount moves amount from src to the main purse of account.
func (l *Ledger) TransferToAccount(src PurseID, account types.AccountID, amount types.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	dst, ok := l.accounts[account]
	if !ok {
		dst = PurseID(uuid.NewString())
		l.balances[dst] = types.ZeroAmount()
		l.accounts[account] = dst
	}
	return l.transfer(src, dst, amount)
}

func (l *Ledger) transfer(src, dst PurseID, amount types.Amount) error {
	srcBal, ok := l.balances[src]
	if !ok {
		return ErrUnknownPurse
	}
	if _, ok := l.balances[dst]; !ok {
		return ErrUnknownPurse
	}
	newSrc, err := srcBal.Sub(amount)
	if err != nil {
		return ErrInsufficientFunds
	}
	newDst, err := l.balances[dst].Add(amount)
	if err != nil {
		return err
	}
	l.balances[src] = newSrc
	l.balances[dst] = newDst
	l.log.Debug("transfer",
		zap.String("src", string(src)),
		zap.String("dst", string(dst)),
		zap.String("amount", amount.String()))
	return nil
}
