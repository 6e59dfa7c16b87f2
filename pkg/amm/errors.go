// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import "github.com/mertksk/casper-ignite/pkg/types"

// Revert codes of the bonding-curve AMM.
var (
	ErrNotAuthorized       = types.NewError(1, "amm: not authorized")
	ErrAlreadyInitialized  = types.NewError(2, "amm: already initialized")
	ErrNotInitialized      = types.NewError(3, "amm: not initialized")
	ErrInsufficientPayment = types.NewError(4, "amm: insufficient payment")
	ErrInsufficientTokens  = types.NewError(5, "amm: insufficient tokens")
	ErrInsufficientReserve = types.NewError(6, "amm: insufficient reserve")
	ErrInvalidAmount       = types.NewError(7, "amm: invalid amount")
	ErrTransferFailed      = types.NewError(8, "amm: transfer failed")
	ErrMathOverflow        = types.NewError(9, "amm: math overflow")
	ErrMissingKey          = types.NewError(10, "amm: missing key")
	ErrSlippageExceeded    = types.NewError(11, "amm: slippage exceeded")
)
