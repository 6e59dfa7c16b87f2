// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package orderbook

import "github.com/mertksk/casper-ignite/pkg/types"

// Revert codes of the order book.
var (
	ErrNotAuthorized      = types.NewError(1, "orderbook: not authorized")
	ErrOrderNotFound      = types.NewError(2, "orderbook: order not found")
	ErrInsufficientFunds  = types.NewError(3, "orderbook: insufficient funds")
	ErrInvalidAmount      = types.NewError(4, "orderbook: invalid amount")
	ErrInvalidPrice       = types.NewError(5, "orderbook: invalid price")
	ErrTransferFailed     = types.NewError(6, "orderbook: transfer failed")
	ErrOrderAlreadyFilled = types.NewError(7, "orderbook: order already filled or cancelled")
	ErrMathOverflow       = types.NewError(8, "orderbook: math overflow")
	ErrMissingKey         = types.NewError(9, "orderbook: missing key")
)
