// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import "github.com/mertksk/casper-ignite/pkg/types"

// Linear bonding curve:
//
//	price(s) = initialPrice + slope*s/Scale
//	slope    = initialPrice * reserveRatio / 10000
//
// with reserveRatio in basis points. Buy cost and sell proceeds are the
// definite integral of price over the traded supply interval, computed
// on the unreduced slope numerator (initialPrice*reserveRatio) with a
// single division by 20000*Scale so truncation is paid exactly once.

var (
	bpsDivisor  = types.NewAmount(10_000)
	scaleAmount = types.NewAmount(types.Scale)
	quadDivisor = types.NewAmount(20_000 * types.Scale)
)

// spotPrice returns price(supply) for the given curve parameters.
func spotPrice(initialPrice, reserveRatio, supply types.Amount) (types.Amount, error) {
	slopeNum, err := initialPrice.Mul(reserveRatio)
	if err != nil {
		return types.Amount{}, err
	}
	slopePerToken, err := slopeNum.Div(bpsDivisor)
	if err != nil {
		return types.Amount{}, err
	}
	raw, err := slopePerToken.Mul(supply)
	if err != nil {
		return types.Amount{}, err
	}
	increase, err := raw.Div(scaleAmount)
	if err != nil {
		return types.Amount{}, err
	}
	return initialPrice.Add(increase)
}

// integrate returns the integral of price(s) over [lo, hi]:
//
//	initialPrice*(hi-lo) + slopeNum*(hi^2 - lo^2) / (20000*Scale)
//
// Buying delta tokens at supply S costs integrate(S, S+delta); selling
// delta tokens at supply S yields integrate(S-delta, S).
func integrate(initialPrice, reserveRatio, lo, hi types.Amount) (types.Amount, error) {
	delta, err := hi.Sub(lo)
	if err != nil {
		return types.Amount{}, err
	}
	linear, err := initialPrice.Mul(delta)
	if err != nil {
		return types.Amount{}, err
	}

	slopeNum, err := initialPrice.Mul(reserveRatio)
	if err != nil {
		return types.Amount{}, err
	}
	hiSq, err := hi.Mul(hi)
	if err != nil {
		return types.Amount{}, err
	}
	loSq, err := lo.Mul(lo)
	if err != nil {
		return types.Amount{}, err
	}
	sqDiff, err := hiSq.Sub(loSq)
	if err != nil {
		return types.Amount{}, err
	}
	quadNum, err := slopeNum.Mul(sqDiff)
	if err != nil {
		return types.Amount{}, err
	}
	quadratic, err := quadNum.Div(quadDivisor)
	if err != nil {
		return types.Amount{}, err
	}

	return linear.Add(quadratic)
}
