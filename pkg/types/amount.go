// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Scale is the number of motes per CSPR (the fixed-point scale of every
// Amount in the system).
const Scale = 1_000_000_000

// amountBits bounds every Amount to the unsigned 512-bit domain of the
// host chain. Any intermediate result outside it is a fatal arithmetic
// fault, never a silent wraparound.
const amountBits = 512

var (
	ErrOverflow  = errors.New("amount exceeds 512-bit domain")
	ErrUnderflow = errors.New("amount underflow")
	ErrDivByZero = errors.New("division by zero")
)

var maxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), amountBits), big.NewInt(1))

// Amount is an unsigned 512-bit integer quantity of motes. The zero
// value is zero motes. Amounts are immutable; arithmetic returns new
// values and reports domain violations instead of wrapping.
type Amount struct {
	v *big.Int
}

// NewAmount returns an Amount holding a u64 number of motes.
func NewAmount(v uint64) Amount {
	return Amount{v: new(big.Int).SetUint64(v)}
}

// ZeroAmount returns the zero Amount.
func ZeroAmount() Amount {
	return Amount{}
}

// MaxAmount returns the largest representable Amount (2^512 - 1).
func MaxAmount() Amount {
	return Amount{v: new(big.Int).Set(maxAmount)}
}

// CSPRAmount returns an Amount holding whole CSPR.
func CSPRAmount(cspr uint64) Amount {
	v := new(big.Int).SetUint64(cspr)
	v.Mul(v, big.NewInt(Scale))
	return Amount{v: v}
}

// ParseAmount parses a base-10 mote quantity.
func ParseAmount(s string) (Amount, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("invalid amount %q", s)
	}
	if v.Sign() < 0 {
		return Amount{}, ErrUnderflow
	}
	if v.Cmp(maxAmount) > 0 {
		return Amount{}, ErrOverflow
	}
	return Amount{v: v}, nil
}

func (a Amount) big() *big.Int {
	if a.v == nil {
		return new(big.Int)
	}
	return a.v
}

// Add returns a + b, or ErrOverflow if the sum leaves the 512-bit domain.
func (a Amount) Add(b Amount) (Amount, error) {
	sum := new(big.Int).Add(a.big(), b.big())
	if sum.Cmp(maxAmount) > 0 {
		return Amount{}, ErrOverflow
	}
	return Amount{v: sum}, nil
}

// Sub returns a - b, or ErrUnderflow if b > a. Balances are unsigned;
// there is no representation of debt anywhere in the system.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.Cmp(b) < 0 {
		return Amount{}, ErrUnderflow
	}
	return Amount{v: new(big.Int).Sub(a.big(), b.big())}, nil
}

// Mul returns a * b, or ErrOverflow if the product leaves the 512-bit
// domain.
func (a Amount) Mul(b Amount) (Amount, error) {
	prod := new(big.Int).Mul(a.big(), b.big())
	if prod.Cmp(maxAmount) > 0 {
		return Amount{}, ErrOverflow
	}
	return Amount{v: prod}, nil
}

// Div returns a / b truncated toward zero.
func (a Amount) Div(b Amount) (Amount, error) {
	if b.IsZero() {
		return Amount{}, ErrDivByZero
	}
	return Amount{v: new(big.Int).Quo(a.big(), b.big())}, nil
}

// Cmp compares a and b, returning -1, 0 or +1.
func (a Amount) Cmp(b Amount) int {
	return a.big().Cmp(b.big())
}

// IsZero reports whether the amount is zero motes.
func (a Amount) IsZero() bool {
	return a.big().Sign() == 0
}

// Uint64 returns the amount as a u64, for values known to fit.
func (a Amount) Uint64() uint64 {
	return a.big().Uint64()
}

// String renders the amount in base-10 motes.
func (a Amount) String() string {
	return a.big().String()
}

// CSPR renders the amount as a decimal CSPR quantity for display.
func (a Amount) CSPR() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).Set(a.big()), -9)
}

// MarshalJSON encodes the amount as a base-10 string; mote quantities
// routinely exceed the safe integer range of JSON numbers.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.big().String() + `"`), nil
}

// UnmarshalJSON decodes a base-10 string amount.
func (a *Amount) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid amount literal %s", b)
	}
	parsed, err := ParseAmount(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
