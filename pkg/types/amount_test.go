// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAmountArithmetic(t *testing.T) {
	require := require.New(t)

	a := NewAmount(1000)
	b := NewAmount(300)

	sum, err := a.Add(b)
	require.NoError(err)
	require.Equal(uint64(1300), sum.Uint64())

	diff, err := a.Sub(b)
	require.NoError(err)
	require.Equal(uint64(700), diff.Uint64())

	prod, err := a.Mul(b)
	require.NoError(err)
	require.Equal(uint64(300000), prod.Uint64())

	quot, err := a.Div(b)
	require.NoError(err)
	require.Equal(uint64(3), quot.Uint64())

	// Division truncates toward zero
	quot, err = NewAmount(7).Div(NewAmount(2))
	require.NoError(err)
	require.Equal(uint64(3), quot.Uint64())
}

func TestAmountDomainViolations(t *testing.T) {
	require := require.New(t)

	_, err := NewAmount(1).Sub(NewAmount(2))
	require.ErrorIs(err, ErrUnderflow)

	_, err = NewAmount(1).Div(ZeroAmount())
	require.ErrorIs(err, ErrDivByZero)

	max := MaxAmount()
	_, err = max.Add(NewAmount(1))
	require.ErrorIs(err, ErrOverflow)

	_, err = max.Mul(NewAmount(2))
	require.ErrorIs(err, ErrOverflow)

	// The bound itself is representable
	sum, err := max.Add(ZeroAmount())
	require.NoError(err)
	require.Zero(sum.Cmp(max))
}

func TestAmountZeroValue(t *testing.T) {
	require := require.New(t)

	var a Amount
	require.True(a.IsZero())
	require.Equal("0", a.String())

	sum, err := a.Add(NewAmount(5))
	require.NoError(err)
	require.Equal(uint64(5), sum.Uint64())
}

func TestParseAmount(t *testing.T) {
	require := require.New(t)

	a, err := ParseAmount("123456789012345678901234567890")
	require.NoError(err)
	require.Equal("123456789012345678901234567890", a.String())

	_, err = ParseAmount("-1")
	require.ErrorIs(err, ErrUnderflow)

	_, err = ParseAmount("not a number")
	require.Error(err)

	_, err = ParseAmount(MaxAmount().String() + "0")
	require.ErrorIs(err, ErrOverflow)
}

func TestAmountJSON(t *testing.T) {
	require := require.New(t)

	a := CSPRAmount(15)
	raw, err := json.Marshal(a)
	require.NoError(err)
	require.Equal(`"15000000000"`, string(raw))

	var back Amount
	require.NoError(json.Unmarshal(raw, &back))
	require.Zero(back.Cmp(a))

	require.Error(json.Unmarshal([]byte(`15000000000`), &back))
}

func TestAmountCSPRDisplay(t *testing.T) {
	require := require.New(t)

	a := NewAmount(2_500_000_000)
	require.Equal("2.5", a.CSPR().String())
	require.Equal("0.000000001", NewAmount(1).CSPR().String())
}
