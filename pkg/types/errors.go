// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package types

// Error is a categorical failure returned by a component entry point.
// Codes are numbered per component, not globally, mirroring the
// on-chain revert codes; every Error aborts the whole call.
type Error struct {
	Code uint16
	msg  string
}

// NewError builds a component error with its revert code.
func NewError(code uint16, msg string) *Error {
	return &Error{Code: code, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}
