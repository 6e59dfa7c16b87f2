// Copyright (C) 2025, Casper Ignite contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// AccountIDLen is the length of an AccountID in bytes.
const AccountIDLen = 32

// AccountID is an opaque fixed-size account identifier, compared by
// value everywhere. The zero AccountID is never a valid principal.
type AccountID [AccountIDLen]byte

// EmptyAccountID is the zero AccountID.
var EmptyAccountID = AccountID{}

// AccountIDFromPublicKey derives an AccountID from raw public key bytes.
func AccountIDFromPublicKey(pub []byte) AccountID {
	return AccountID(blake2b.Sum256(pub))
}

// AccountIDFromHex parses an AccountID from a hex string.
func AccountIDFromHex(s string) (AccountID, error) {
	var id AccountID
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, err
	}
	if len(b) != AccountIDLen {
		return id, fmt.Errorf("invalid AccountID length: expected %d, got %d", AccountIDLen, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// String returns the hex representation of the AccountID.
func (id AccountID) String() string {
	return hex.EncodeToString(id[:])
}

// IsEmpty reports whether the AccountID is the zero identity.
func (id AccountID) IsEmpty() bool {
	return id == AccountID{}
}

// Bytes returns the byte representation of the AccountID.
func (id AccountID) Bytes() []byte {
	return id[:]
}

// MarshalText encodes the AccountID as hex.
func (id AccountID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText decodes a hex AccountID.
func (id *AccountID) UnmarshalText(b []byte) error {
	parsed, err := AccountIDFromHex(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
