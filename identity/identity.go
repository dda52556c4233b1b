// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/orecollective/fault"
)

// Size - number of bytes in an identity
const Size = solana.PublicKeyLength

// Identity - a 32 byte ledger address: a public key, a program id or
// a derived (off-curve) program address
//
// note: the system program is all zeros so IsZero is only useful for
// checking that an identity was actually set
type Identity = solana.PublicKey

// FromBase58 - decode the usual textual form of an identity
func FromBase58(s string) (Identity, error) {
	b, err := base58.Decode(s)
	if nil != err {
		return Identity{}, fault.ErrInvalidBase58
	}
	return FromBytes(b)
}

// FromBytes - copy a 32 byte buffer into an identity
func FromBytes(b []byte) (Identity, error) {
	if Size != len(b) {
		return Identity{}, fault.ErrInvalidIdentityLength
	}
	return solana.PublicKeyFromBytes(b), nil
}

// MustFromBase58 - decode a compiled in identity, panic on failure
func MustFromBase58(s string) Identity {
	id, err := FromBase58(s)
	if nil != err {
		panic("invalid identity: " + s)
	}
	return id
}

// IsOnCurve - true if the 32 bytes decode to a point on the ed25519
// curve, i.e. a key for which a private key could exist
func IsOnCurve(b []byte) bool {
	return solana.IsOnCurve(b)
}
