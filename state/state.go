// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package state - decode the ORE program accounts read by the miner
//
// each account starts with an 8 byte header whose first byte is the
// account kind, the fields follow in little endian order
package state

import (
	"bytes"

	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
)

// Kind - first byte of an account
type Kind uint8

// account kinds of the ORE program
const (
	KindBus      Kind = 100
	KindProof    Kind = 101
	KindTreasury Kind = 102
)

// byte sizes for various fields
const (
	HeaderSize = 8
	HashSize   = 32
	u64Size    = 8
)

// Hash - a keccak digest as stored in proof and treasury accounts
type Hash [HashSize]byte

// LessOrEqual - big endian comparison used for difficulty checks
func (h Hash) LessOrEqual(other Hash) bool {
	return bytes.Compare(h[:], other[:]) <= 0
}

func (h Hash) String() string {
	return base58.Encode(h[:])
}

// MarshalText - base58 form
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText - from base58 form
func (h *Hash) UnmarshalText(s []byte) error {
	b, err := base58.Decode(string(s))
	if nil != err {
		return fault.ErrInvalidBase58
	}
	if HashSize != len(b) {
		return fault.ErrInvalidAccountData
	}
	copy(h[:], b)
	return nil
}

func header(data []byte, kind Kind, size int) error {
	if len(data) < size {
		return fault.ErrInvalidAccountData
	}
	if kind != Kind(data[0]) {
		return fault.ErrInvalidAccountKind
	}
	return nil
}

func newRecord(kind Kind, size int) []byte {
	buffer := make([]byte, size)
	buffer[0] = byte(kind)
	return buffer
}

func getIdentity(data []byte) identity.Identity {
	id := identity.Identity{}
	copy(id[:], data[:identity.Size])
	return id
}

func getHash(data []byte) Hash {
	h := Hash{}
	copy(h[:], data[:HashSize])
	return h
}
