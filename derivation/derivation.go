// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package derivation

import (
	"github.com/gagliardetto/solana-go"

	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
)

// limits imposed by the ledger runtime
const (
	MaxSeeds      = solana.MaxSeeds
	MaxSeedLength = solana.MaxSeedLength
)

// check the seed limits before hashing so that the caller sees which
// limit was broken
func checkSeeds(seeds [][]byte, limit int) error {
	if len(seeds) > limit {
		return fault.ErrTooManySeeds
	}
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return fault.ErrMaxSeedLengthExceeded
		}
	}
	return nil
}

// the library appends the bump to the seed list, so never hand it a
// slice that shares a backing array with the caller
func copySeeds(seeds [][]byte) [][]byte {
	c := make([][]byte, len(seeds), len(seeds)+1)
	copy(c, seeds)
	return c
}

// CreateProgramAddress - hash the seeds under a program
//
// the result must not be a valid ed25519 point, otherwise a private
// key could exist for it and the program could not own it exclusively
func CreateProgramAddress(seeds [][]byte, program identity.Identity) (identity.Identity, error) {
	err := checkSeeds(seeds, MaxSeeds)
	if nil != err {
		return identity.Identity{}, err
	}

	id, err := solana.CreateProgramAddress(copySeeds(seeds), program)
	if nil != err {
		return identity.Identity{}, fault.ErrPublicKeyOnCurve
	}
	return id, nil
}

// FindProgramAddress - search for the highest bump giving an off
// curve address
//
// the bump is appended as a final single byte seed; the search runs
// from 255 down to 1 in the same order as the runtime
func FindProgramAddress(seeds [][]byte, program identity.Identity) (identity.Identity, uint8, error) {
	err := checkSeeds(seeds, MaxSeeds-1)
	if nil != err {
		return identity.Identity{}, 0, err
	}

	id, bump, err := solana.FindProgramAddress(copySeeds(seeds), program)
	if nil != err {
		return identity.Identity{}, 0, fault.ErrDerivationExhausted
	}
	return id, bump, nil
}
