// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package proof - search for nonces that satisfy the treasury
// difficulty for a miner
package proof

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/orecollective/identity"
	"github.com/bitmark-inc/orecollective/state"
)

// NonceSize - bytes of a nonce in the digest input
const NonceSize = 8

// Challenge - what a nonce is searched against
type Challenge struct {
	Hash       state.Hash        `json:"hash"`
	Miner      identity.Identity `json:"miner"`
	Difficulty state.Hash        `json:"difficulty"`
}

// Result - a solving nonce and its digest
type Result struct {
	Nonce    uint64     `json:"nonce"`
	Hash     state.Hash `json:"hash"`
	Attempts uint64     `json:"attempts"`
}

// InitialHash - challenge of a miner whose proof has never been
// mined: keccak256 of the miner address
func InitialHash(miner identity.Identity) state.Hash {
	h := sha3.NewLegacyKeccak256()
	h.Write(miner[:])
	result := state.Hash{}
	copy(result[:], h.Sum(nil))
	return result
}

// Digest - keccak256(hash ‖ miner ‖ nonce little endian)
func Digest(hash state.Hash, miner identity.Identity, nonce uint64) state.Hash {
	buffer := make([]byte, 0, state.HashSize+identity.Size+NonceSize)
	buffer = append(buffer, hash[:]...)
	buffer = append(buffer, miner[:]...)
	buffer = binary.LittleEndian.AppendUint64(buffer, nonce)

	h := sha3.NewLegacyKeccak256()
	h.Write(buffer)
	result := state.Hash{}
	copy(result[:], h.Sum(nil))
	return result
}

// Solves - true if nonce meets the challenge difficulty
func (c Challenge) Solves(nonce uint64) bool {
	return Digest(c.Hash, c.Miner, nonce).LessOrEqual(c.Difficulty)
}
