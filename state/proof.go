// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"encoding/binary"

	"github.com/bitmark-inc/orecollective/identity"
)

// offsets of the fields
const (
	proofAuthorityOffset        = HeaderSize
	proofClaimableRewardsOffset = proofAuthorityOffset + identity.Size
	proofHashOffset             = proofClaimableRewardsOffset + u64Size
	proofTotalHashesOffset      = proofHashOffset + HashSize
	proofTotalRewardsOffset     = proofTotalHashesOffset + u64Size

	ProofSize = proofTotalRewardsOffset + u64Size
)

// Proof - mining progress of one miner
//
// Hash is the challenge the next nonce must be searched against
type Proof struct {
	Authority        identity.Identity `json:"authority"`
	ClaimableRewards uint64            `json:"claimableRewards"`
	Hash             Hash              `json:"hash"`
	TotalHashes      uint64            `json:"totalHashes"`
	TotalRewards     uint64            `json:"totalRewards"`
}

// UnpackProof - decode proof account data
func UnpackProof(data []byte) (*Proof, error) {
	err := header(data, KindProof, ProofSize)
	if nil != err {
		return nil, err
	}
	return &Proof{
		Authority:        getIdentity(data[proofAuthorityOffset:]),
		ClaimableRewards: binary.LittleEndian.Uint64(data[proofClaimableRewardsOffset:]),
		Hash:             getHash(data[proofHashOffset:]),
		TotalHashes:      binary.LittleEndian.Uint64(data[proofTotalHashesOffset:]),
		TotalRewards:     binary.LittleEndian.Uint64(data[proofTotalRewardsOffset:]),
	}, nil
}

// Pack - encode as account data
func (p *Proof) Pack() []byte {
	buffer := newRecord(KindProof, ProofSize)
	copy(buffer[proofAuthorityOffset:], p.Authority[:])
	binary.LittleEndian.PutUint64(buffer[proofClaimableRewardsOffset:], p.ClaimableRewards)
	copy(buffer[proofHashOffset:], p.Hash[:])
	binary.LittleEndian.PutUint64(buffer[proofTotalHashesOffset:], p.TotalHashes)
	binary.LittleEndian.PutUint64(buffer[proofTotalRewardsOffset:], p.TotalRewards)
	return buffer
}
