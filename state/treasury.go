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
	treasuryBumpOffset                = HeaderSize
	treasuryAdminOffset               = treasuryBumpOffset + u64Size
	treasuryDifficultyOffset          = treasuryAdminOffset + identity.Size
	treasuryLastResetAtOffset         = treasuryDifficultyOffset + HashSize
	treasuryRewardRateOffset          = treasuryLastResetAtOffset + u64Size
	treasuryTotalClaimedRewardsOffset = treasuryRewardRateOffset + u64Size

	TreasurySize = treasuryTotalClaimedRewardsOffset + u64Size
)

// Treasury - global mining parameters
type Treasury struct {
	Bump                uint64            `json:"bump"`
	Admin               identity.Identity `json:"admin"`
	Difficulty          Hash              `json:"difficulty"`
	LastResetAt         int64             `json:"lastResetAt"`
	RewardRate          uint64            `json:"rewardRate"`
	TotalClaimedRewards uint64            `json:"totalClaimedRewards"`
}

// UnpackTreasury - decode treasury account data
func UnpackTreasury(data []byte) (*Treasury, error) {
	err := header(data, KindTreasury, TreasurySize)
	if nil != err {
		return nil, err
	}
	return &Treasury{
		Bump:                binary.LittleEndian.Uint64(data[treasuryBumpOffset:]),
		Admin:               getIdentity(data[treasuryAdminOffset:]),
		Difficulty:          getHash(data[treasuryDifficultyOffset:]),
		LastResetAt:         int64(binary.LittleEndian.Uint64(data[treasuryLastResetAtOffset:])),
		RewardRate:          binary.LittleEndian.Uint64(data[treasuryRewardRateOffset:]),
		TotalClaimedRewards: binary.LittleEndian.Uint64(data[treasuryTotalClaimedRewardsOffset:]),
	}, nil
}

// Pack - encode as account data
func (t *Treasury) Pack() []byte {
	buffer := newRecord(KindTreasury, TreasurySize)
	binary.LittleEndian.PutUint64(buffer[treasuryBumpOffset:], t.Bump)
	copy(buffer[treasuryAdminOffset:], t.Admin[:])
	copy(buffer[treasuryDifficultyOffset:], t.Difficulty[:])
	binary.LittleEndian.PutUint64(buffer[treasuryLastResetAtOffset:], uint64(t.LastResetAt))
	binary.LittleEndian.PutUint64(buffer[treasuryRewardRateOffset:], t.RewardRate)
	binary.LittleEndian.PutUint64(buffer[treasuryTotalClaimedRewardsOffset:], t.TotalClaimedRewards)
	return buffer
}
