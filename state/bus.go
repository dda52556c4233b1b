// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"encoding/binary"

	"github.com/bitmark-inc/orecollective/fault"
)

// offsets of the fields
const (
	busIDOffset      = HeaderSize
	busRewardsOffset = busIDOffset + u64Size

	BusSize = busRewardsOffset + u64Size
)

// Bus - a reward pool that mine transactions draw from
type Bus struct {
	ID      uint64 `json:"id"`
	Rewards uint64 `json:"rewards"`
}

// UnpackBus - decode bus account data
func UnpackBus(data []byte) (*Bus, error) {
	err := header(data, KindBus, BusSize)
	if nil != err {
		return nil, err
	}
	return &Bus{
		ID:      binary.LittleEndian.Uint64(data[busIDOffset:]),
		Rewards: binary.LittleEndian.Uint64(data[busRewardsOffset:]),
	}, nil
}

// Pack - encode as account data
func (b *Bus) Pack() []byte {
	buffer := newRecord(KindBus, BusSize)
	binary.LittleEndian.PutUint64(buffer[busIDOffset:], b.ID)
	binary.LittleEndian.PutUint64(buffer[busRewardsOffset:], b.Rewards)
	return buffer
}

// SelectBus - the bus with the most rewards, provided it can pay four
// times the reward of a full batch of solutions
func SelectBus(buses []*Bus, rewardRate uint64, solutions int) (*Bus, error) {
	if solutions <= 0 {
		solutions = 1
	}
	needed := saturatingMultiply(rewardRate, uint64(solutions)*4)

	var best *Bus
	for _, b := range buses {
		if nil == b || b.Rewards <= needed {
			continue
		}
		if nil == best || b.Rewards > best.Rewards {
			best = b
		}
	}
	if nil == best {
		return nil, fault.ErrNoBusAvailable
	}
	return best, nil
}

func saturatingMultiply(a uint64, b uint64) uint64 {
	if 0 == a || 0 == b {
		return 0
	}
	c := a * b
	if c/b != a {
		return ^uint64(0)
	}
	return c
}
