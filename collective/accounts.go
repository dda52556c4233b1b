// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collective

import (
	"context"
	"errors"

	"github.com/bitmark-inc/orecollective/chain"
	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
	"github.com/bitmark-inc/orecollective/instruction"
	"github.com/bitmark-inc/orecollective/proof"
	"github.com/bitmark-inc/orecollective/state"
)

// Proof - the ORE proof of the miner at index, fault.ErrAccountNotFound
// if the miner is not registered
func (c *Collective) Proof(ctx context.Context, authority identity.Identity, index uint8) (*state.Proof, error) {
	miner, err := c.deriver.Miner(authority, index)
	if nil != err {
		return nil, err
	}
	p, err := c.deriver.Proof(miner.Identity)
	if nil != err {
		return nil, err
	}
	data, err := c.oreAccount(ctx, p.Identity)
	if nil != err {
		return nil, err
	}
	return state.UnpackProof(data)
}

// Treasury - the ORE treasury
func (c *Collective) Treasury(ctx context.Context) (*state.Treasury, error) {
	data, err := c.oreAccount(ctx, c.ids.OreTreasury)
	if nil != err {
		return nil, err
	}
	return state.UnpackTreasury(data)
}

// Buses - every ORE bus in id order
func (c *Collective) Buses(ctx context.Context) ([]*state.Bus, error) {
	buses := make([]*state.Bus, 0, chain.BusCount)
	for id := uint8(0); id < chain.BusCount; id += 1 {
		address, err := c.deriver.Bus(id)
		if nil != err {
			return nil, err
		}
		data, err := c.oreAccount(ctx, address.Identity)
		if nil != err {
			return nil, err
		}
		b, err := state.UnpackBus(data)
		if nil != err {
			return nil, err
		}
		buses = append(buses, b)
	}
	return buses, nil
}

// SelectBus - a bus able to pay for a batch of solutions
func (c *Collective) SelectBus(ctx context.Context, solutions int) (uint8, error) {
	t, err := c.Treasury(ctx)
	if nil != err {
		return 0, err
	}
	buses, err := c.Buses(ctx)
	if nil != err {
		return 0, err
	}
	b, err := state.SelectBus(buses, t.RewardRate, solutions)
	if nil != err {
		return 0, err
	}
	c.log.Debugf("bus: %d  rewards: %d  reward rate: %d", b.ID, b.Rewards, t.RewardRate)
	return uint8(b.ID), nil
}

// Solve - search a nonce for the miner at index against the current
// treasury difficulty
//
// an unregistered miner is solved against its initial challenge so
// the result can be sent with RegisterAndMine
func (c *Collective) Solve(ctx context.Context, authority identity.Identity, index uint8, start uint64) (instruction.Solution, proof.Result, error) {
	miner, err := c.deriver.Miner(authority, index)
	if nil != err {
		return instruction.Solution{}, proof.Result{}, err
	}

	t, err := c.Treasury(ctx)
	if nil != err {
		return instruction.Solution{}, proof.Result{}, err
	}

	challenge := proof.Challenge{
		Miner:      miner.Identity,
		Difficulty: t.Difficulty,
	}

	p, err := c.Proof(ctx, authority, index)
	switch {
	case nil == err:
		challenge.Hash = p.Hash
	case errors.Is(err, fault.ErrAccountNotFound):
		challenge.Hash = proof.InitialHash(miner.Identity)
	default:
		return instruction.Solution{}, proof.Result{}, err
	}

	result, err := c.searcher.Search(ctx, challenge, start)
	if nil != err {
		return instruction.Solution{}, proof.Result{}, err
	}
	c.log.Infof("miner: %s  index: %d  nonce: %d  attempts: %d", miner.Identity, index, result.Nonce, result.Attempts)

	return instruction.Solution{
		Index: index,
		Bump:  miner.Bump,
		Nonce: result.Nonce,
	}, result, nil
}

// read an account that must belong to the ORE program
func (c *Collective) oreAccount(ctx context.Context, address identity.Identity) ([]byte, error) {
	a, err := c.node.AccountInfo(ctx, address, c.commitment)
	if nil != err {
		return nil, err
	}
	if a.Owner != c.ids.OreProgram {
		c.log.Warnf("account: %s  owner: %s  expected: %s", address, a.Owner, c.ids.OreProgram)
		return nil, fault.ErrUnexpectedOwner
	}
	return a.Data, nil
}
