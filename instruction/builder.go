// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instruction

import (
	"github.com/bitmark-inc/orecollective/chain"
	"github.com/bitmark-inc/orecollective/derivation"
	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
)

// DefaultMaximumSolutions - solutions accepted in one mine request
const DefaultMaximumSolutions = 20

// action arguments in program order, borsh encoded after the
// discriminator
type registerArgs struct {
	Index uint8
}

type mineArgs struct {
	Solutions []Solution
}

type claimArgs struct {
	Amount uint64
	Index  uint8
}

// Builder - assembles collective program requests
//
// building is pure apart from the derivation memo: nothing is signed
// or sent
type Builder struct {
	deriver          *derivation.Deriver
	ids              *chain.Identities
	maximumSolutions int
	bus              uint8
}

// NewBuilder - create a builder; maximumSolutions <= 0 selects the
// default and bus is the ORE bus used by Mine
func NewBuilder(deriver *derivation.Deriver, maximumSolutions int, bus uint8) (*Builder, error) {
	if nil == deriver {
		return nil, fault.ErrNotInitialised
	}
	if maximumSolutions <= 0 {
		maximumSolutions = DefaultMaximumSolutions
	}
	if bus >= chain.BusCount {
		return nil, fault.InvalidError("bus id out of range")
	}
	return &Builder{
		deriver:          deriver,
		ids:              deriver.Identities(),
		maximumSolutions: maximumSolutions,
		bus:              bus,
	}, nil
}

// Register - create a miner account (and its ORE proof) owned by the
// collective program for authority at a miner index
//
// accounts: miner(w) proof(w) authority(s,w) collective treasury(w)
// ORE program, system program
func (b *Builder) Register(authority identity.Identity, index uint8) (*Instruction, error) {
	miner, err := b.deriver.Miner(authority, index)
	if nil != err {
		return nil, err
	}
	proof, err := b.deriver.Proof(miner.Identity)
	if nil != err {
		return nil, err
	}

	d := Discriminator(ActionRegister)
	data, err := pack(d[:], registerArgs{Index: index})
	if nil != err {
		return nil, err
	}

	return &Instruction{
		Program: b.ids.CollectiveProgram,
		Accounts: []AccountMeta{
			writable(miner.Identity),
			writable(proof.Identity),
			signer(authority),
			writable(b.ids.CollectiveTreasury),
			readOnly(b.ids.OreProgram),
			readOnly(b.ids.SystemProgram),
		},
		Data: data,
	}, nil
}

// Mine - submit a batch of solutions on the builder's bus
func (b *Builder) Mine(authority identity.Identity, solutions []Solution) (*Instruction, error) {
	return b.MineOnBus(authority, b.bus, solutions)
}

// MineOnBus - submit a batch of solutions on a specific bus
//
// accounts: authority(s,w) bus(w) ORE treasury, ORE program,
// slot hashes, then miner(w) proof(w) for each solution in batch
// order; the program pairs them positionally with the solutions
func (b *Builder) MineOnBus(authority identity.Identity, bus uint8, solutions []Solution) (*Instruction, error) {
	if 0 == len(solutions) {
		return nil, fault.ErrEmptySolutionBatch
	}
	if len(solutions) > b.maximumSolutions {
		return nil, fault.ErrTooManySolutions
	}

	busAddress, err := b.deriver.Bus(bus)
	if nil != err {
		return nil, err
	}

	accounts := make([]AccountMeta, 0, 5+2*len(solutions))
	accounts = append(accounts,
		signer(authority),
		writable(busAddress.Identity),
		readOnly(b.ids.OreTreasury),
		readOnly(b.ids.OreProgram),
		readOnly(b.ids.SlotHashes),
	)

	for _, s := range solutions {
		miner, err := b.deriver.Miner(authority, s.Index)
		if nil != err {
			return nil, err
		}
		if miner.Bump != s.Bump {
			return nil, fault.ErrBumpMismatch
		}
		proof, err := b.deriver.Proof(miner.Identity)
		if nil != err {
			return nil, err
		}
		accounts = append(accounts, writable(miner.Identity), writable(proof.Identity))
	}

	d := Discriminator(ActionMine)
	data, err := pack(d[:], mineArgs{Solutions: solutions})
	if nil != err {
		return nil, err
	}

	return &Instruction{
		Program:  b.ids.CollectiveProgram,
		Accounts: accounts,
		Data:     data,
	}, nil
}

// Solution - complete a solution with the derived bump of its miner
func (b *Builder) Solution(authority identity.Identity, index uint8, nonce uint64) (Solution, error) {
	miner, err := b.deriver.Miner(authority, index)
	if nil != err {
		return Solution{}, err
	}
	return Solution{
		Index: index,
		Bump:  miner.Bump,
		Nonce: nonce,
	}, nil
}

// Claim - withdraw rewards from a miner's proof into a token account
//
// a zero beneficiary selects the authority's associated token account
//
// accounts: authority(s,w) beneficiary(w) miner(w) proof(w)
// treasury(w) treasury tokens(w) collective ORE treasury(w)
// ORE program, token program
func (b *Builder) Claim(authority identity.Identity, beneficiary identity.Identity, amount uint64, index uint8) (*Instruction, error) {
	if 0 == amount {
		return nil, fault.ErrZeroAmount
	}

	if beneficiary.IsZero() {
		ata, err := b.deriver.AssociatedTokenAccount(authority, b.ids.Mint)
		if nil != err {
			return nil, err
		}
		beneficiary = ata.Identity
	}

	miner, err := b.deriver.Miner(authority, index)
	if nil != err {
		return nil, err
	}
	proof, err := b.deriver.Proof(miner.Identity)
	if nil != err {
		return nil, err
	}

	d := Discriminator(ActionClaim)
	data, err := pack(d[:], claimArgs{Amount: amount, Index: index})
	if nil != err {
		return nil, err
	}

	return &Instruction{
		Program: b.ids.CollectiveProgram,
		Accounts: []AccountMeta{
			signer(authority),
			writable(beneficiary),
			writable(miner.Identity),
			writable(proof.Identity),
			writable(b.ids.OreTreasury),
			writable(b.ids.OreTreasuryTokens),
			writable(b.ids.CollectiveOreTreasury),
			readOnly(b.ids.OreProgram),
			readOnly(b.ids.TokenProgram),
		},
		Data: data,
	}, nil
}

// ComputeUnitLimit - compute budget request for a limit
func (b *Builder) ComputeUnitLimit(units uint32) (*Instruction, error) {
	return SetComputeUnitLimit(b.ids.ComputeBudgetProgram, units)
}

// ComputeUnitPrice - compute budget request for a priority fee
func (b *Builder) ComputeUnitPrice(microLamports uint64) (*Instruction, error) {
	return SetComputeUnitPrice(b.ids.ComputeBudgetProgram, microLamports)
}
