// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package derivation

import (
	"strings"

	"github.com/bitmark-inc/logger"
	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/orecollective/chain"
	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
)

// seed tags used by the programs
const (
	minerTag    = "x"
	proofTag    = "proof"
	busTag      = "bus"
	treasuryTag = "treasury"
)

// Address - a derived address and the bump that produced it
type Address struct {
	Identity identity.Identity `json:"address"`
	Bump     uint8             `json:"bump"`
}

// Deriver - computes the addresses used by the collective
//
// results are memoised in process memory only; derivation is pure so
// a memo entry never becomes stale
type Deriver struct {
	ids  *chain.Identities
	memo *cache.Cache
	log  *logger.L
}

// New - create a deriver for a set of chain identities
func New(ids *chain.Identities, log *logger.L) (*Deriver, error) {
	if nil == ids {
		return nil, fault.ErrZeroIdentity
	}
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	return &Deriver{
		ids:  ids,
		memo: cache.New(cache.NoExpiration, 0),
		log:  log,
	}, nil
}

// Identities - the chain identities in use
func (d *Deriver) Identities() *chain.Identities {
	return d.ids
}

// Miner - the collective owned miner account for an authority and
// miner index
func (d *Deriver) Miner(authority identity.Identity, index uint8) (Address, error) {
	return d.find([][]byte{[]byte(minerTag), authority[:], {index}}, d.ids.CollectiveProgram)
}

// Proof - the ORE proof account belonging to a miner account
func (d *Deriver) Proof(miner identity.Identity) (Address, error) {
	return d.find([][]byte{[]byte(proofTag), miner[:]}, d.ids.OreProgram)
}

// Bus - one of the ORE reward buses
func (d *Deriver) Bus(id uint8) (Address, error) {
	if id >= chain.BusCount {
		return Address{}, fault.InvalidError("bus id out of range")
	}
	return d.find([][]byte{[]byte(busTag), {id}}, d.ids.OreProgram)
}

// Treasury - the ORE treasury account
func (d *Deriver) Treasury() (Address, error) {
	return d.find([][]byte{[]byte(treasuryTag)}, d.ids.OreProgram)
}

// AssociatedTokenAccount - the canonical token account of an owner
// for a mint
func (d *Deriver) AssociatedTokenAccount(owner identity.Identity, mint identity.Identity) (Address, error) {
	return d.find([][]byte{owner[:], d.ids.TokenProgram[:], mint[:]}, d.ids.AssociatedTokenProgram)
}

func (d *Deriver) find(seeds [][]byte, program identity.Identity) (Address, error) {
	key := memoKey(seeds, program)
	if v, found := d.memo.Get(key); found {
		return v.(Address), nil
	}

	id, bump, err := FindProgramAddress(seeds, program)
	if nil != err {
		d.log.Errorf("derivation under program: %s error: %s", program, err)
		return Address{}, err
	}

	a := Address{
		Identity: id,
		Bump:     bump,
	}
	d.memo.Set(key, a, cache.NoExpiration)
	d.log.Debugf("derived: %s  bump: %d  program: %s", id, bump, program)
	return a, nil
}

// length prefix each seed so that different splits cannot collide
func memoKey(seeds [][]byte, program identity.Identity) string {
	var b strings.Builder
	b.Write(program[:])
	for _, seed := range seeds {
		b.WriteByte(byte(len(seed)))
		b.Write(seed)
	}
	return b.String()
}
