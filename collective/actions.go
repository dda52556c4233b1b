// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collective

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
	"github.com/bitmark-inc/orecollective/instruction"
	"github.com/bitmark-inc/orecollective/journal"
	"github.com/bitmark-inc/orecollective/submission"
)

// Attempt - one transmitted request
type Attempt struct {
	ID         string                 `json:"id"`
	Action     string                 `json:"action"`
	Submission *submission.Submission `json:"submission"`
	Keys       []journal.Key          `json:"-"`
}

// Register - create the miner at index for authority
func (c *Collective) Register(ctx context.Context, authority identity.Signer, index uint8) (*Attempt, error) {
	register, err := c.builder.Register(authority.Public(), index)
	if nil != err {
		return nil, err
	}
	miner, err := c.deriver.Miner(authority.Public(), index)
	if nil != err {
		return nil, err
	}

	keys := []journal.Key{journal.RegisterKey(miner.Identity)}
	return c.submit(ctx, instruction.ActionRegister, authority, keys, register)
}

// Mine - submit a batch of solutions on bus
func (c *Collective) Mine(ctx context.Context, authority identity.Signer, bus uint8, solutions []instruction.Solution) (*Attempt, error) {
	mine, err := c.builder.MineOnBus(authority.Public(), bus, solutions)
	if nil != err {
		return nil, err
	}
	keys, err := c.mineKeys(authority.Public(), solutions)
	if nil != err {
		return nil, err
	}
	return c.submit(ctx, instruction.ActionMine, authority, keys, mine)
}

// RegisterAndMine - register a miner and submit its first solution in
// one transaction
func (c *Collective) RegisterAndMine(ctx context.Context, authority identity.Signer, bus uint8, index uint8, nonce uint64) (*Attempt, error) {
	register, err := c.builder.Register(authority.Public(), index)
	if nil != err {
		return nil, err
	}
	s, err := c.builder.Solution(authority.Public(), index, nonce)
	if nil != err {
		return nil, err
	}
	solutions := []instruction.Solution{s}
	mine, err := c.builder.MineOnBus(authority.Public(), bus, solutions)
	if nil != err {
		return nil, err
	}

	miner, err := c.deriver.Miner(authority.Public(), index)
	if nil != err {
		return nil, err
	}
	keys, err := c.mineKeys(authority.Public(), solutions)
	if nil != err {
		return nil, err
	}
	keys = append([]journal.Key{journal.RegisterKey(miner.Identity)}, keys...)

	return c.submit(ctx, instruction.ActionRegister+"+"+instruction.ActionMine, authority, keys, register, mine)
}

// Claim - move amount of a miner's rewards to beneficiary; a zero
// beneficiary selects the authority's token account
func (c *Collective) Claim(ctx context.Context, authority identity.Signer, beneficiary identity.Identity, amount uint64, index uint8) (*Attempt, error) {
	claim, err := c.builder.Claim(authority.Public(), beneficiary, amount, index)
	if nil != err {
		return nil, err
	}
	return c.submit(ctx, instruction.ActionClaim, authority, nil, claim)
}

// MineAll - submit several batches concurrently, one transaction each
//
// batches are independent: a batch that cannot be built or sent does
// not stop the others. attempts are returned in batch order; a failed
// batch leaves a nil entry and the first error is returned
func (c *Collective) MineAll(ctx context.Context, authority identity.Signer, bus uint8, batches [][]instruction.Solution) ([]*Attempt, error) {
	attempts := make([]*Attempt, len(batches))

	var g errgroup.Group
	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			a, err := c.Mine(ctx, authority, bus, batch)
			if nil != a {
				attempts[i] = a
			}
			if nil != err {
				c.log.Warnf("batch: %d  solutions: %d  error: %s", i, len(batch), err)
				return err
			}
			return nil
		})
	}
	err := g.Wait()
	return attempts, err
}

func (c *Collective) mineKeys(authority identity.Identity, solutions []instruction.Solution) ([]journal.Key, error) {
	keys := make([]journal.Key, 0, len(solutions))
	for _, s := range solutions {
		miner, err := c.deriver.Miner(authority, s.Index)
		if nil != err {
			return nil, err
		}
		keys = append(keys, journal.MineKey(miner.Identity, s.Nonce))
	}
	return keys, nil
}

// refuse already succeeded requests, send once, then record the
// signature against every key
//
// once sent the attempt is always returned, even when the journal
// could not be updated, so the caller still holds the signature
func (c *Collective) submit(ctx context.Context, action string, authority identity.Signer, keys []journal.Key, envelopes ...*instruction.Instruction) (*Attempt, error) {
	if nil != c.journal {
		for _, k := range keys {
			err := c.journal.Check(k)
			if nil != err {
				c.log.Warnf("%s: key: %x  refused: %s", action, []byte(k), err)
				return nil, err
			}
		}
	}

	id := uuid.New().String()
	s, err := c.submitter.Submit(ctx, authority, envelopes...)
	if nil != err {
		c.log.Errorf("%s: attempt: %s  error: %s", action, id, err)
		return nil, err
	}

	attempt := &Attempt{
		ID:         id,
		Action:     action,
		Submission: s,
		Keys:       keys,
	}

	if nil != c.journal {
		for _, k := range keys {
			err := c.journal.Record(k, action, id, s.Signature)
			if nil != err {
				c.log.Errorf("%s: attempt: %s  signature: %s  journal error: %s", action, id, s.Signature, err)
				return attempt, fmt.Errorf("%w: %s: %v", fault.ErrJournalNotUpdated, s.Signature, err)
			}
		}
	}

	c.log.Infof("%s: attempt: %s  signature: %s", action, id, s.Signature)
	return attempt, nil
}
