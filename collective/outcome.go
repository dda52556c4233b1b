// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collective

import (
	"context"

	"github.com/bitmark-inc/orecollective/journal"
	"github.com/bitmark-inc/orecollective/receipt"
)

// Outcome - wait for the receipt of an attempt using the configured
// policy and record the result in the journal
//
// a receipt that never appears leaves the journal entries pending
func (c *Collective) Outcome(ctx context.Context, a *Attempt) (*receipt.Receipt, error) {
	return c.OutcomeWith(ctx, a, c.wait)
}

// OutcomeWith - Outcome with an explicit wait policy
func (c *Collective) OutcomeWith(ctx context.Context, a *Attempt, policy receipt.WaitPolicy) (*receipt.Receipt, error) {
	r, err := c.interpreter.Await(ctx, a.Submission.Signature, c.commitment, policy)
	if nil != err {
		c.log.Warnf("outcome: %s  attempt: %s  error: %s", a.Action, a.ID, err)
		return nil, err
	}

	state := journal.Succeeded
	if !r.Success {
		state = journal.Failed
		c.log.Warnf("outcome: %s  attempt: %s  failure: %s", a.Action, a.ID, r.Failure)
	}

	if nil != c.journal {
		for _, k := range a.Keys {
			err := c.journal.Mark(k, state)
			if nil != err {
				c.log.Errorf("outcome: %s  attempt: %s  journal error: %s", a.Action, a.ID, err)
				return r, err
			}
		}
	}
	return r, nil
}
