// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"context"
	"errors"

	"github.com/bitmark-inc/orecollective/transaction"
)

// LatestBlockhash - a blockhash recent enough to submit against
func (c *Client) LatestBlockhash(ctx context.Context, commitment Commitment) (transaction.Blockhash, uint64, error) {
	reply, err := c.query.GetLatestBlockhash(ctx, commitment.ledger())
	if nil != err {
		return transaction.Blockhash{}, 0, settle("getLatestBlockhash", err)
	}
	if nil == reply || nil == reply.Value || reply.Value.Blockhash.IsZero() {
		return transaction.Blockhash{}, 0, settle("getLatestBlockhash", errors.New("blockhash missing"))
	}
	return reply.Value.Blockhash, reply.Value.LastValidBlockHeight, nil
}
