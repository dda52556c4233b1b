// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
	"github.com/bitmark-inc/orecollective/transaction"
)

// SendTransaction - transmit a signed transaction once
//
// the node's reply only means the transaction was accepted for
// forwarding; it says nothing about execution
func (c *Client) SendTransaction(ctx context.Context, tx *transaction.Transaction, options SendOptions) (identity.Signature, error) {
	if nil == tx || nil == tx.Transaction {
		return identity.Signature{}, fault.ErrNoInstructions
	}

	_, err := tx.Pack()
	if nil != err {
		return identity.Signature{}, err
	}

	options.Encoding = solana.EncodingBase64

	sig, err := c.send.SendTransactionWithOpts(ctx, tx.Transaction, options)
	if nil != err {
		return identity.Signature{}, settle("sendTransaction", err)
	}
	if sig.IsZero() {
		return identity.Signature{}, fmt.Errorf("%w: sendTransaction: empty signature", fault.ErrUnexpectedRPCResponse)
	}

	c.log.Infof("sent transaction: %s", sig)
	return sig, nil
}
