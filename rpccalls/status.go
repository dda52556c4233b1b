// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
)

// GetTransaction - fetch the executed form of a transaction
//
// found is false while the node does not (yet) know the signature
// at the requested commitment
func (c *Client) GetTransaction(ctx context.Context, signature identity.Signature, commitment Commitment) (*TransactionReply, bool, error) {
	var reply *TransactionReply
	params := []interface{}{
		signature.String(),
		rpc.M{
			"encoding":                       solana.EncodingBase64,
			"commitment":                     commitment.ledger(),
			"maxSupportedTransactionVersion": 0,
		},
	}
	err := c.query.RPCCallForInto(ctx, &reply, "getTransaction", params)
	if nil != err {
		return nil, false, settle("getTransaction", err)
	}
	if nil == reply {
		return nil, false, nil
	}
	if nil == reply.Meta || nil == reply.Transaction {
		return nil, false, fmt.Errorf("%w: getTransaction: meta or transaction missing", fault.ErrUnexpectedRPCResponse)
	}
	return reply, true, nil
}

// SignatureStatuses - processing state of several signatures
//
// entries are nil for signatures the node does not know
func (c *Client) SignatureStatuses(ctx context.Context, signatures []identity.Signature, searchHistory bool) ([]*SignatureStatus, error) {
	reply, err := c.query.GetSignatureStatuses(ctx, searchHistory, signatures...)
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, fmt.Errorf("%w: getSignatureStatuses: value missing", fault.ErrUnexpectedRPCResponse)
	}
	if nil != err {
		return nil, settle("getSignatureStatuses", err)
	}
	if len(reply.Value) != len(signatures) {
		return nil, fmt.Errorf("%w: getSignatureStatuses: %d statuses for %d signatures", fault.ErrUnexpectedRPCResponse, len(reply.Value), len(signatures))
	}
	return reply.Value, nil
}
