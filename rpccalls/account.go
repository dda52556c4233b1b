// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
)

// Account - the state of a ledger account
type Account struct {
	Lamports   uint64            `json:"lamports"`
	Owner      identity.Identity `json:"owner"`
	Data       []byte            `json:"data"`
	Executable bool              `json:"executable"`
}

// AccountInfo - read an account; a missing account is reported as
// fault.ErrAccountNotFound
func (c *Client) AccountInfo(ctx context.Context, address identity.Identity, commitment Commitment) (*Account, error) {
	reply, err := c.query.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: commitment.ledger(),
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, fault.ErrAccountNotFound
	}
	if nil != err {
		return nil, settle("getAccountInfo", err)
	}
	if nil == reply.Value.Data {
		return nil, settle("getAccountInfo", errors.New("account data missing"))
	}

	return &Account{
		Lamports:   reply.Value.Lamports,
		Owner:      reply.Value.Owner,
		Data:       reply.Value.Data.GetBinary(),
		Executable: reply.Value.Executable,
	}, nil
}

// Balance - lamports held by an account
func (c *Client) Balance(ctx context.Context, address identity.Identity, commitment Commitment) (uint64, error) {
	reply, err := c.query.GetBalance(ctx, address, commitment.ledger())
	if nil != err {
		return 0, settle("getBalance", err)
	}
	if nil == reply {
		return 0, settle("getBalance", errors.New("null result"))
	}
	return reply.Value, nil
}
