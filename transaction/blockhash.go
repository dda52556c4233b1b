// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/orecollective/fault"
)

// Blockhash - recent block hash that limits the lifetime of a transaction
type Blockhash = solana.Hash

// BlockhashFromBase58 - decode the textual form returned by a node
func BlockhashFromBase58(s string) (Blockhash, error) {
	b, err := base58.Decode(s)
	if nil != err {
		return Blockhash{}, fault.ErrInvalidBase58
	}
	if len(Blockhash{}) != len(b) {
		return Blockhash{}, fault.ErrInvalidIdentityLength
	}
	return solana.HashFromBytes(b), nil
}
