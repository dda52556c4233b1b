// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/orecollective/fault"
)

// SignatureSize - number of bytes in an ed25519 signature
const SignatureSize = solana.SignatureLength

// Signature - the first signature of a transaction is also its
// identifier on the ledger
type Signature = solana.Signature

// SignatureFromBase58 - decode a textual signature
func SignatureFromBase58(s string) (Signature, error) {
	b, err := base58.Decode(s)
	if nil != err {
		return Signature{}, fault.ErrInvalidBase58
	}
	if SignatureSize != len(b) {
		return Signature{}, fault.ErrInvalidSignatureLength
	}
	return solana.SignatureFromBytes(b), nil
}
