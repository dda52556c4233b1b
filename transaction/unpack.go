// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/bitmark-inc/orecollective/fault"
)

var (
	errTruncated = fault.ProcessError("transaction is truncated")
	errTrailing  = fault.ProcessError("transaction has trailing bytes")
)

// Unpack - decode wire bytes into a legacy transaction
func Unpack(buffer []byte) (*Transaction, error) {
	decoder := bin.NewBinDecoder(buffer)

	tx := &solana.Transaction{}
	err := tx.UnmarshalWithDecoder(decoder)
	if nil != err {
		return nil, fmt.Errorf("%w: %v", errTruncated, err)
	}
	if tx.Message.IsVersioned() {
		return nil, fault.ErrUnsupportedTransaction
	}
	if 0 != decoder.Remaining() {
		return nil, errTrailing
	}
	if int(tx.Message.Header.NumRequiredSignatures) != len(tx.Signatures) {
		return nil, fault.ErrMissingSigner
	}
	return &Transaction{Transaction: tx}, nil
}
