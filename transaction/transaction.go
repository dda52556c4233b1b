// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
	"github.com/bitmark-inc/orecollective/instruction"
)

// MaximumSize - largest serialized transaction a node accepts
// (IPv6 minimum MTU less headers)
const MaximumSize = 1232

// account indices are a single byte
const maximumAccounts = 256

// Transaction - a compiled message with its signatures
type Transaction struct {
	*solana.Transaction
}

// New - compile the instructions into an unsigned transaction
//
// each distinct account appears once with the union of its flags
func New(feePayer identity.Identity, blockhash Blockhash, instructions []*instruction.Instruction) (*Transaction, error) {
	if feePayer.IsZero() {
		return nil, fault.ErrMissingFeePayer
	}
	if blockhash.IsZero() {
		return nil, fault.ErrMissingBlockhash
	}
	if 0 == len(instructions) {
		return nil, fault.ErrNoInstructions
	}

	distinct := map[identity.Identity]struct{}{feePayer: {}}
	compiled := make([]solana.Instruction, len(instructions))
	for i, ix := range instructions {
		for _, a := range ix.Accounts {
			distinct[a.Identity] = struct{}{}
		}
		distinct[ix.Program] = struct{}{}
		compiled[i] = ix.Ledger()
	}
	if len(distinct) > maximumAccounts {
		return nil, fault.ErrTooManyAccounts
	}

	tx, err := solana.NewTransaction(compiled, blockhash, solana.TransactionPayer(feePayer))
	if nil != err {
		return nil, fmt.Errorf("%w: %v", fault.ErrTransactionEncoding, err)
	}
	return &Transaction{Transaction: tx}, nil
}

// Sign - add a signature for every required signer
//
// all required signers must be supplied; extra signers are ignored
func (tx *Transaction) Sign(signers ...identity.Signer) error {
	available := make(map[identity.Identity]solana.PrivateKey, len(signers))
	for _, s := range signers {
		available[s.Public()] = s.PrivateKey()
	}

	for _, id := range tx.Message.Signers() {
		if _, ok := available[id]; !ok {
			return fault.ErrMissingSigner
		}
	}

	_, err := tx.Transaction.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		k, ok := available[key]
		if !ok {
			return nil
		}
		return &k
	})
	if nil != err {
		return fmt.Errorf("%w: %v", fault.ErrMissingSigner, err)
	}
	return nil
}

// ID - the first signature, which names the transaction
func (tx *Transaction) ID() identity.Signature {
	if 0 == len(tx.Signatures) {
		return identity.Signature{}
	}
	return tx.Signatures[0]
}

// Pack - wire bytes of a fully signed transaction
func (tx *Transaction) Pack() ([]byte, error) {
	if len(tx.Signatures) != int(tx.Message.Header.NumRequiredSignatures) {
		return nil, fault.ErrMissingSigner
	}
	for _, sig := range tx.Signatures {
		if sig.IsZero() {
			return nil, fault.ErrMissingSigner
		}
	}

	buffer, err := tx.MarshalBinary()
	if nil != err {
		return nil, fmt.Errorf("%w: %v", fault.ErrTransactionEncoding, err)
	}
	if len(buffer) > MaximumSize {
		return nil, fault.ErrTransactionTooLarge
	}
	return buffer, nil
}

// Verify - check every signature against its signer
func (tx *Transaction) Verify() bool {
	return nil == tx.VerifySignatures()
}
