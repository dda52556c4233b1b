// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instruction

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
)

// AccountMeta - one entry of an instruction's account list
type AccountMeta struct {
	Identity identity.Identity `json:"pubkey"`
	Signer   bool              `json:"isSigner"`
	Writable bool              `json:"isWritable"`
}

// Instruction - a request envelope: the target program, the ordered
// account list and the encoded action data
//
// the account order is part of the contract with the program; it
// must never be sorted or de-duplicated here
type Instruction struct {
	Program  identity.Identity `json:"programId"`
	Accounts []AccountMeta     `json:"accounts"`
	Data     Packed            `json:"data"`
}

// Packed - encoded action data
type Packed []byte

// Solution - a found nonce for one miner
type Solution struct {
	Index uint8  `json:"id"`
	Bump  uint8  `json:"bump"`
	Nonce uint64 `json:"nonce"`
}

// Ledger - the instruction in the form the transaction compiler takes
//
// the compiler merges duplicate accounts in place, so every call
// returns fresh account metas
func (ix *Instruction) Ledger() solana.Instruction {
	accounts := make(solana.AccountMetaSlice, len(ix.Accounts))
	for i, a := range ix.Accounts {
		accounts[i] = &solana.AccountMeta{
			PublicKey:  a.Identity,
			IsSigner:   a.Signer,
			IsWritable: a.Writable,
		}
	}
	return solana.NewInstruction(ix.Program, accounts, append([]byte{}, ix.Data...))
}

func writable(id identity.Identity) AccountMeta {
	return AccountMeta{Identity: id, Writable: true}
}

func readOnly(id identity.Identity) AccountMeta {
	return AccountMeta{Identity: id}
}

func signer(id identity.Identity) AccountMeta {
	return AccountMeta{Identity: id, Signer: true, Writable: true}
}

// pack - the tag bytes followed by the borsh encoding of args
func pack(tag []byte, args interface{}) (Packed, error) {
	buffer := bytes.NewBuffer(append(make([]byte, 0, 64), tag...))
	err := bin.NewBorshEncoder(buffer).Encode(args)
	if nil != err {
		return nil, fmt.Errorf("%w: %v", fault.ErrInstructionEncoding, err)
	}
	return buffer.Bytes(), nil
}
