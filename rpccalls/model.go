// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/bitmark-inc/orecollective/fault"
)

// Commitment - how final the node's view of the ledger must be
type Commitment string

// commitment levels
const (
	Processed Commitment = "processed"
	Confirmed Commitment = "confirmed"
	Finalized Commitment = "finalized"
)

// Valid - check a commitment level
func (c Commitment) Valid() bool {
	switch c {
	case Processed, Confirmed, Finalized:
		return true
	default:
		return false
	}
}

// ParseCommitment - validate a configured commitment level
func ParseCommitment(s string) (Commitment, error) {
	c := Commitment(s)
	if !c.Valid() {
		return "", fault.ErrInvalidCommitment
	}
	return c, nil
}

func (c Commitment) ledger() rpc.CommitmentType {
	return rpc.CommitmentType(c)
}

// SendOptions - parameters of sendTransaction
type SendOptions = rpc.TransactionOpts

// SignatureStatus - one entry of getSignatureStatuses
type SignatureStatus = rpc.SignatureStatusesResult

// InnerInstruction - a compiled instruction invoked by a program
//
// the SDK's compiled instruction carries no stack height, which the
// receipt needs to rebuild the call tree
type InnerInstruction struct {
	ProgramIDIndex uint16        `json:"programIdIndex"`
	Accounts       []uint16      `json:"accounts"`
	Data           solana.Base58 `json:"data"`
	StackHeight    *uint16       `json:"stackHeight"`
}

// InnerInstructions - instructions invoked by one top level instruction
type InnerInstructions struct {
	Index        uint16             `json:"index"`
	Instructions []InnerInstruction `json:"instructions"`
}

// TransactionMeta - execution details of a transaction
type TransactionMeta struct {
	Err                  json.RawMessage     `json:"err"`
	Fee                  uint64              `json:"fee"`
	PreBalances          []uint64            `json:"preBalances"`
	PostBalances         []uint64            `json:"postBalances"`
	InnerInstructions    []InnerInstructions `json:"innerInstructions"`
	LogMessages          []string            `json:"logMessages"`
	LoadedAddresses      rpc.LoadedAddresses `json:"loadedAddresses"`
	ComputeUnitsConsumed *uint64             `json:"computeUnitsConsumed"`
}

// TransactionReply - result of getTransaction in base64 encoding
type TransactionReply struct {
	Slot        uint64                          `json:"slot"`
	BlockTime   *solana.UnixTimeSeconds         `json:"blockTime"`
	Transaction *rpc.TransactionResultEnvelope `json:"transaction"`
	Meta        *TransactionMeta                `json:"meta"`
}
