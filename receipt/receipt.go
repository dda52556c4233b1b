// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package receipt - observe the outcome of a submitted transaction
//
// a receipt that is not yet available is reported as a NotFoundError
// and is never confused with a receipt whose execution failed
package receipt

//go:generate mockgen -destination=../mocks/fetcher.go -package=mocks github.com/bitmark-inc/orecollective/receipt Fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
	"github.com/bitmark-inc/orecollective/rpccalls"
)

// Fetcher - the part of a ledger node used to read outcomes
type Fetcher interface {
	GetTransaction(ctx context.Context, signature identity.Signature, commitment rpccalls.Commitment) (*rpccalls.TransactionReply, bool, error)
	SignatureStatuses(ctx context.Context, signatures []identity.Signature, searchHistory bool) ([]*rpccalls.SignatureStatus, error)
}

// Balance - lamports held by one account before and after execution
type Balance struct {
	Account identity.Identity `json:"account"`
	Pre     uint64            `json:"pre"`
	Post    uint64            `json:"post"`
}

// Delta - signed change of the balance
func (b Balance) Delta() int64 {
	return int64(b.Post) - int64(b.Pre)
}

// InnerInstruction - one instruction invoked from a program
//
// a receipt holds these as one flat list covering every top level
// instruction: Parent is the index of the top level instruction whose
// execution invoked it, and StackHeight is the invocation depth (1 is
// the top level, 2 a call made by a top level program and so on) or 0
// when the node does not report it
type InnerInstruction struct {
	Parent      int                 `json:"parent"`
	Program     identity.Identity   `json:"program"`
	Accounts    []identity.Identity `json:"accounts"`
	Data        []byte              `json:"data"`
	StackHeight int                 `json:"stackHeight,omitempty"`
}

// Receipt - decoded execution outcome
type Receipt struct {
	Signature         identity.Signature `json:"signature"`
	Slot              uint64             `json:"slot"`
	BlockTime         int64              `json:"blockTime,omitempty"`
	Success           bool               `json:"success"`
	Failure           string             `json:"failure,omitempty"`
	Fee               uint64             `json:"fee"`
	ComputeUnits      uint64             `json:"computeUnits,omitempty"`
	Logs              []string           `json:"logs"`
	Balances          []Balance          `json:"balances"`
	InnerInstructions []InnerInstruction `json:"innerInstructions"`
}

// Check - nil on success, otherwise an ExecutionError carrying the
// remote failure value
func (r *Receipt) Check() error {
	if r.Success {
		return nil
	}
	return &fault.ExecutionError{
		Signature: r.Signature.String(),
		Remote:    r.Failure,
	}
}

// LogsContaining - log lines that include fragment
func (r *Receipt) LogsContaining(fragment string) []string {
	lines := make([]string, 0, 4)
	for _, l := range r.Logs {
		if strings.Contains(l, fragment) {
			lines = append(lines, l)
		}
	}
	return lines
}

// Invoked - true if program ran as an inner instruction
func (r *Receipt) Invoked(program identity.Identity) bool {
	for _, i := range r.InnerInstructions {
		if i.Program == program {
			return true
		}
	}
	return false
}

// Interpreter - fetches and decodes receipts
type Interpreter struct {
	fetcher    Fetcher
	commitment rpccalls.Commitment
	log        *logger.L
}

// New - create an interpreter; commitment is the default level used
// when Fetch is given an empty one
func New(fetcher Fetcher, commitment rpccalls.Commitment, log *logger.L) (*Interpreter, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	if nil == fetcher {
		return nil, fault.ErrNotInitialised
	}
	if "" == commitment {
		commitment = rpccalls.Confirmed
	}
	if !commitment.Valid() || rpccalls.Processed == commitment {
		return nil, fault.ErrInvalidCommitment
	}
	return &Interpreter{
		fetcher:    fetcher,
		commitment: commitment,
		log:        log,
	}, nil
}

// Fetch - the receipt of a signature at a commitment level
//
// returns ErrReceiptNotAvailable while the node does not know the
// signature; poll again or use Await
func (i *Interpreter) Fetch(ctx context.Context, signature identity.Signature, commitment rpccalls.Commitment) (*Receipt, error) {
	if "" == commitment {
		commitment = i.commitment
	}
	reply, found, err := i.fetcher.GetTransaction(ctx, signature, commitment)
	if nil != err {
		i.log.Warnf("fetch: %s  error: %s", signature, err)
		return nil, err
	}
	if !found {
		i.log.Debugf("fetch: %s  not yet available", signature)
		return nil, fault.ErrReceiptNotAvailable
	}

	r, err := decode(signature, reply)
	if nil != err {
		i.log.Errorf("fetch: %s  decode error: %s", signature, err)
		return nil, err
	}
	i.log.Infof("fetch: %s  slot: %d  success: %t  fee: %d", signature, r.Slot, r.Success, r.Fee)
	return r, nil
}

func decode(signature identity.Signature, reply *rpccalls.TransactionReply) (*Receipt, error) {
	meta := reply.Meta
	if nil == meta || nil == reply.Transaction {
		return nil, fault.ErrUnexpectedRPCResponse
	}

	keys, err := accountKeys(reply)
	if nil != err {
		return nil, err
	}

	r := &Receipt{
		Signature:         signature,
		Slot:              reply.Slot,
		Success:           succeeded(meta.Err),
		Fee:               meta.Fee,
		Logs:              meta.LogMessages,
		Balances:          make([]Balance, 0, len(meta.PreBalances)),
		InnerInstructions: make([]InnerInstruction, 0, 8),
	}
	if nil == r.Logs {
		r.Logs = []string{}
	}
	if !r.Success {
		r.Failure = compact(meta.Err)
	}
	if nil != reply.BlockTime {
		r.BlockTime = int64(*reply.BlockTime)
	}
	if nil != meta.ComputeUnitsConsumed {
		r.ComputeUnits = *meta.ComputeUnitsConsumed
	}

	if len(meta.PreBalances) != len(meta.PostBalances) || len(meta.PreBalances) > len(keys) {
		return nil, fmt.Errorf("%w: balances do not match accounts", fault.ErrUnexpectedRPCResponse)
	}
	for n, pre := range meta.PreBalances {
		r.Balances = append(r.Balances, Balance{
			Account: keys[n],
			Pre:     pre,
			Post:    meta.PostBalances[n],
		})
	}

	for _, group := range meta.InnerInstructions {
		for _, inner := range group.Instructions {
			decoded, err := resolve(keys, int(group.Index), inner)
			if nil != err {
				return nil, err
			}
			r.InnerInstructions = append(r.InnerInstructions, decoded)
		}
	}
	return r, nil
}

// static keys followed by lookup table writable then readonly keys
func accountKeys(reply *rpccalls.TransactionReply) ([]identity.Identity, error) {
	tx, err := reply.Transaction.GetTransaction()
	if nil != err {
		return nil, fmt.Errorf("%w: transaction: %v", fault.ErrUnexpectedRPCResponse, err)
	}
	if nil == tx {
		return nil, fmt.Errorf("%w: transaction missing", fault.ErrUnexpectedRPCResponse)
	}

	loaded := reply.Meta.LoadedAddresses
	keys := make([]identity.Identity, 0, len(tx.Message.AccountKeys)+len(loaded.Writable)+len(loaded.ReadOnly))
	keys = append(keys, tx.Message.AccountKeys...)
	keys = append(keys, loaded.Writable...)
	keys = append(keys, loaded.ReadOnly...)
	return keys, nil
}

func resolve(keys []identity.Identity, parent int, inner rpccalls.InnerInstruction) (InnerInstruction, error) {
	if int(inner.ProgramIDIndex) >= len(keys) {
		return InnerInstruction{}, fmt.Errorf("%w: program index %d", fault.ErrUnexpectedRPCResponse, inner.ProgramIDIndex)
	}
	accounts := make([]identity.Identity, len(inner.Accounts))
	for n, a := range inner.Accounts {
		if int(a) >= len(keys) {
			return InnerInstruction{}, fmt.Errorf("%w: account index %d", fault.ErrUnexpectedRPCResponse, a)
		}
		accounts[n] = keys[a]
	}
	i := InnerInstruction{
		Parent:   parent,
		Program:  keys[inner.ProgramIDIndex],
		Accounts: accounts,
		Data:     append([]byte{}, inner.Data...),
	}
	if nil != inner.StackHeight {
		i.StackHeight = int(*inner.StackHeight)
	}
	return i, nil
}

func succeeded(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return 0 == len(raw) || bytes.Equal(raw, []byte("null"))
}

func compact(raw []byte) string {
	return string(bytes.TrimSpace(raw))
}

// failure value of a status entry in the same form as a receipt's
func failureText(remote interface{}) string {
	if nil == remote {
		return ""
	}
	raw, err := json.Marshal(remote)
	if nil != err {
		return fmt.Sprintf("%v", remote)
	}
	return compact(raw)
}
