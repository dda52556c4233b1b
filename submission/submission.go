// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package submission - sign and transmit collective requests
//
// a request is transmitted exactly once, with the node's own
// rebroadcast disabled and preflight simulation skipped; nothing is
// retried here. A returned Submission only means the node accepted
// the bytes: the outcome must be observed with the receipt package.
//
// abandoning a wait does not cancel a transmitted request; the
// ledger may still execute it until its blockhash expires
package submission

//go:generate mockgen -destination=../mocks/node.go -package=mocks github.com/bitmark-inc/orecollective/submission Node

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"
	bin "github.com/gagliardetto/binary"

	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
	"github.com/bitmark-inc/orecollective/instruction"
	"github.com/bitmark-inc/orecollective/rpccalls"
	"github.com/bitmark-inc/orecollective/transaction"
)

// Node - the part of a ledger node used for submission
type Node interface {
	LatestBlockhash(ctx context.Context, commitment rpccalls.Commitment) (transaction.Blockhash, uint64, error)
	SendTransaction(ctx context.Context, tx *transaction.Transaction, options rpccalls.SendOptions) (identity.Signature, error)
}

// Configuration - submission parameters
type Configuration struct {
	Commitment       rpccalls.Commitment `gluamapper:"-" json:"commitment"`
	ComputeUnitLimit uint32              `gluamapper:"compute_unit_limit" json:"compute_unit_limit"`
	ComputeUnitPrice uint64              `gluamapper:"compute_unit_price" json:"compute_unit_price"`
}

// Submission - a transmitted, not yet final, request
type Submission struct {
	Signature            identity.Signature    `json:"signature"`
	Blockhash            transaction.Blockhash `json:"blockhash"`
	LastValidBlockHeight uint64                `json:"lastValidBlockHeight"`
	Size                 int                   `json:"size"`
	SubmittedAt          time.Time             `json:"submittedAt"`
}

// Submitter - builds, signs and sends transactions
type Submitter struct {
	node          Node
	configuration Configuration
	budgetProgram identity.Identity
	log           *logger.L
}

// New - create a submitter
//
// budgetProgram is the compute budget program used for the optional
// limit and price prefix instructions
func New(node Node, configuration Configuration, budgetProgram identity.Identity, log *logger.L) (*Submitter, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	if nil == node {
		return nil, fault.ErrNotInitialised
	}
	if "" == configuration.Commitment {
		configuration.Commitment = rpccalls.Confirmed
	}
	if !configuration.Commitment.Valid() {
		return nil, fault.ErrInvalidCommitment
	}
	return &Submitter{
		node:          node,
		configuration: configuration,
		budgetProgram: budgetProgram,
		log:           log,
	}, nil
}

// Submit - put one or more envelopes into a single transaction, sign
// it with the fee payer and transmit it once
//
// all envelopes share the signature; a register followed by a mine
// for the same miner either both execute or neither does
func (s *Submitter) Submit(ctx context.Context, payer identity.Signer, envelopes ...*instruction.Instruction) (*Submission, error) {
	if nil == payer {
		return nil, fault.ErrMissingSigner
	}
	if 0 == len(envelopes) {
		return nil, fault.ErrNoInstructions
	}

	instructions, err := s.budget(envelopes)
	if nil != err {
		return nil, err
	}

	blockhash, lastValid, err := s.node.LatestBlockhash(ctx, s.configuration.Commitment)
	if nil != err {
		s.log.Errorf("latest blockhash error: %s", err)
		return nil, err
	}

	tx, err := transaction.New(payer.Public(), blockhash, instructions)
	if nil != err {
		return nil, err
	}

	err = tx.Sign(payer)
	if nil != err {
		return nil, err
	}

	raw, err := tx.Pack()
	if nil != err {
		s.log.Warnf("transaction: %s  pack error: %s", tx.ID(), err)
		return nil, err
	}

	zero := uint(0)
	options := rpccalls.SendOptions{
		SkipPreflight: true,
		MaxRetries:    &zero,
	}

	s.log.Infof("submit: %s  envelopes: %d  size: %d  blockhash: %s", tx.ID(), len(envelopes), len(raw), blockhash)

	signature, err := s.node.SendTransaction(ctx, tx, options)
	if nil != err {
		s.log.Errorf("submit: %s  error: %s", tx.ID(), err)
		return nil, err
	}
	if signature != tx.ID() {
		s.log.Warnf("submit: %s  node returned signature: %s", tx.ID(), signature)
		return nil, fault.ErrUnexpectedRPCResponse
	}

	return &Submission{
		Signature:            signature,
		Blockhash:            blockhash,
		LastValidBlockHeight: lastValid,
		Size:                 len(raw),
		SubmittedAt:          time.Now(),
	}, nil
}

// prefix the compute budget instructions when configured
func (s *Submitter) budget(envelopes []*instruction.Instruction) ([]*instruction.Instruction, error) {
	limit := s.configuration.ComputeUnitLimit
	if 0 == limit {
		limit = Estimate(envelopes)
	}

	instructions := make([]*instruction.Instruction, 0, len(envelopes)+2)
	if limit > 0 && !s.budgetProgram.IsZero() {
		ix, err := instruction.SetComputeUnitLimit(s.budgetProgram, limit)
		if nil != err {
			return nil, err
		}
		instructions = append(instructions, ix)
	}
	if s.configuration.ComputeUnitPrice > 0 && !s.budgetProgram.IsZero() {
		ix, err := instruction.SetComputeUnitPrice(s.budgetProgram, s.configuration.ComputeUnitPrice)
		if nil != err {
			return nil, err
		}
		instructions = append(instructions, ix)
	}
	return append(instructions, envelopes...), nil
}

// Estimate - compute units needed by collective envelopes, or zero if
// any envelope is not a known collective action
func Estimate(envelopes []*instruction.Instruction) uint32 {
	total := uint32(0)
	for _, e := range envelopes {
		switch instruction.Action(e.Data) {
		case instruction.ActionRegister:
			total += instruction.ComputeUnitsRegister
		case instruction.ActionMine:
			count := uint32(1)
			if len(e.Data) >= instruction.DiscriminatorSize+4 {
				n, err := bin.NewBorshDecoder(e.Data[instruction.DiscriminatorSize:]).ReadUint32(bin.LE)
				if nil == err {
					count = n
				}
			}
			total += instruction.ComputeUnitsMine * count
		default:
			return 0
		}
	}
	return total
}
