// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package collective - register miners, submit solutions and claim
// rewards through the miner collective program
//
// every submission is sent once; its outcome is observed separately
// with Outcome and an optional journal refuses requests that already
// succeeded
package collective

import (
	"context"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/orecollective/chain"
	"github.com/bitmark-inc/orecollective/derivation"
	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
	"github.com/bitmark-inc/orecollective/instruction"
	"github.com/bitmark-inc/orecollective/journal"
	"github.com/bitmark-inc/orecollective/proof"
	"github.com/bitmark-inc/orecollective/receipt"
	"github.com/bitmark-inc/orecollective/rpccalls"
	"github.com/bitmark-inc/orecollective/submission"
)

// Node - the ledger node operations used by the collective
type Node interface {
	submission.Node
	receipt.Fetcher
	AccountInfo(ctx context.Context, address identity.Identity, commitment rpccalls.Commitment) (*rpccalls.Account, error)
}

// Configuration - collective parameters
type Configuration struct {
	Commitment       rpccalls.Commitment
	ComputeUnitLimit uint32
	ComputeUnitPrice uint64
	MaximumSolutions int
	Bus              uint8
	Workers          int
	Wait             receipt.WaitPolicy
}

// Collective - the client for one chain
type Collective struct {
	ids         *chain.Identities
	node        Node
	deriver     *derivation.Deriver
	builder     *instruction.Builder
	submitter   *submission.Submitter
	interpreter *receipt.Interpreter
	searcher    *proof.Searcher
	journal     *journal.Journal
	commitment  rpccalls.Commitment
	wait        receipt.WaitPolicy
	log         *logger.L
}

// New - create a collective client; j may be nil to disable the
// journal
func New(node Node, ids *chain.Identities, configuration Configuration, j *journal.Journal, log *logger.L) (*Collective, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	if nil == node || nil == ids {
		return nil, fault.ErrNotInitialised
	}

	commitment := configuration.Commitment
	if "" == commitment {
		commitment = rpccalls.Confirmed
	}

	wait := configuration.Wait.OrDefault()
	err := wait.Validate()
	if nil != err {
		return nil, err
	}

	deriver, err := derivation.New(ids, logger.New("derivation"))
	if nil != err {
		return nil, err
	}

	builder, err := instruction.NewBuilder(deriver, configuration.MaximumSolutions, configuration.Bus)
	if nil != err {
		return nil, err
	}

	submitter, err := submission.New(node, submission.Configuration{
		Commitment:       commitment,
		ComputeUnitLimit: configuration.ComputeUnitLimit,
		ComputeUnitPrice: configuration.ComputeUnitPrice,
	}, ids.ComputeBudgetProgram, logger.New("submission"))
	if nil != err {
		return nil, err
	}

	interpreter, err := receipt.New(node, commitment, logger.New("receipt"))
	if nil != err {
		return nil, err
	}

	searcher, err := proof.New(configuration.Workers, logger.New("proof"))
	if nil != err {
		return nil, err
	}

	return &Collective{
		ids:         ids,
		node:        node,
		deriver:     deriver,
		builder:     builder,
		submitter:   submitter,
		interpreter: interpreter,
		searcher:    searcher,
		journal:     j,
		commitment:  commitment,
		wait:        wait,
		log:         log,
	}, nil
}

// Deriver - the address deriver in use
func (c *Collective) Deriver() *derivation.Deriver {
	return c.deriver
}

// Builder - the request builder in use
func (c *Collective) Builder() *instruction.Builder {
	return c.builder
}

// Interpreter - the receipt interpreter in use
func (c *Collective) Interpreter() *receipt.Interpreter {
	return c.interpreter
}
