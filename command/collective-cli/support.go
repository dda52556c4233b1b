// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/orecollective/collective"
	"github.com/bitmark-inc/orecollective/identity"
	"github.com/bitmark-inc/orecollective/journal"
	"github.com/bitmark-inc/orecollective/receipt"
	"github.com/bitmark-inc/orecollective/rpccalls"
)

// a connected client for one command
type environment struct {
	collective *collective.Collective
	authority  *identity.KeyPair
	journal    *journal.Journal
}

func (env *environment) Close() {
	if nil != env.journal {
		_ = env.journal.Close()
	}
}

// connect to the node, open the journal and read the key file
func connect(m *metadata) (*environment, error) {
	ids, err := m.config.identities()
	if nil != err {
		return nil, err
	}

	client, err := rpccalls.NewClient(m.config.rpc(), logger.New("rpccalls"))
	if nil != err {
		return nil, err
	}

	authority, err := identity.KeyPairFromFile(m.config.KeyFile)
	if nil != err {
		return nil, fmt.Errorf("key file: %q  error: %s", m.config.KeyFile, err)
	}

	var j *journal.Journal
	if "" != m.config.Journal {
		j, err = journal.Open(m.config.Journal, logger.New("journal"))
		if nil != err {
			return nil, err
		}
	}

	c, err := collective.New(client, ids, m.config.collective(), j, logger.New("collective"))
	if nil != err {
		if nil != j {
			_ = j.Close()
		}
		return nil, err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "node: %s\n", m.config.RPC.URL)
		fmt.Fprintf(m.e, "authority: %s\n", authority.Public())
	}
	m.log.Infof("node: %s  authority: %s", m.config.RPC.URL, authority.Public())

	return &environment{
		collective: c,
		authority:  authority,
		journal:    j,
	}, nil
}

// result of a submitted request, with the receipt if waited for
type outcome struct {
	Attempt *collective.Attempt `json:"attempt"`
	Receipt *receipt.Receipt    `json:"receipt,omitempty"`
}

// print the attempt, optionally after waiting for its receipt; a
// failed execution is printed and returned as an error
func report(c *cli.Context, m *metadata, env *environment, a *collective.Attempt) error {
	result := outcome{
		Attempt: a,
	}
	if !c.Bool("wait") {
		return printJson(m.w, result)
	}

	r, err := env.collective.Outcome(m.ctx, a)
	if nil != err {
		_ = printJson(m.w, result)
		return err
	}
	result.Receipt = r
	err = printJson(m.w, result)
	if nil != err {
		return err
	}
	return r.Check()
}

// a request can be sent and still fail afterwards; print what was sent
func unreported(m *metadata, a *collective.Attempt, err error) error {
	if nil != a {
		_ = printJson(m.w, outcome{Attempt: a})
	}
	return err
}

func getIndex(c *cli.Context) (uint8, error) {
	return checkIndex(c.Int("index"))
}

func checkIndex(index int) (uint8, error) {
	if index < 0 || index > 255 {
		return 0, fmt.Errorf("invalid miner index: %d", index)
	}
	return uint8(index), nil
}

func parseNonce(s string) (uint64, error) {
	nonce, err := strconv.ParseUint(s, 10, 64)
	if nil != err {
		return 0, fmt.Errorf("invalid nonce: %q", s)
	}
	return nonce, nil
}
