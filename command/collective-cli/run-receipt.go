// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/orecollective/identity"
	"github.com/bitmark-inc/orecollective/journal"
	"github.com/bitmark-inc/orecollective/receipt"
	"github.com/bitmark-inc/orecollective/rpccalls"
)

func runReceipt(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	s := c.String("signature")
	if "" == s {
		return fmt.Errorf("signature is required")
	}
	signature, err := identity.SignatureFromBase58(s)
	if nil != err {
		return err
	}

	commitment := rpccalls.Commitment("")
	if level := c.String("commitment"); "" != level {
		commitment, err = rpccalls.ParseCommitment(level)
		if nil != err {
			return err
		}
	}

	env, err := connect(m)
	if nil != err {
		return err
	}
	defer env.Close()

	interpreter := env.collective.Interpreter()

	var r *receipt.Receipt
	if c.Bool("wait") {
		r, err = interpreter.Await(m.ctx, signature, commitment, m.config.collective().Wait.OrDefault())
	} else {
		r, err = interpreter.Fetch(m.ctx, signature, commitment)
	}
	if nil != err {
		return err
	}

	err = printJson(m.w, r)
	if nil != err {
		return err
	}
	return r.Check()
}

type statusInfo struct {
	Statuses []receipt.Status `json:"statuses"`
}

func runStatus(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if 0 == c.NArg() {
		return fmt.Errorf("at least one signature is required")
	}
	signatures := make([]identity.Signature, 0, c.NArg())
	for _, s := range c.Args() {
		signature, err := identity.SignatureFromBase58(s)
		if nil != err {
			return fmt.Errorf("signature: %q  error: %s", s, err)
		}
		signatures = append(signatures, signature)
	}

	env, err := connect(m)
	if nil != err {
		return err
	}
	defer env.Close()

	statuses, err := env.collective.Interpreter().Status(m.ctx, c.Bool("history"), signatures...)
	if nil != err {
		return err
	}
	return printJson(m.w, statusInfo{Statuses: statuses})
}

type pendingEntry struct {
	Miner identity.Identity `json:"miner"`
	Nonce *uint64           `json:"nonce,omitempty"`
	Entry *journal.Entry    `json:"entry"`
}

func runPending(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if "" == m.config.Journal {
		return fmt.Errorf("journal is disabled")
	}

	env, err := connect(m)
	if nil != err {
		return err
	}
	defer env.Close()

	entries, err := env.journal.Pending()
	if nil != err {
		return err
	}

	result := make([]pendingEntry, 0, len(entries))
	for k, e := range entries {
		key := journal.Key(k)
		miner, err := key.Miner()
		if nil != err {
			return err
		}
		p := pendingEntry{
			Miner: miner,
			Entry: e,
		}
		if nonce, ok := key.Nonce(); ok {
			p.Nonce = &nonce
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Entry.Updated.Before(result[j].Entry.Updated)
	})
	return printJson(m.w, result)
}
