// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/orecollective/state"
)

type proofInfo struct {
	Proof    *state.Proof    `json:"proof"`
	Treasury *state.Treasury `json:"treasury"`
	Buses    []*state.Bus    `json:"buses"`
}

func runProof(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	index, err := getIndex(c)
	if nil != err {
		return err
	}

	env, err := connect(m)
	if nil != err {
		return err
	}
	defer env.Close()

	p, err := env.collective.Proof(m.ctx, env.authority.Public(), index)
	if nil != err {
		return err
	}
	t, err := env.collective.Treasury(m.ctx)
	if nil != err {
		return err
	}
	buses, err := env.collective.Buses(m.ctx)
	if nil != err {
		return err
	}

	return printJson(m.w, proofInfo{
		Proof:    p,
		Treasury: t,
		Buses:    buses,
	})
}
