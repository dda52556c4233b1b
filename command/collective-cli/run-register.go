// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/orecollective/collective"
)

func runRegister(c *cli.Context) error {

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

	var a *collective.Attempt
	if c.Bool("solve") {
		s, result, err := env.collective.Solve(m.ctx, env.authority.Public(), index, 0)
		if nil != err {
			return err
		}
		if m.verbose {
			fmt.Fprintf(m.e, "nonce: %d  attempts: %d\n", result.Nonce, result.Attempts)
		}
		a, err = env.collective.RegisterAndMine(m.ctx, env.authority, uint8(m.config.Bus), index, s.Nonce)
		if nil != err {
			return unreported(m, a, err)
		}
	} else {
		a, err = env.collective.Register(m.ctx, env.authority, index)
		if nil != err {
			return unreported(m, a, err)
		}
	}

	return report(c, m, env, a)
}
