// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/orecollective/instruction"
)

func runMine(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	indices := c.IntSlice("index")
	if 0 == len(indices) {
		return fmt.Errorf("at least one miner index is required")
	}
	nonce := c.String("nonce")
	if "" != nonce && 1 != len(indices) {
		return fmt.Errorf("a nonce can only be given for a single miner")
	}

	env, err := connect(m)
	if nil != err {
		return err
	}
	defer env.Close()

	authority := env.authority.Public()
	solutions := make([]instruction.Solution, 0, len(indices))
	for _, i := range indices {
		index, err := checkIndex(i)
		if nil != err {
			return err
		}

		if "" != nonce {
			n, err := parseNonce(nonce)
			if nil != err {
				return err
			}
			s, err := env.collective.Builder().Solution(authority, index, n)
			if nil != err {
				return err
			}
			solutions = append(solutions, s)
			continue
		}

		s, result, err := env.collective.Solve(m.ctx, authority, index, c.Uint64("start"))
		if nil != err {
			return err
		}
		if m.verbose {
			fmt.Fprintf(m.e, "index: %d  nonce: %d  attempts: %d\n", index, result.Nonce, result.Attempts)
		}
		solutions = append(solutions, s)
	}

	bus := uint8(m.config.Bus)
	if c.Bool("auto-bus") {
		bus, err = env.collective.SelectBus(m.ctx, len(solutions))
		if nil != err {
			return err
		}
	}
	if m.verbose {
		fmt.Fprintf(m.e, "bus: %d  solutions: %d\n", bus, len(solutions))
	}

	a, err := env.collective.Mine(m.ctx, env.authority, bus, solutions)
	if nil != err {
		return unreported(m, a, err)
	}
	return report(c, m, env, a)
}
