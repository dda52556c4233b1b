// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/orecollective/identity"
)

func runClaim(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	index, err := getIndex(c)
	if nil != err {
		return err
	}

	amount := c.Uint64("amount")
	if 0 == amount {
		return fmt.Errorf("amount is required")
	}

	beneficiary := identity.Identity{}
	if s := c.String("beneficiary"); "" != s {
		beneficiary, err = identity.FromBase58(s)
		if nil != err {
			return err
		}
	}

	env, err := connect(m)
	if nil != err {
		return err
	}
	defer env.Close()

	a, err := env.collective.Claim(m.ctx, env.authority, beneficiary, amount, index)
	if nil != err {
		return unreported(m, a, err)
	}
	return report(c, m, env, a)
}
