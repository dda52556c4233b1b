// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/orecollective/derivation"
	"github.com/bitmark-inc/orecollective/identity"
	"github.com/bitmark-inc/orecollective/util"
)

type derived struct {
	Authority identity.Identity  `json:"authority"`
	Index     uint8              `json:"index"`
	Miner     derivation.Address `json:"miner"`
	Proof     derivation.Address `json:"proof"`
	Tokens    derivation.Address `json:"tokens"`
}

func runDerive(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	index, err := getIndex(c)
	if nil != err {
		return err
	}

	var authority identity.Identity
	if s := c.String("authority"); "" != s {
		authority, err = identity.FromBase58(s)
		if nil != err {
			return err
		}
	} else {
		if !util.IsRegularFile(m.config.KeyFile) {
			return fmt.Errorf("key file: %q does not exist, give an authority address", m.config.KeyFile)
		}
		kp, err := identity.KeyPairFromFile(m.config.KeyFile)
		if nil != err {
			return err
		}
		authority = kp.Public()
	}

	ids, err := m.config.identities()
	if nil != err {
		return err
	}
	deriver, err := derivation.New(ids, logger.New("derivation"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "authority: %s\n", authority)
		fmt.Fprintf(m.e, "index: %d\n", index)
	}

	miner, err := deriver.Miner(authority, index)
	if nil != err {
		return err
	}
	proof, err := deriver.Proof(miner.Identity)
	if nil != err {
		return err
	}
	tokens, err := deriver.AssociatedTokenAccount(authority, ids.Mint)
	if nil != err {
		return err
	}

	return printJson(m.w, derived{
		Authority: authority,
		Index:     index,
		Miner:     miner,
		Proof:     proof,
		Tokens:    tokens,
	})
}
