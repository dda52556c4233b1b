// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"sort"

	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
)

// BusCount - number of reward buses run by the ORE program
const BusCount = 8

// Identities - every static address the client refers to
//
// none of these are used as literals elsewhere; a local validator
// with redeployed programs only needs a different Identities
type Identities struct {
	CollectiveProgram      identity.Identity
	CollectiveTreasury     identity.Identity
	CollectiveOreTreasury  identity.Identity
	OreProgram             identity.Identity
	OreTreasury            identity.Identity
	OreTreasuryTokens      identity.Identity
	Mint                   identity.Identity
	SystemProgram          identity.Identity
	TokenProgram           identity.Identity
	AssociatedTokenProgram identity.Identity
	ComputeBudgetProgram   identity.Identity
	SlotHashes             identity.Identity
}

// published addresses shared by all chains
const (
	collectiveProgram      = "omcpZynsRS1Py8TP28zeTemamQoRPpuqwdqV8WXnL4M"
	collectiveTreasury     = "omc1vcb6CmMywXcDxyL77VaPYU98WyyaP3Mx6LBuaTr"
	collectiveOreTreasury  = "9idoAEtTrcnoXmrSYMx3pQQYiRLPND3NvcgJnfk6oihW"
	oreProgram             = "mineRHF5r6S7HyD9SppBfVMXMavDkJsxwGesEvxZr2A"
	oreTreasury            = "FTap9fv2GPpWGqrLj3o4c9nHH7p36ih7NbSWHnrkQYqa"
	oreTreasuryTokens      = "37ywg5kxKVb3q3bpvdYhQZBPHrHAXVo91RXoBBj7Boo9"
	mint                   = "oreoN2tQbHXVaZsr3pf66A48miqcBXCDJozganhEJgz"
	systemProgram          = "11111111111111111111111111111111"
	tokenProgram           = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	associatedTokenProgram = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
	computeBudgetProgram   = "ComputeBudget111111111111111111111111111111"
	slotHashes             = "SysvarS1otHashes111111111111111111111111111"
)

// Defaults - the identities in use on a chain
func Defaults(name string) (*Identities, error) {
	if !Valid(name) {
		return nil, fault.ErrUnknownChain
	}

	// the collective and ORE programs are deployed at the same
	// addresses everywhere; a local validator clones them
	return &Identities{
		CollectiveProgram:      identity.MustFromBase58(collectiveProgram),
		CollectiveTreasury:     identity.MustFromBase58(collectiveTreasury),
		CollectiveOreTreasury:  identity.MustFromBase58(collectiveOreTreasury),
		OreProgram:             identity.MustFromBase58(oreProgram),
		OreTreasury:            identity.MustFromBase58(oreTreasury),
		OreTreasuryTokens:      identity.MustFromBase58(oreTreasuryTokens),
		Mint:                   identity.MustFromBase58(mint),
		SystemProgram:          identity.MustFromBase58(systemProgram),
		TokenProgram:           identity.MustFromBase58(tokenProgram),
		AssociatedTokenProgram: identity.MustFromBase58(associatedTokenProgram),
		ComputeBudgetProgram:   identity.MustFromBase58(computeBudgetProgram),
		SlotHashes:             identity.MustFromBase58(slotHashes),
	}, nil
}

// Override - replace identities by configuration name
//
// unknown names are rejected so that a typo in a configuration file
// cannot silently leave the default in place
func (ids *Identities) Override(overrides map[string]string) error {

	// process in a fixed order so the reported error is stable
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		target := ids.lookup(name)
		if nil == target {
			return fault.InvalidError("unknown identity name: " + name)
		}
		id, err := identity.FromBase58(overrides[name])
		if nil != err {
			return err
		}
		*target = id
	}
	return nil
}

// Validate - check that every non-system identity is set
func (ids *Identities) Validate() error {
	for _, id := range []identity.Identity{
		ids.CollectiveProgram,
		ids.CollectiveTreasury,
		ids.CollectiveOreTreasury,
		ids.OreProgram,
		ids.OreTreasury,
		ids.OreTreasuryTokens,
		ids.Mint,
		ids.TokenProgram,
		ids.AssociatedTokenProgram,
		ids.ComputeBudgetProgram,
		ids.SlotHashes,
	} {
		if id.IsZero() {
			return fault.ErrZeroIdentity
		}
	}
	return nil
}

func (ids *Identities) lookup(name string) *identity.Identity {
	switch name {
	case "collective_program":
		return &ids.CollectiveProgram
	case "collective_treasury":
		return &ids.CollectiveTreasury
	case "collective_ore_treasury":
		return &ids.CollectiveOreTreasury
	case "ore_program":
		return &ids.OreProgram
	case "ore_treasury":
		return &ids.OreTreasury
	case "ore_treasury_tokens":
		return &ids.OreTreasuryTokens
	case "mint":
		return &ids.Mint
	case "system_program":
		return &ids.SystemProgram
	case "token_program":
		return &ids.TokenProgram
	case "associated_token_program":
		return &ids.AssociatedTokenProgram
	case "compute_budget_program":
		return &ids.ComputeBudgetProgram
	case "slot_hashes":
		return &ids.SlotHashes
	default:
		return nil
	}
}
