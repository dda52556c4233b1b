// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package derivation_test

import (
	"bytes"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/orecollective/chain"
	"github.com/bitmark-inc/orecollective/derivation"
	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
)

func newDeriver(t *testing.T) *derivation.Deriver {
	ids, err := chain.Defaults(chain.Mainnet)
	assert.Nil(t, err, "chain defaults")

	d, err := derivation.New(ids, logger.New("derivation"))
	assert.Nil(t, err, "new deriver")
	return d
}

func testAuthority(t *testing.T) identity.Identity {
	kp, err := identity.KeyPairFromSeed(bytes.Repeat([]byte{0x42}, 32))
	assert.Nil(t, err, "key pair")
	return kp.Public()
}

// addresses published by the ORE program are themselves derived and
// must be reproduced exactly
func TestPublishedAddresses(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	d := newDeriver(t)

	bus, err := d.Bus(0)
	assert.Nil(t, err, "bus 0")
	assert.Equal(t, "9ShaCzHhQNvH8PLfGyrJbB8MeKHrDnuPMLnUDLJ2yMvz", bus.Identity.String(), "wrong bus 0 address")

	treasury, err := d.Treasury()
	assert.Nil(t, err, "treasury")
	assert.Equal(t, d.Identities().OreTreasury, treasury.Identity, "wrong treasury address")

	tokens, err := d.AssociatedTokenAccount(treasury.Identity, d.Identities().Mint)
	assert.Nil(t, err, "treasury tokens")
	assert.Equal(t, d.Identities().OreTreasuryTokens, tokens.Identity, "wrong treasury token address")

	ata, err := d.AssociatedTokenAccount(testAuthority(t), d.Identities().Mint)
	assert.Nil(t, err, "authority tokens")
	assert.Equal(t, "2rUzd4x9tPyLSPEEE1abAhVSUK9qt3xxsri7SduZKUom", ata.Identity.String(), "wrong associated token account")

	_, err = d.Bus(chain.BusCount)
	assert.True(t, fault.IsErrInvalid(err), "bus out of range accepted")
}

func TestMinerAndProof(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	d := newDeriver(t)
	ids := d.Identities()
	authority := testAuthority(t)

	assert.Equal(t, "3F5qRPtKg8GhGNnbd3qCj6nVJxWsGxq7pvH84okYLAqf", authority.String(), "wrong test authority")

	miner, err := d.Miner(authority, 0)
	assert.Nil(t, err, "miner 0")
	assert.Equal(t, "6fpqgXPu65amqHJTGzN7uCNu1k3aq8yfMdcDoBq9Enjj", miner.Identity.String(), "wrong miner 0 address")
	assert.Equal(t, uint8(252), miner.Bump, "wrong miner 0 bump")
	assert.False(t, miner.Identity.IsOnCurve(), "miner address on curve")

	// the bump must reproduce the address directly
	direct, err := derivation.CreateProgramAddress(
		[][]byte{[]byte("x"), authority[:], {0}, {miner.Bump}},
		ids.CollectiveProgram,
	)
	assert.Nil(t, err, "create with found bump")
	assert.Equal(t, miner.Identity, direct, "bump does not reproduce the address")

	// deterministic, and independent of memoisation
	again, err := newDeriver(t).Miner(authority, 0)
	assert.Nil(t, err, "miner 0 again")
	assert.Equal(t, miner, again, "derivation is not deterministic")

	other, err := d.Miner(authority, 1)
	assert.Nil(t, err, "miner 1")
	assert.Equal(t, "6L16dbowQ86empWLyH9BAkQ6Zeazgdp6eqCLa1r4SV4T", other.Identity.String(), "wrong miner 1 address")
	assert.Equal(t, uint8(255), other.Bump, "wrong miner 1 bump")

	proof, err := d.Proof(miner.Identity)
	assert.Nil(t, err, "proof")
	assert.Equal(t, "BxxL9uYKgeeMrpPtgmNt3jGWgVbwTesPtPkvUhCWF1Ne", proof.Identity.String(), "wrong proof address")
	assert.Equal(t, uint8(252), proof.Bump, "wrong proof bump")
	assert.False(t, proof.Identity.IsOnCurve(), "proof address on curve")

	id, bump, err := derivation.FindProgramAddress([][]byte{[]byte("proof"), miner.Identity[:]}, ids.OreProgram)
	assert.Nil(t, err, "find proof")
	assert.Equal(t, proof.Identity, id, "wrong proof address")
	assert.Equal(t, proof.Bump, bump, "wrong proof bump")
}

func TestSeedLimits(t *testing.T) {
	program := identity.MustFromBase58("omcpZynsRS1Py8TP28zeTemamQoRPpuqwdqV8WXnL4M")

	_, _, err := derivation.FindProgramAddress([][]byte{make([]byte, derivation.MaxSeedLength+1)}, program)
	assert.Equal(t, fault.ErrMaxSeedLengthExceeded, err, "long seed accepted")
	assert.True(t, fault.IsErrDerivation(err), "wrong class")

	seeds := make([][]byte, derivation.MaxSeeds)
	for i := range seeds {
		seeds[i] = []byte{byte(i)}
	}
	_, _, err = derivation.FindProgramAddress(seeds, program)
	assert.Equal(t, fault.ErrTooManySeeds, err, "no room left for the bump seed")

	_, err = derivation.CreateProgramAddress(append(seeds, []byte{0}), program)
	assert.Equal(t, fault.ErrTooManySeeds, err, "too many seeds accepted")

	_, _, err = derivation.FindProgramAddress(seeds[:derivation.MaxSeeds-1], program)
	assert.Nil(t, err, "maximum usable seeds rejected")
}

// the bump must never be written into spare capacity of the caller's
// seed list
func TestCallerSeedsUntouched(t *testing.T) {
	program := identity.MustFromBase58("omcpZynsRS1Py8TP28zeTemamQoRPpuqwdqV8WXnL4M")

	backing := make([][]byte, 3)
	backing[0] = []byte("proof")
	backing[1] = program[:]
	backing[2] = []byte("untouched")
	seeds := backing[:2]

	id, bump, err := derivation.FindProgramAddress(seeds, program)
	assert.Nil(t, err, "find")
	assert.Equal(t, []byte("untouched"), backing[2], "caller seed list overwritten")

	expected, expectedBump, err := solana.FindProgramAddress([][]byte{[]byte("proof"), program[:]}, program)
	assert.Nil(t, err, "library find")
	assert.Equal(t, expected, id, "wrong address")
	assert.Equal(t, expectedBump, bump, "wrong bump")
}

func TestNewDeriverRequiresArguments(t *testing.T) {
	_, err := derivation.New(nil, nil)
	assert.Equal(t, fault.ErrZeroIdentity, err, "nil identities accepted")

	ids, _ := chain.Defaults(chain.Local)
	_, err = derivation.New(ids, nil)
	assert.Equal(t, fault.ErrInvalidLoggerChannel, err, "nil logger accepted")
}
