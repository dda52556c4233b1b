// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof_test

import (
	"context"
	"encoding/hex"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/fixtures"
	"github.com/bitmark-inc/orecollective/identity"
	"github.com/bitmark-inc/orecollective/proof"
	"github.com/bitmark-inc/orecollective/state"
)

const (
	initialHashHex = "3c1860e5b13851a05be7047835958319abaabbeb3fd2681a9117fa6280421c0f"
	digest0Hex     = "2abab0c1499a9d128a77fdf1cd1a6878887e70f7242490b5600d8ce14629e15d"
	firstNonce     = 1752
	firstDigestHex = "00024cd84145e0d897c59f4273bd7e4882558206fa9c25d3586191e6058c8dc1"
	secondNonce    = 11835
)

func testChallenge() proof.Challenge {
	miner := identity.MustFromBase58(fixtures.Miner0Address)
	difficulty := state.Hash{0x00, 0x0f}
	for i := 2; i < state.HashSize; i += 1 {
		difficulty[i] = 0xff
	}
	return proof.Challenge{
		Hash:       proof.InitialHash(miner),
		Miner:      miner,
		Difficulty: difficulty,
	}
}

func TestDigest(t *testing.T) {
	c := testChallenge()
	assert.Equal(t, initialHashHex, hex.EncodeToString(c.Hash[:]), "wrong initial hash")

	d := proof.Digest(c.Hash, c.Miner, 0)
	assert.Equal(t, digest0Hex, hex.EncodeToString(d[:]), "wrong digest")

	d = proof.Digest(c.Hash, c.Miner, firstNonce)
	assert.Equal(t, firstDigestHex, hex.EncodeToString(d[:]), "wrong solving digest")

	assert.True(t, c.Solves(firstNonce), "solution rejected")
	assert.False(t, c.Solves(0), "non solution accepted")
}

func TestSearch(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	c := testChallenge()

	for _, workers := range []int{1, 3, 8} {
		s, err := proof.New(workers, logger.New(fixtures.LogCategory))
		assert.Nil(t, err, "new searcher")

		r, err := s.Search(context.Background(), c, 0)
		assert.Nil(t, err, "%d workers: search", workers)
		assert.Equal(t, uint64(firstNonce), r.Nonce, "%d workers: not the lowest nonce", workers)
		assert.Equal(t, firstDigestHex, hex.EncodeToString(r.Hash[:]), "%d workers: wrong hash", workers)
		assert.True(t, r.Attempts > firstNonce, "%d workers: too few attempts: %d", workers, r.Attempts)

		r, err = s.Search(context.Background(), c, firstNonce+1)
		assert.Nil(t, err, "%d workers: second search", workers)
		assert.Equal(t, uint64(secondNonce), r.Nonce, "%d workers: wrong second nonce", workers)
	}
}

func TestSearchCancel(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	c := testChallenge()
	c.Difficulty = state.Hash{}

	s, err := proof.New(2, logger.New(fixtures.LogCategory))
	assert.Nil(t, err, "new searcher")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = s.Search(ctx, c, 0)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "expected deadline: %v", err)
}

func TestSearchExhausted(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	c := testChallenge()
	c.Difficulty = state.Hash{}

	s, err := proof.New(2, logger.New(fixtures.LogCategory))
	assert.Nil(t, err, "new searcher")

	_, err = s.Search(context.Background(), c, math.MaxUint64-10)
	assert.Equal(t, fault.ErrNonceSpaceExhausted, err, "wrong error")

	_, err = proof.New(1, nil)
	assert.Equal(t, fault.ErrInvalidLoggerChannel, err, "nil logger accepted")
}
