// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof

import (
	"context"
	"encoding/binary"
	"math"
	"runtime"
	"sync/atomic"

	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"
	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/state"
)

// nonces tried between cancellation checks
const checkInterval = 1024

// Searcher - parallel nonce search
type Searcher struct {
	workers int
	log     *logger.L
}

// New - create a searcher; workers <= 0 selects one per CPU
func New(workers int, log *logger.L) (*Searcher, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Searcher{
		workers: workers,
		log:     log,
	}, nil
}

// Search - the lowest nonce at or above start that solves c
//
// worker w tries start+w, start+w+workers, ...; a worker stops once
// its next nonce is above the best found so far, so the result does
// not depend on scheduling
func (s *Searcher) Search(ctx context.Context, c Challenge, start uint64) (Result, error) {
	best := uint64(math.MaxUint64)
	found := int32(0)
	attempts := uint64(0)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < s.workers; w += 1 {
		first := start + uint64(w)
		if first < start {
			break
		}
		step := uint64(s.workers)
		g.Go(func() error {
			n, err := s.work(ctx, c, first, step, &best, &found)
			atomic.AddUint64(&attempts, n)
			return err
		})
	}
	err := g.Wait()

	if 0 != atomic.LoadInt32(&found) {
		nonce := atomic.LoadUint64(&best)
		s.log.Debugf("miner: %s  nonce: %d  attempts: %d", c.Miner, nonce, attempts)
		return Result{
			Nonce:    nonce,
			Hash:     Digest(c.Hash, c.Miner, nonce),
			Attempts: attempts,
		}, nil
	}
	if nil != err {
		return Result{}, err
	}
	return Result{}, fault.ErrNonceSpaceExhausted
}

func (s *Searcher) work(ctx context.Context, c Challenge, nonce uint64, step uint64, best *uint64, found *int32) (uint64, error) {
	prefix := make([]byte, 0, state.HashSize+len(c.Miner))
	prefix = append(prefix, c.Hash[:]...)
	prefix = append(prefix, c.Miner[:]...)

	h := sha3.NewLegacyKeccak256()
	buffer := make([]byte, NonceSize)
	digest := make([]byte, 0, state.HashSize)
	target := state.Hash{}
	tried := uint64(0)

	for {
		if nonce > atomic.LoadUint64(best) {
			return tried, nil
		}
		if 0 == tried%checkInterval {
			select {
			case <-ctx.Done():
				if 0 != atomic.LoadInt32(found) {
					return tried, nil
				}
				return tried, ctx.Err()
			default:
			}
		}

		binary.LittleEndian.PutUint64(buffer, nonce)
		h.Reset()
		h.Write(prefix)
		h.Write(buffer)
		digest = h.Sum(digest[:0])
		copy(target[:], digest)
		tried += 1

		if target.LessOrEqual(c.Difficulty) {
			lower(best, nonce)
			atomic.StoreInt32(found, 1)
			return tried, nil
		}

		next := nonce + step
		if next < nonce {
			return tried, nil
		}
		nonce = next
	}
}

// atomically replace *best with n if n is lower
func lower(best *uint64, n uint64) {
	for {
		current := atomic.LoadUint64(best)
		if n >= current || atomic.CompareAndSwapUint64(best, current, n) {
			return
		}
	}
}
