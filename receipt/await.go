// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package receipt

import (
	"context"
	"errors"
	"time"

	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/identity"
	"github.com/bitmark-inc/orecollective/rpccalls"
)

// WaitPolicy - how Await polls for a receipt
//
// the delay starts at Initial and is multiplied after every miss up to
// Maximum; Timeout and Attempts bound the wait when non-zero
type WaitPolicy struct {
	Initial    time.Duration `json:"initial"`
	Maximum    time.Duration `json:"maximum"`
	Multiplier float64       `json:"multiplier"`
	Timeout    time.Duration `json:"timeout"`
	Attempts   int           `json:"attempts"`
	DelayFirst bool          `json:"delay_first"`
}

// DefaultWaitPolicy - backoff from half a second to five seconds for
// at most a minute
var DefaultWaitPolicy = WaitPolicy{
	Initial:    500 * time.Millisecond,
	Maximum:    5 * time.Second,
	Multiplier: 2,
	Timeout:    time.Minute,
}

// FixedDelay - sleep once then fetch once
func FixedDelay(d time.Duration) WaitPolicy {
	return WaitPolicy{
		Initial:    d,
		Maximum:    d,
		Multiplier: 1,
		Attempts:   1,
		DelayFirst: true,
	}
}

// Validate - check the policy values are usable
func (p WaitPolicy) Validate() error {
	if p.Initial <= 0 || p.Multiplier < 1 || p.Timeout < 0 || p.Attempts < 0 {
		return fault.ErrInvalidWaitPolicy
	}
	if 0 != p.Maximum && p.Maximum < p.Initial {
		return fault.ErrInvalidWaitPolicy
	}
	return nil
}

// OrDefault - the policy, or DefaultWaitPolicy if it is unset
func (p WaitPolicy) OrDefault() WaitPolicy {
	if 0 == p.Initial {
		return DefaultWaitPolicy
	}
	return p
}

func (p WaitPolicy) next(delay time.Duration) time.Duration {
	delay = time.Duration(float64(delay) * p.Multiplier)
	if p.Maximum > 0 && delay > p.Maximum {
		delay = p.Maximum
	}
	return delay
}

// Await - poll until the receipt is available
//
// only ErrReceiptNotAvailable causes another poll; any other error
// ends the wait. An exhausted policy gives ErrWaitTimeout and a
// cancelled ctx gives its error. Abandoning the wait does not cancel
// the transaction itself.
func (i *Interpreter) Await(ctx context.Context, signature identity.Signature, commitment rpccalls.Commitment, policy WaitPolicy) (*Receipt, error) {
	err := policy.Validate()
	if nil != err {
		return nil, err
	}

	if policy.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, policy.Timeout)
		defer cancel()
	}

	delay := policy.Initial
	if policy.DelayFirst {
		if !sleep(ctx, delay) {
			return nil, i.waitError(ctx, signature, 0)
		}
		delay = policy.next(delay)
	}

	for attempt := 1; ; attempt += 1 {
		r, err := i.Fetch(ctx, signature, commitment)
		if nil == err {
			return r, nil
		}
		if !errors.Is(err, fault.ErrReceiptNotAvailable) {
			if nil != ctx.Err() {
				return nil, i.waitError(ctx, signature, attempt)
			}
			return nil, err
		}

		if policy.Attempts > 0 && attempt >= policy.Attempts {
			i.log.Warnf("await: %s  not available after: %d attempts", signature, attempt)
			return nil, fault.ErrWaitTimeout
		}

		if !sleep(ctx, delay) {
			return nil, i.waitError(ctx, signature, attempt)
		}
		delay = policy.next(delay)
	}
}

// false if ctx ended first
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (i *Interpreter) waitError(ctx context.Context, signature identity.Signature, attempts int) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		i.log.Warnf("await: %s  timed out after: %d attempts", signature, attempts)
		return fault.ErrWaitTimeout
	}
	i.log.Infof("await: %s  cancelled after: %d attempts", signature, attempts)
	return ctx.Err()
}
