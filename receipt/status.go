// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package receipt

import (
	"context"

	"github.com/bitmark-inc/orecollective/identity"
	"github.com/bitmark-inc/orecollective/rpccalls"
)

// Status - processing state of a signature without its details
type Status struct {
	Signature     identity.Signature  `json:"signature"`
	Known         bool                `json:"known"`
	Slot          uint64              `json:"slot,omitempty"`
	Confirmations *uint64             `json:"confirmations,omitempty"`
	Commitment    rpccalls.Commitment `json:"commitment,omitempty"`
	Failure       string              `json:"failure,omitempty"`
}

// Reached - true if the signature is known at commitment or higher
func (s Status) Reached(commitment rpccalls.Commitment) bool {
	if !s.Known {
		return false
	}
	return rank(s.Commitment) >= rank(commitment)
}

func rank(c rpccalls.Commitment) int {
	switch c {
	case rpccalls.Processed:
		return 1
	case rpccalls.Confirmed:
		return 2
	case rpccalls.Finalized:
		return 3
	default:
		return 0
	}
}

// Status - processing state of several signatures in one request
func (i *Interpreter) Status(ctx context.Context, searchHistory bool, signatures ...identity.Signature) ([]Status, error) {
	if 0 == len(signatures) {
		return []Status{}, nil
	}
	reply, err := i.fetcher.SignatureStatuses(ctx, signatures, searchHistory)
	if nil != err {
		i.log.Warnf("status: %d signatures  error: %s", len(signatures), err)
		return nil, err
	}

	result := make([]Status, len(signatures))
	for n, sig := range signatures {
		result[n].Signature = sig
		s := reply[n]
		if nil == s {
			continue
		}
		result[n].Known = true
		result[n].Slot = s.Slot
		result[n].Confirmations = s.Confirmations
		result[n].Commitment = rpccalls.Commitment(s.ConfirmationStatus)
		result[n].Failure = failureText(s.Err)
	}
	return result, nil
}
