// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instruction

import (
	"github.com/bitmark-inc/orecollective/identity"
)

// compute budget program opcodes
const (
	setComputeUnitLimitTag = 2
	setComputeUnitPriceTag = 3
)

// per action compute unit limits measured against the deployed programs
const (
	ComputeUnitsRegister = 42660
	ComputeUnitsMine     = 10500
)

type unitLimitArgs struct {
	Units uint32
}

type unitPriceArgs struct {
	MicroLamports uint64
}

// SetComputeUnitLimit - cap the compute units a transaction may use
func SetComputeUnitLimit(program identity.Identity, units uint32) (*Instruction, error) {
	data, err := pack([]byte{setComputeUnitLimitTag}, unitLimitArgs{Units: units})
	if nil != err {
		return nil, err
	}
	return &Instruction{
		Program:  program,
		Accounts: []AccountMeta{},
		Data:     data,
	}, nil
}

// SetComputeUnitPrice - priority fee in micro-lamports per compute unit
func SetComputeUnitPrice(program identity.Identity, microLamports uint64) (*Instruction, error) {
	data, err := pack([]byte{setComputeUnitPriceTag}, unitPriceArgs{MicroLamports: microLamports})
	if nil != err {
		return nil, err
	}
	return &Instruction{
		Program:  program,
		Accounts: []AccountMeta{},
		Data:     data,
	}, nil
}
