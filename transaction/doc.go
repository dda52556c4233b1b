// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - legacy ledger transactions for collective
// requests
//
// compilation, signing and the wire format come from the ledger's Go
// SDK; this package adds the checks the submission path relies on:
//
//	a fee payer, a blockhash and at least one instruction
//	every required signer supplied
//	no more accounts than a one byte index can address
//	at most MaximumSize bytes on the wire
//	no versioned messages and no trailing bytes when decoding
//
// account keys are ordered: writable signers (fee payer first),
// read only signers, writable non-signers, read only non-signers.
// the first signature identifies the transaction on the ledger.
package transaction
