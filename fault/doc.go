// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error classes shared by all collective packages
//
// every error returned by the library falls into exactly one class
// so that callers can decide between fixing the request, waiting
// longer or giving up:
//
//	DerivationError - no program address could be derived
//	EnvelopeError   - the request could not be assembled
//	TransportError  - the remote node could not be reached
//	ExecutionError  - the request ran and the remote program rejected it
//	NotFoundError   - a receipt or account is not (yet) available
//
// InvalidError, ExistsError and ProcessError cover bad input,
// duplicate work and malformed remote replies
package fault
