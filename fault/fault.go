// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type DerivationError GenericError
type EnvelopeError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAccountNotFound        = NotFoundError("account not found")
	ErrAlreadyInitialised     = ExistsError("already initialised")
	ErrAlreadySucceeded       = ExistsError("request already executed successfully")
	ErrBumpMismatch           = EnvelopeError("solution bump does not match derived bump")
	ErrConfigurationNotTable  = InvalidError("configuration did not return a table")
	ErrDerivationExhausted    = DerivationError("unable to find a viable program address bump")
	ErrEmptySolutionBatch     = EnvelopeError("solution batch is empty")
	ErrEntryNotFound          = NotFoundError("journal entry not found")
	ErrInstructionEncoding    = EnvelopeError("instruction arguments could not be encoded")
	ErrInvalidAccountData     = InvalidError("account data is invalid")
	ErrInvalidAccountKind     = InvalidError("account kind is invalid")
	ErrInvalidBase58          = InvalidError("base58 string is invalid")
	ErrInvalidCommitment      = InvalidError("commitment level is invalid")
	ErrInvalidIdentityLength  = InvalidError("identity length is invalid")
	ErrInvalidJournalEntry    = InvalidError("journal entry is invalid")
	ErrInvalidKeyFile         = InvalidError("key file is invalid")
	ErrInvalidLoggerChannel   = InvalidError("invalid logger channel")
	ErrInvalidSignatureLength = InvalidError("signature length is invalid")
	ErrInvalidStructPointer   = InvalidError("invalid struct pointer")
	ErrInvalidWaitPolicy      = InvalidError("wait policy is invalid")
	ErrJournalNotUpdated      = ProcessError("sent but journal not updated")
	ErrMaxSeedLengthExceeded  = DerivationError("seed exceeds maximum length")
	ErrMissingBlockhash       = EnvelopeError("recent blockhash is missing")
	ErrMissingFeePayer        = EnvelopeError("fee payer is missing")
	ErrMissingSigner          = EnvelopeError("required signer is missing")
	ErrNoBusAvailable         = NotFoundError("no bus holds sufficient rewards")
	ErrNoInstructions         = EnvelopeError("no instructions to submit")
	ErrNonceSpaceExhausted    = NotFoundError("no solving nonce in range")
	ErrNotInitialised         = NotFoundError("not initialised")
	ErrPublicKeyOnCurve       = DerivationError("derived address lies on the ed25519 curve")
	ErrReceiptNotAvailable    = NotFoundError("receipt is not yet available")
	ErrTooManyAccounts        = EnvelopeError("too many accounts for one transaction")
	ErrTooManySeeds           = DerivationError("too many seeds")
	ErrTooManySolutions       = EnvelopeError("solution batch exceeds maximum")
	ErrTransactionEncoding    = EnvelopeError("transaction could not be encoded")
	ErrTransactionTooLarge    = EnvelopeError("serialized transaction exceeds packet size")
	ErrUnexpectedOwner        = InvalidError("account has unexpected owner")
	ErrUnexpectedRPCResponse  = ProcessError("unexpected RPC response")
	ErrUnknownChain           = InvalidError("chain is not supported")
	ErrUnsupportedTransaction = ProcessError("transaction encoding is not supported")
	ErrWaitTimeout            = NotFoundError("timed out waiting for receipt")
	ErrZeroAmount             = EnvelopeError("amount must be greater than zero")
	ErrZeroIdentity           = InvalidError("identity is zero")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e DerivationError) Error() string { return string(e) }
func (e EnvelopeError) Error() string   { return string(e) }
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e ProcessError) Error() string    { return string(e) }

// TransportError - a network level failure talking to the remote node
//
// the request may or may not have reached the node; nothing is retried
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure during %s: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewTransportError - wrap a network error
func NewTransportError(operation string, err error) error {
	return &TransportError{Operation: operation, Err: err}
}

// RPCError - an error object returned by the remote node
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// ExecutionError - the request executed and the remote program
// rejected it; the receipt holds the logs
type ExecutionError struct {
	Signature string
	Remote    string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution of %s failed: %s", e.Signature, e.Remote)
}

// determine the class of an error
func IsErrDerivation(e error) bool { var t DerivationError; return errors.As(e, &t) }
func IsErrEnvelope(e error) bool   { var t EnvelopeError; return errors.As(e, &t) }
func IsErrExists(e error) bool     { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool    { var t InvalidError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool   { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool {
	var t ProcessError
	var r *RPCError
	return errors.As(e, &t) || errors.As(e, &r)
}
func IsErrTransport(e error) bool { var t *TransportError; return errors.As(e, &t) }
func IsErrExecution(e error) bool { var t *ExecutionError; return errors.As(e, &t) }
