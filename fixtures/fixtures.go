// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test setup and key material
package fixtures

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/bitmark-inc/orecollective/identity"
	"github.com/bitmark-inc/orecollective/instruction"
	"github.com/bitmark-inc/orecollective/transaction"
)

const (
	testingDirName = "testing"
	LogCategory    = "testing"
)

// addresses derived on mainnet identities for the authority below
const (
	AuthorityAddress = "3F5qRPtKg8GhGNnbd3qCj6nVJxWsGxq7pvH84okYLAqf"
	Miner0Address    = "6fpqgXPu65amqHJTGzN7uCNu1k3aq8yfMdcDoBq9Enjj"
	Miner0Bump       = 252
	Proof0Address    = "BxxL9uYKgeeMrpPtgmNt3jGWgVbwTesPtPkvUhCWF1Ne"
	Miner1Address    = "6L16dbowQ86empWLyH9BAkQ6Zeazgdp6eqCLa1r4SV4T"
	Miner1Bump       = 255
	Bus0Address      = "9ShaCzHhQNvH8PLfGyrJbB8MeKHrDnuPMLnUDLJ2yMvz"
	TokensAddress    = "2rUzd4x9tPyLSPEEE1abAhVSUK9qt3xxsri7SduZKUom"
	Blockhash        = "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N"
)

// Authority - the key pair the derived addresses belong to
func Authority() *identity.KeyPair {
	kp, err := identity.KeyPairFromSeed(bytes.Repeat([]byte{0x42}, 32))
	if nil != err {
		panic(err)
	}
	return kp
}

// SignedTransaction - the instructions paid for and signed by the
// authority against the fixed blockhash
func SignedTransaction(instructions ...*instruction.Instruction) (*transaction.Transaction, error) {
	authority := Authority()
	blockhash, err := transaction.BlockhashFromBase58(Blockhash)
	if nil != err {
		return nil, err
	}
	tx, err := transaction.New(authority.Public(), blockhash, instructions)
	if nil != err {
		return nil, err
	}
	err = tx.Sign(authority)
	if nil != err {
		return nil, err
	}
	return tx, nil
}

// Envelope - raw transaction bytes as getTransaction reports them
// in base64 encoding
func Envelope(raw []byte) (*rpc.TransactionResultEnvelope, error) {
	encoded, err := json.Marshal([]string{base64.StdEncoding.EncodeToString(raw), "base64"})
	if nil != err {
		return nil, err
	}
	envelope := &rpc.TransactionResultEnvelope{}
	err = json.Unmarshal(encoded, envelope)
	if nil != err {
		return nil, err
	}
	return envelope, nil
}

// SetupTestLogger - log to a scratch directory, critical only
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}
