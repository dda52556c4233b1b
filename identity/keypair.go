// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"bytes"
	"os"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/orecollective/fault"
)

// Signer - anything able to authorise a transaction for an identity
type Signer interface {
	Public() Identity
	PrivateKey() solana.PrivateKey
}

// KeyPair - an ed25519 key pair
type KeyPair struct {
	key solana.PrivateKey
}

// KeyPairFromSeed - build a key pair from a 32 byte seed
func KeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if ed25519.SeedSize != len(seed) {
		return nil, fault.ErrInvalidKeyFile
	}
	return &KeyPair{
		key: solana.PrivateKey(ed25519.NewKeyFromSeed(seed)),
	}, nil
}

// KeyPairFromBytes - build a key pair from the 64 byte private key
// (seed followed by public key)
func KeyPairFromBytes(b []byte) (*KeyPair, error) {
	if ed25519.PrivateKeySize != len(b) {
		return nil, fault.ErrInvalidKeyFile
	}
	kp, err := KeyPairFromSeed(b[:ed25519.SeedSize])
	if nil != err {
		return nil, err
	}

	// the embedded public key must match the seed
	if !bytes.Equal(kp.key[ed25519.SeedSize:], b[ed25519.SeedSize:]) {
		return nil, fault.ErrInvalidKeyFile
	}
	return kp, nil
}

// KeyPairFromFile - read a key file holding a JSON array of the
// 64 private key bytes, as written by the ledger's command line tools
func KeyPairFromFile(fileName string) (*KeyPair, error) {
	data, err := os.ReadFile(fileName)
	if nil != err {
		return nil, err
	}

	key, err := solana.PrivateKeyFromSolanaKeygenFileBytes(data)
	if nil != err {
		return nil, fault.ErrInvalidKeyFile
	}
	return KeyPairFromBytes(key)
}

// Public - the identity controlled by this key pair
func (kp *KeyPair) Public() Identity {
	return kp.key.PublicKey()
}

// PrivateKey - the 64 byte ledger form of the key
func (kp *KeyPair) PrivateKey() solana.PrivateKey {
	return kp.key
}

// Sign - ed25519 signature over the message
func (kp *KeyPair) Sign(message []byte) (Signature, error) {
	return kp.key.Sign(message)
}

// Verify - check a signature made by the identity
func Verify(id Identity, message []byte, signature Signature) bool {
	return id.Verify(message, signature)
}
