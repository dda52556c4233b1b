// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instruction

import (
	"bytes"
	"crypto/sha256"
)

// action names understood by the collective program
const (
	ActionClaim    = "claim"
	ActionMine     = "mine"
	ActionRegister = "register"
)

// DiscriminatorSize - bytes of action tag at the start of the data
const DiscriminatorSize = 8

// Discriminator - the action tag: first 8 bytes of
// sha256("global:" + name)
func Discriminator(name string) [DiscriminatorSize]byte {
	h := sha256.Sum256([]byte("global:" + name))
	d := [DiscriminatorSize]byte{}
	copy(d[:], h[:DiscriminatorSize])
	return d
}

// Action - name of the collective action encoded in data, or empty
// if the tag is not recognised
func Action(data []byte) string {
	if len(data) < DiscriminatorSize {
		return ""
	}
	for _, name := range []string{ActionRegister, ActionMine, ActionClaim} {
		d := Discriminator(name)
		if bytes.Equal(d[:], data[:DiscriminatorSize]) {
			return name
		}
	}
	return ""
}
