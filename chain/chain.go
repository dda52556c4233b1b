// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all chains
const (
	Mainnet = "mainnet"
	Devnet  = "devnet"
	Local   = "local"
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Mainnet, Devnet, Local:
		return true
	default:
		return false
	}
}

// DefaultURL - public RPC endpoint for a chain
func DefaultURL(name string) string {
	switch name {
	case Mainnet:
		return "https://api.mainnet-beta.solana.com"
	case Devnet:
		return "https://api.devnet.solana.com"
	case Local:
		return "http://127.0.0.1:8899"
	default:
		return ""
	}
}
