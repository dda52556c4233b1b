// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collective_test

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gagliardetto/solana-go/rpc"

	"github.com/bitmark-inc/orecollective/chain"
	"github.com/bitmark-inc/orecollective/fixtures"
	"github.com/bitmark-inc/orecollective/identity"
	"github.com/bitmark-inc/orecollective/instruction"
	"github.com/bitmark-inc/orecollective/rpccalls"
	"github.com/bitmark-inc/orecollective/transaction"
)

type ledgerRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type ledgerAccount struct {
	owner identity.Identity
	data  []byte
}

// an in-memory ledger that "executes" collective transactions:
// a mine fails when one of its nonces was already used
type ledger struct {
	sync.Mutex
	ids       *chain.Identities
	accounts  map[identity.Identity]ledgerAccount
	executed  map[identity.Signature]*rpccalls.TransactionReply
	used      map[string]bool
	sent      []*transaction.Transaction
	options   []rpccalls.SendOptions
	hidePolls int
	polls     map[identity.Signature]int
	slot      uint64
	onSend    func()
}

func newLedger(ids *chain.Identities) *ledger {
	return &ledger{
		ids:      ids,
		accounts: make(map[identity.Identity]ledgerAccount),
		executed: make(map[identity.Signature]*rpccalls.TransactionReply),
		used:     make(map[string]bool),
		polls:    make(map[identity.Signature]int),
		slot:     250000000,
	}
}

func (l *ledger) setAccount(address identity.Identity, owner identity.Identity, data []byte) {
	l.Lock()
	defer l.Unlock()
	l.accounts[address] = ledgerAccount{owner: owner, data: data}
}

func (l *ledger) sentCount() int {
	l.Lock()
	defer l.Unlock()
	return len(l.sent)
}

func (l *ledger) lastSent() (*transaction.Transaction, rpccalls.SendOptions) {
	l.Lock()
	defer l.Unlock()
	return l.sent[len(l.sent)-1], l.options[len(l.options)-1]
}

func (l *ledger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var req ledgerRequest
	_ = json.Unmarshal(body, &req)

	l.Lock()
	result, rpcErr := l.handle(req)
	l.Unlock()

	reply := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      req.ID,
	}
	if nil != rpcErr {
		reply["error"] = rpcErr
	} else {
		reply["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reply)
}

func (l *ledger) handle(req ledgerRequest) (interface{}, map[string]interface{}) {
	switch req.Method {
	case "getLatestBlockhash":
		return map[string]interface{}{
			"context": map[string]interface{}{"slot": l.slot},
			"value": map[string]interface{}{
				"blockhash":            fixtures.Blockhash,
				"lastValidBlockHeight": l.slot + 150,
			},
		}, nil

	case "sendTransaction":
		var encoded string
		var options rpccalls.SendOptions
		_ = json.Unmarshal(req.Params[0], &encoded)
		_ = json.Unmarshal(req.Params[1], &options)
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if nil != err {
			return nil, invalidParams(err)
		}
		tx, err := transaction.Unpack(raw)
		if nil != err {
			return nil, invalidParams(err)
		}
		if !tx.Verify() {
			return nil, invalidParams(fmt.Errorf("signature verification failed"))
		}
		l.sent = append(l.sent, tx)
		l.options = append(l.options, options)
		l.slot += 1
		executed, err := l.execute(tx, raw)
		if nil != err {
			return nil, invalidParams(err)
		}
		l.executed[tx.ID()] = executed
		if nil != l.onSend {
			l.onSend()
		}
		return tx.ID().String(), nil

	case "getTransaction":
		var s string
		_ = json.Unmarshal(req.Params[0], &s)
		sig, err := identity.SignatureFromBase58(s)
		if nil != err {
			return nil, invalidParams(err)
		}
		l.polls[sig] += 1
		reply, ok := l.executed[sig]
		if !ok || l.polls[sig] <= l.hidePolls {
			return nil, nil
		}
		return reply, nil

	case "getSignatureStatuses":
		var sigs []string
		_ = json.Unmarshal(req.Params[0], &sigs)
		statuses := make([]interface{}, len(sigs))
		for i, s := range sigs {
			sig, _ := identity.SignatureFromBase58(s)
			if reply, ok := l.executed[sig]; ok {
				statuses[i] = map[string]interface{}{
					"slot":               reply.Slot,
					"confirmations":      nil,
					"err":                reply.Meta.Err,
					"confirmationStatus": "finalized",
				}
			}
		}
		return map[string]interface{}{
			"context": map[string]interface{}{"slot": l.slot},
			"value":   statuses,
		}, nil

	case "getAccountInfo":
		var s string
		_ = json.Unmarshal(req.Params[0], &s)
		address, err := identity.FromBase58(s)
		if nil != err {
			return nil, invalidParams(err)
		}
		value := interface{}(nil)
		if a, ok := l.accounts[address]; ok {
			value = map[string]interface{}{
				"lamports":   1461600,
				"owner":      a.owner.String(),
				"data":       []string{base64.StdEncoding.EncodeToString(a.data), "base64"},
				"executable": false,
				"rentEpoch":  0,
			}
		}
		return map[string]interface{}{
			"context": map[string]interface{}{"slot": l.slot},
			"value":   value,
		}, nil
	}
	return nil, map[string]interface{}{"code": -32601, "message": "Method not found"}
}

func invalidParams(err error) map[string]interface{} {
	return map[string]interface{}{"code": -32602, "message": err.Error()}
}

// run the collective instructions of tx and build its receipt
func (l *ledger) execute(tx *transaction.Transaction, raw []byte) (*rpccalls.TransactionReply, error) {
	m := tx.Message
	envelope, err := fixtures.Envelope(raw)
	if nil != err {
		return nil, err
	}

	oreIndex := -1
	for i, k := range m.AccountKeys {
		if k == l.ids.OreProgram {
			oreIndex = i
		}
	}

	logs := make([]string, 0, 8)
	inner := make([]rpccalls.InnerInstructions, 0, 2)
	failure := json.RawMessage("null")

	for n, ci := range m.Instructions {
		program := m.AccountKeys[ci.ProgramIDIndex]
		if program != l.ids.CollectiveProgram {
			continue
		}
		logs = append(logs, "Program "+program.String()+" invoke [1]")

		switch instruction.Action(ci.Data) {
		case instruction.ActionRegister:
			logs = append(logs, "Program log: Instruction: Register")

		case instruction.ActionMine:
			logs = append(logs, "Program log: Instruction: Mine")
			count := int(binary.LittleEndian.Uint32(ci.Data[8:]))
			for i := 0; i < count; i += 1 {
				s := ci.Data[12+10*i:]
				miner := m.AccountKeys[ci.Accounts[5+2*i]]
				key := fmt.Sprintf("%s:%d", miner, binary.LittleEndian.Uint64(s[2:]))
				if l.used[key] {
					logs = append(logs, "Program log: Error: hash already submitted")
					failure = json.RawMessage(fmt.Sprintf(`{"InstructionError":[%d,{"Custom":3}]}`, n))
					break
				}
				l.used[key] = true
			}
			if "null" == string(failure) {
				logs = append(logs, fmt.Sprintf("Program log: Reward: %d", 41264000*count))
				if oreIndex >= 0 {
					height := uint16(2)
					inner = append(inner, rpccalls.InnerInstructions{
						Index: uint16(n),
						Instructions: []rpccalls.InnerInstruction{
							{ProgramIDIndex: uint16(oreIndex), Accounts: []uint16{0}, Data: []byte{3}, StackHeight: &height},
						},
					})
				}
			}

		case instruction.ActionClaim:
			logs = append(logs, "Program log: Instruction: Claim")
		}

		if "null" == string(failure) {
			logs = append(logs, "Program "+program.String()+" success")
		} else {
			logs = append(logs, "Program "+program.String()+" failed: custom program error: 0x3")
			inner = inner[:0]
			break
		}
	}

	pre := make([]uint64, len(m.AccountKeys))
	post := make([]uint64, len(m.AccountKeys))
	pre[0] = 1000000000
	post[0] = pre[0] - 5000

	return &rpccalls.TransactionReply{
		Slot: l.slot,
		Meta: &rpccalls.TransactionMeta{
			Err:               failure,
			Fee:               5000,
			PreBalances:       pre,
			PostBalances:      post,
			InnerInstructions: inner,
			LogMessages:       logs,
			LoadedAddresses:   rpc.LoadedAddresses{},
		},
		Transaction: envelope,
	}, nil
}

// run f after each accepted transaction, with the ledger locked
func (l *ledger) setOnSend(f func()) {
	l.Lock()
	defer l.Unlock()
	l.onSend = f
}

// hide the receipt of every transaction for the first n polls
func (l *ledger) setHidePolls(n int) {
	l.Lock()
	defer l.Unlock()
	l.hidePolls = n
}
