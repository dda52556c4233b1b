// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package receipt_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/orecollective/chain"
	"github.com/bitmark-inc/orecollective/fault"
	"github.com/bitmark-inc/orecollective/fixtures"
	"github.com/bitmark-inc/orecollective/identity"
	"github.com/bitmark-inc/orecollective/instruction"
	"github.com/bitmark-inc/orecollective/mocks"
	"github.com/bitmark-inc/orecollective/receipt"
	"github.com/bitmark-inc/orecollective/rpccalls"
)

var testSignature = identity.Signature{
	0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
}

func mainnet(t *testing.T) *chain.Identities {
	ids, err := chain.Defaults(chain.Mainnet)
	assert.Nil(t, err, "chain defaults")
	return ids
}

// a mine transaction: authority pays, the ORE program moves tokens
func mineReply(t *testing.T, failure string) *rpccalls.TransactionReply {
	ids := mainnet(t)
	blockTime := solana.UnixTimeSeconds(1700000000)
	units := uint64(10423)
	height := uint16(2)

	logs := []string{
		"Program " + ids.CollectiveProgram.String() + " invoke [1]",
		"Program log: Instruction: Mine",
		"Program " + ids.OreProgram.String() + " invoke [2]",
		"Program log: Reward: 41264000",
		"Program " + ids.OreProgram.String() + " success",
		"Program " + ids.CollectiveProgram.String() + " success",
	}
	if "" != failure {
		logs = []string{
			"Program " + ids.CollectiveProgram.String() + " invoke [1]",
			"Program log: Instruction: Mine",
			"Program log: Error: invalid hash",
			"Program " + ids.CollectiveProgram.String() + " failed: custom program error: 0x3",
		}
	}

	meta := &rpccalls.TransactionMeta{
		Err:          json.RawMessage("null"),
		Fee:          5000,
		PreBalances:  []uint64{1000000, 0, 890880},
		PostBalances: []uint64{995000, 0, 890880},
		LogMessages:  logs,
		InnerInstructions: []rpccalls.InnerInstructions{
			{
				Index: 0,
				Instructions: []rpccalls.InnerInstruction{
					{
						ProgramIDIndex: 3,
						Accounts:       []uint16{1, 2},
						Data:           solana.Base58{0x01, 0x02, 0x03},
						StackHeight:    &height,
					},
				},
			},
		},
		ComputeUnitsConsumed: &units,
	}
	if "" != failure {
		meta.Err = json.RawMessage(failure)
		meta.InnerInstructions = []rpccalls.InnerInstructions{}
	}

	// compiles to the keys authority, miner, proof, ORE program
	tx, err := fixtures.SignedTransaction(&instruction.Instruction{
		Program: ids.OreProgram,
		Accounts: []instruction.AccountMeta{
			{Identity: identity.MustFromBase58(fixtures.Miner0Address), Writable: true},
			{Identity: identity.MustFromBase58(fixtures.Proof0Address), Writable: true},
		},
		Data: instruction.Packed{0x01},
	})
	assert.Nil(t, err, "transaction")
	raw, err := tx.Pack()
	assert.Nil(t, err, "pack")
	envelope, err := fixtures.Envelope(raw)
	assert.Nil(t, err, "envelope")

	return &rpccalls.TransactionReply{
		Slot:        250000000,
		BlockTime:   &blockTime,
		Meta:        meta,
		Transaction: envelope,
	}
}

func newInterpreter(t *testing.T, fetcher receipt.Fetcher) *receipt.Interpreter {
	i, err := receipt.New(fetcher, "", logger.New(fixtures.LogCategory))
	assert.Nil(t, err, "new interpreter")
	return i
}

func TestFetchSuccess(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ids := mainnet(t)
	f := mocks.NewMockFetcher(ctl)
	f.EXPECT().GetTransaction(gomock.Any(), testSignature, rpccalls.Confirmed).Return(mineReply(t, ""), true, nil).Times(1)

	r, err := newInterpreter(t, f).Fetch(context.Background(), testSignature, "")
	assert.Nil(t, err, "fetch")
	assert.Nil(t, r.Check(), "successful receipt reported failure")

	assert.True(t, r.Success, "wrong success")
	assert.Equal(t, "", r.Failure, "failure set")
	assert.Equal(t, uint64(250000000), r.Slot, "wrong slot")
	assert.Equal(t, int64(1700000000), r.BlockTime, "wrong block time")
	assert.Equal(t, uint64(5000), r.Fee, "wrong fee")
	assert.Equal(t, uint64(10423), r.ComputeUnits, "wrong compute units")
	assert.Equal(t, 6, len(r.Logs), "wrong log count")
	assert.Equal(t, []string{"Program log: Reward: 41264000"}, r.LogsContaining("Reward"), "reward line missing")

	assert.Equal(t, 3, len(r.Balances), "wrong balance count")
	assert.Equal(t, identity.MustFromBase58(fixtures.AuthorityAddress), r.Balances[0].Account, "wrong payer")
	assert.Equal(t, int64(-5000), r.Balances[0].Delta(), "wrong payer delta")
	assert.Equal(t, identity.MustFromBase58(fixtures.Proof0Address), r.Balances[2].Account, "wrong proof")

	assert.Equal(t, 1, len(r.InnerInstructions), "wrong inner instruction count")
	inner := r.InnerInstructions[0]
	assert.Equal(t, 0, inner.Parent, "wrong parent")
	assert.Equal(t, ids.OreProgram, inner.Program, "wrong inner program")
	assert.Equal(t, []identity.Identity{
		identity.MustFromBase58(fixtures.Miner0Address),
		identity.MustFromBase58(fixtures.Proof0Address),
	}, inner.Accounts, "wrong inner accounts")
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, inner.Data, "wrong inner data")
	assert.Equal(t, 2, inner.StackHeight, "wrong stack height")
	assert.True(t, r.Invoked(ids.OreProgram), "ORE program not invoked")
	assert.False(t, r.Invoked(ids.TokenProgram), "token program invoked")
}

func TestFetchFailureIsNotNotFound(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	failure := `{"InstructionError":[0,{"Custom":3}]}`
	f := mocks.NewMockFetcher(ctl)
	f.EXPECT().GetTransaction(gomock.Any(), testSignature, rpccalls.Finalized).Return(mineReply(t, failure), true, nil).Times(1)

	r, err := newInterpreter(t, f).Fetch(context.Background(), testSignature, rpccalls.Finalized)
	assert.Nil(t, err, "a failed execution is still a receipt")
	assert.False(t, r.Success, "wrong success")
	assert.Equal(t, failure, r.Failure, "wrong failure")
	assert.Equal(t, 0, len(r.LogsContaining("Reward")), "reward logged on failure")

	err = r.Check()
	assert.True(t, fault.IsErrExecution(err), "expected execution error: %v", err)
	assert.False(t, fault.IsErrNotFound(err), "execution failure classed as not found")

	var e *fault.ExecutionError
	assert.True(t, errors.As(err, &e), "not an execution error")
	assert.Equal(t, failure, e.Remote, "remote error lost")
	assert.Equal(t, testSignature.String(), e.Signature, "signature lost")
}

func TestFetchNotAvailable(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := mocks.NewMockFetcher(ctl)
	f.EXPECT().GetTransaction(gomock.Any(), testSignature, gomock.Any()).Return(nil, false, nil).Times(1)

	r, err := newInterpreter(t, f).Fetch(context.Background(), testSignature, "")
	assert.Nil(t, r, "receipt returned")
	assert.Equal(t, fault.ErrReceiptNotAvailable, err, "wrong error")
	assert.True(t, fault.IsErrNotFound(err), "not found class")
	assert.False(t, fault.IsErrExecution(err), "not available classed as execution failure")
}

func TestFetchTransportError(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := mocks.NewMockFetcher(ctl)
	f.EXPECT().GetTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, false, fault.NewTransportError("getTransaction", errors.New("EOF"))).Times(1)

	_, err := newInterpreter(t, f).Fetch(context.Background(), testSignature, "")
	assert.True(t, fault.IsErrTransport(err), "expected transport error: %v", err)
	assert.False(t, fault.IsErrNotFound(err), "transport error classed as not found")
}

func TestFetchLoadedAddresses(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ids := mainnet(t)
	reply := mineReply(t, "")
	reply.Meta.LoadedAddresses = rpc.LoadedAddresses{
		Writable: solana.PublicKeySlice{identity.MustFromBase58(fixtures.Miner1Address)},
		ReadOnly: solana.PublicKeySlice{ids.TokenProgram},
	}
	reply.Meta.InnerInstructions[0].Instructions[0].ProgramIDIndex = 5
	reply.Meta.InnerInstructions[0].Instructions[0].Accounts = []uint16{4}

	f := mocks.NewMockFetcher(ctl)
	f.EXPECT().GetTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(reply, true, nil).Times(1)

	r, err := newInterpreter(t, f).Fetch(context.Background(), testSignature, "")
	assert.Nil(t, err, "fetch")
	assert.Equal(t, ids.TokenProgram, r.InnerInstructions[0].Program, "lookup table program not resolved")
	assert.Equal(t, []identity.Identity{identity.MustFromBase58(fixtures.Miner1Address)}, r.InnerInstructions[0].Accounts, "lookup table account not resolved")
}

func TestFetchMalformed(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	badIndex := mineReply(t, "")
	badIndex.Meta.InnerInstructions[0].Instructions[0].ProgramIDIndex = 9

	badTransaction := mineReply(t, "")
	garbage, err := fixtures.Envelope([]byte{0x01, 0x02, 0x03})
	assert.Nil(t, err, "envelope")
	badTransaction.Transaction = garbage

	badBalances := mineReply(t, "")
	badBalances.Meta.PostBalances = badBalances.Meta.PostBalances[:1]

	f := mocks.NewMockFetcher(ctl)
	gomock.InOrder(
		f.EXPECT().GetTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(badIndex, true, nil),
		f.EXPECT().GetTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(badTransaction, true, nil),
		f.EXPECT().GetTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(badBalances, true, nil),
	)

	i := newInterpreter(t, f)
	for n := 0; n < 3; n += 1 {
		_, err := i.Fetch(context.Background(), testSignature, "")
		assert.True(t, errors.Is(err, fault.ErrUnexpectedRPCResponse), "%d: expected unexpected response: %v", n, err)
	}
}

func TestNewInterpreterErrors(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := mocks.NewMockFetcher(ctl)

	_, err := receipt.New(f, "", nil)
	assert.Equal(t, fault.ErrInvalidLoggerChannel, err, "nil logger accepted")

	_, err = receipt.New(nil, "", logger.New(fixtures.LogCategory))
	assert.Equal(t, fault.ErrNotInitialised, err, "nil fetcher accepted")

	_, err = receipt.New(f, rpccalls.Processed, logger.New(fixtures.LogCategory))
	assert.Equal(t, fault.ErrInvalidCommitment, err, "processed accepted")
}

func TestStatus(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	other := identity.Signature{0x09}
	failed := identity.Signature{0x0a}
	confirmations := uint64(3)

	var remote interface{}
	err := json.Unmarshal([]byte(`{"InstructionError":[1,{"Custom":1}]}`), &remote)
	assert.Nil(t, err, "remote error")

	f := mocks.NewMockFetcher(ctl)
	f.EXPECT().SignatureStatuses(gomock.Any(), []identity.Signature{testSignature, other, failed}, false).Return([]*rpccalls.SignatureStatus{
		{
			Slot:               100,
			Confirmations:      &confirmations,
			ConfirmationStatus: rpc.ConfirmationStatusConfirmed,
		},
		nil,
		{
			Slot:               101,
			Err:                remote,
			ConfirmationStatus: rpc.ConfirmationStatusFinalized,
		},
	}, nil).Times(1)

	s, err := newInterpreter(t, f).Status(context.Background(), false, testSignature, other, failed)
	assert.Nil(t, err, "status")
	assert.Equal(t, 3, len(s), "wrong count")

	assert.True(t, s[0].Known, "first unknown")
	assert.Equal(t, uint64(100), s[0].Slot, "wrong slot")
	assert.True(t, s[0].Reached(rpccalls.Confirmed), "confirmed not reached")
	assert.False(t, s[0].Reached(rpccalls.Finalized), "finalized reached")
	assert.Equal(t, "", s[0].Failure, "failure set")

	assert.False(t, s[1].Known, "second known")
	assert.Equal(t, other, s[1].Signature, "wrong signature")
	assert.False(t, s[1].Reached(rpccalls.Processed), "unknown reached processed")

	assert.True(t, s[2].Reached(rpccalls.Finalized), "finalized not reached")
	assert.Equal(t, `{"InstructionError":[1,{"Custom":1}]}`, s[2].Failure, "wrong failure")

	empty, err := newInterpreter(t, f).Status(context.Background(), true)
	assert.Nil(t, err, "empty status")
	assert.Equal(t, 0, len(empty), "empty status not empty")
}

func TestWaitPolicyValidate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	valid := []receipt.WaitPolicy{
		receipt.DefaultWaitPolicy,
		receipt.FixedDelay(10 * time.Second),
		{Initial: time.Millisecond, Multiplier: 1},
	}
	for n, p := range valid {
		assert.Nil(t, p.Validate(), "%d: valid policy rejected", n)
	}

	invalid := []receipt.WaitPolicy{
		{},
		{Initial: time.Second, Multiplier: 0.5},
		{Initial: time.Second, Maximum: time.Millisecond, Multiplier: 2},
		{Initial: time.Second, Multiplier: 2, Timeout: -1},
		{Initial: time.Second, Multiplier: 2, Attempts: -1},
	}
	for n, p := range invalid {
		assert.Equal(t, fault.ErrInvalidWaitPolicy, p.Validate(), "%d: invalid policy accepted", n)
	}
}
