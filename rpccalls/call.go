// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bitmark-inc/logger"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/orecollective/fault"
)

// limitedConn - the JSON-RPC connection under the ledger client
//
// every call waits on the shared limiter and every failure leaves
// here already classified as transport, remote or unexpected
type limitedConn struct {
	conn    jsonrpc.RPCClient
	limiter *rate.Limiter
	log     *logger.L
}

func (l *limitedConn) CallForInto(ctx context.Context, out interface{}, method string, params []interface{}) error {
	err := l.limiter.Wait(ctx)
	if nil != err {
		return fault.NewTransportError(method, err)
	}

	l.log.Debugf("rpc call with: %s", method)

	err = l.conn.CallForInto(ctx, out, method, params)
	if nil != err {
		l.log.Debugf("rpc: %s  error: %v", method, err)
		return classify(method, err)
	}
	return nil
}

func (l *limitedConn) CallWithCallback(ctx context.Context, method string, params []interface{}, callback func(*http.Request, *http.Response) error) error {
	err := l.limiter.Wait(ctx)
	if nil != err {
		return fault.NewTransportError(method, err)
	}

	l.log.Debugf("rpc call with: %s", method)

	err = l.conn.CallWithCallback(ctx, method, params, callback)
	if nil != err {
		return classify(method, err)
	}
	return nil
}

func (l *limitedConn) CallBatch(ctx context.Context, requests jsonrpc.RPCRequests) (jsonrpc.RPCResponses, error) {
	err := l.limiter.Wait(ctx)
	if nil != err {
		return nil, fault.NewTransportError("batch", err)
	}

	l.log.Debugf("rpc batch of: %d", len(requests))

	responses, err := l.conn.CallBatch(ctx, requests)
	if nil != err {
		return nil, classify("batch", err)
	}
	return responses, nil
}

// classify - map a JSON-RPC client failure to the fault classes
//
// nodes answer JSON-RPC errors inside a normal response; an HTTP
// status without a JSON-RPC body is the transport (proxy, rate limit,
// overload) failing
func classify(method string, err error) error {
	var remote *jsonrpc.RPCError
	if errors.As(err, &remote) {
		return &fault.RPCError{
			Code:    remote.Code,
			Message: remote.Message,
		}
	}

	var status *jsonrpc.HTTPError
	var network *url.Error
	if errors.As(err, &status) || errors.As(err, &network) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fault.NewTransportError(method, err)
	}

	return fmt.Errorf("%w: %s: %v", fault.ErrUnexpectedRPCResponse, method, err)
}

// settle - errors from the ledger client that did not pass through
// the connection (not found, reply shape) become unexpected responses
func settle(method string, err error) error {
	if fault.IsErrTransport(err) || fault.IsErrProcess(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", fault.ErrUnexpectedRPCResponse, method, err)
}
