// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/orecollective/fault"
)

// defaults for a client
const (
	DefaultRequestsPerSecond = 10
	DefaultTimeout           = 30 * time.Second
)

// Configuration - connection details for a ledger node
type Configuration struct {
	URL               string        `gluamapper:"url" json:"url"`
	SendURL           string        `gluamapper:"send_url" json:"send_url"`
	RequestsPerSecond float64       `gluamapper:"requests_per_second" json:"requests_per_second"`
	Timeout           time.Duration `gluamapper:"-" json:"-"`
}

// Client - JSON-RPC connection to a ledger node
//
// safe for concurrent use; all requests share one rate limiter
type Client struct {
	query *rpc.Client
	send  *rpc.Client
	log   *logger.L
}

// NewClient - create a client for a node
//
// transactions are sent to SendURL when set, so that submission can
// go to a dedicated relay while queries use the normal node
func NewClient(configuration *Configuration, log *logger.L) (*Client, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	if "" == configuration.URL {
		return nil, fault.InvalidError("node url is empty")
	}

	sendURL := configuration.SendURL
	if "" == sendURL {
		sendURL = configuration.URL
	}

	rps := configuration.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}

	timeout := configuration.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	log.Infof("node: %s  send: %s  requests per second: %g", configuration.URL, sendURL, rps)

	limiter := rate.NewLimiter(rate.Limit(rps), 1)
	httpClient := &http.Client{Timeout: timeout}

	connect := func(url string) *rpc.Client {
		conn := jsonrpc.NewClientWithOpts(url, &jsonrpc.RPCClientOpts{
			HTTPClient: httpClient,
		})
		return rpc.NewWithCustomRPCClient(&limitedConn{
			conn:    conn,
			limiter: limiter,
			log:     log,
		})
	}

	return &Client{
		query: connect(configuration.URL),
		send:  connect(sendURL),
		log:   log,
	}, nil
}
