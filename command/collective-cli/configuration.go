// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/orecollective/chain"
	"github.com/bitmark-inc/orecollective/collective"
	"github.com/bitmark-inc/orecollective/configuration"
	"github.com/bitmark-inc/orecollective/instruction"
	"github.com/bitmark-inc/orecollective/receipt"
	"github.com/bitmark-inc/orecollective/rpccalls"
	"github.com/bitmark-inc/orecollective/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile     = "authority.json"
	defaultJournalFile = "journal.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "collective-cli.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRequestsPerSecond = 5.0
	defaultCommitment        = rpccalls.Confirmed
	defaultComputeUnitPrice  = 500099
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

type RPCType struct {
	URL               string  `gluamapper:"url" json:"url"`
	SendURL           string  `gluamapper:"send_url" json:"send_url"`
	RequestsPerSecond float64 `gluamapper:"requests_per_second" json:"requests_per_second"`
	TimeoutSeconds    int     `gluamapper:"timeout" json:"timeout"`
}

// all durations are in milliseconds except the overall timeout
type WaitType struct {
	Initial    int     `gluamapper:"initial" json:"initial"`
	Maximum    int     `gluamapper:"maximum" json:"maximum"`
	Multiplier float64 `gluamapper:"multiplier" json:"multiplier"`
	Timeout    int     `gluamapper:"timeout" json:"timeout"`
	Attempts   int     `gluamapper:"attempts" json:"attempts"`
}

type Configuration struct {
	DataDirectory    string               `gluamapper:"data_directory" json:"data_directory"`
	Chain            string               `gluamapper:"chain" json:"chain"`
	RPC              RPCType              `gluamapper:"rpc" json:"rpc"`
	KeyFile          string               `gluamapper:"key_file" json:"key_file"`
	Commitment       string               `gluamapper:"commitment" json:"commitment"`
	ComputeUnitLimit uint32               `gluamapper:"compute_unit_limit" json:"compute_unit_limit"`
	ComputeUnitPrice uint64               `gluamapper:"compute_unit_price" json:"compute_unit_price"`
	MaximumSolutions int                  `gluamapper:"maximum_solutions" json:"maximum_solutions"`
	Bus              int                  `gluamapper:"bus" json:"bus"`
	Workers          int                  `gluamapper:"workers" json:"workers"`
	Wait             WaitType             `gluamapper:"wait" json:"wait"`
	Journal          string               `gluamapper:"journal" json:"journal"`
	Identities       map[string]string    `gluamapper:"identities" json:"identities"`
	Logging          logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		Chain:         chain.Mainnet,
		RPC: RPCType{
			RequestsPerSecond: defaultRequestsPerSecond,
		},
		KeyFile:          defaultKeyFile,
		Commitment:       string(defaultCommitment),
		ComputeUnitPrice: defaultComputeUnitPrice,
		MaximumSolutions: instruction.DefaultMaximumSolutions,
		Journal:          defaultJournalFile,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	// abort if the chain name is not recognised
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("chain: %q is not supported", options.Chain)
	}
	if "" == options.RPC.URL {
		options.RPC.URL = chain.DefaultURL(options.Chain)
	}

	if _, err := rpccalls.ParseCommitment(options.Commitment); nil != err {
		return nil, fmt.Errorf("commitment: %q  error: %s", options.Commitment, err)
	}
	if options.Bus < 0 || options.Bus >= chain.BusCount {
		return nil, fmt.Errorf("bus: %d is out of range", options.Bus)
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.KeyFile,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank disables the journal
	if "" != options.Journal {
		options.Journal = util.EnsureAbsolute(options.DataDirectory, options.Journal)
	}

	// the log file must be a plain name
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fmt.Errorf("files: %q is not plain name", options.Logging.File)
	}

	// create directories if they do not already exist
	if err := util.EnsureDirectory(options.Logging.Directory); nil != err {
		return nil, err
	}

	// done
	return options, nil
}

// identities of the configured chain with any overrides applied
func (conf *Configuration) identities() (*chain.Identities, error) {
	ids, err := chain.Defaults(conf.Chain)
	if nil != err {
		return nil, err
	}
	err = ids.Override(conf.Identities)
	if nil != err {
		return nil, err
	}
	err = ids.Validate()
	if nil != err {
		return nil, err
	}
	return ids, nil
}

// node connection parameters
func (conf *Configuration) rpc() *rpccalls.Configuration {
	return &rpccalls.Configuration{
		URL:               conf.RPC.URL,
		SendURL:           conf.RPC.SendURL,
		RequestsPerSecond: conf.RPC.RequestsPerSecond,
		Timeout:           time.Duration(conf.RPC.TimeoutSeconds) * time.Second,
	}
}

// collective parameters; a zero wait keeps the default policy
func (conf *Configuration) collective() collective.Configuration {
	c := collective.Configuration{
		Commitment:       rpccalls.Commitment(conf.Commitment),
		ComputeUnitLimit: conf.ComputeUnitLimit,
		ComputeUnitPrice: conf.ComputeUnitPrice,
		MaximumSolutions: conf.MaximumSolutions,
		Bus:              uint8(conf.Bus),
		Workers:          conf.Workers,
	}
	if conf.Wait.Initial > 0 {
		c.Wait = receipt.WaitPolicy{
			Initial:    time.Duration(conf.Wait.Initial) * time.Millisecond,
			Maximum:    time.Duration(conf.Wait.Maximum) * time.Millisecond,
			Multiplier: conf.Wait.Multiplier,
			Timeout:    time.Duration(conf.Wait.Timeout) * time.Second,
			Attempts:   conf.Wait.Attempts,
		}
		if c.Wait.Maximum < c.Wait.Initial {
			c.Wait.Maximum = c.Wait.Initial
		}
		if c.Wait.Multiplier < 1 {
			c.Wait.Multiplier = 1
		}
	}
	return c
}
