// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"
)

type metadata struct {
	file    string
	config  *Configuration
	verbose bool
	ctx     context.Context
	log     *logger.L
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp()
	app.Name = "collective-cli"
	app.Usage = "register miners, submit solutions and claim rewards through the ORE miner collective"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "collective-cli.conf",
			Usage: " configuration `FILE`",
		},
	}

	waitFlag := cli.BoolFlag{
		Name:  "wait, w",
		Usage: " wait for the receipt and report the outcome",
	}
	indexFlag := cli.IntFlag{
		Name:  "index, i",
		Value: 0,
		Usage: " miner `INDEX` [0..255]",
	}

	app.Commands = []cli.Command{
		{
			Name:      "derive",
			Usage:     "show the addresses of a miner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				indexFlag,
				cli.StringFlag{
					Name:  "authority, a",
					Value: "",
					Usage: " authority `ADDRESS` [default: key file]",
				},
			},
			Action: runDerive,
		},
		{
			Name:      "register",
			Usage:     "register a miner, optionally with its first solution",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				indexFlag,
				cli.BoolFlag{
					Name:  "solve, s",
					Usage: " search a nonce and mine it in the same transaction",
				},
				waitFlag,
			},
			Action: runRegister,
		},
		{
			Name:      "mine",
			Usage:     "search nonces for miners and submit them in one batch",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.IntSliceFlag{
					Name:  "index, i",
					Usage: "*miner `INDEX`, may be repeated",
				},
				cli.StringFlag{
					Name:  "nonce, n",
					Value: "",
					Usage: " submit `NONCE` for a single miner instead of searching",
				},
				cli.Uint64Flag{
					Name:  "start",
					Value: 0,
					Usage: " first `NONCE` to search",
				},
				cli.BoolFlag{
					Name:  "auto-bus, a",
					Usage: " select the richest bus instead of the configured one",
				},
				waitFlag,
			},
			Action: runMine,
		},
		{
			Name:      "claim",
			Usage:     "claim rewards of a miner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				indexFlag,
				cli.Uint64Flag{
					Name:  "amount, m",
					Value: 0,
					Usage: "*amount to claim `GRAINS`",
				},
				cli.StringFlag{
					Name:  "beneficiary, b",
					Value: "",
					Usage: " token account `ADDRESS` [default: associated token account]",
				},
				waitFlag,
			},
			Action: runClaim,
		},
		{
			Name:      "proof",
			Usage:     "show the proof of a miner and the treasury",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				indexFlag,
			},
			Action: runProof,
		},
		{
			Name:      "receipt",
			Usage:     "fetch and interpret the receipt of a transaction",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "signature, s",
					Value: "",
					Usage: "*transaction `SIGNATURE`",
				},
				cli.StringFlag{
					Name:  "commitment",
					Value: "",
					Usage: " `LEVEL` [confirmed|finalized]",
				},
				waitFlag,
			},
			Action: runReceipt,
		},
		{
			Name:      "status",
			Usage:     "show the confirmation status of transactions",
			ArgsUsage: "SIGNATURE...",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "history",
					Usage: " search the full transaction history",
				},
			},
			Action: runStatus,
		},
		{
			Name:      "pending",
			Usage:     "list journalled requests whose outcome is unknown",
			ArgsUsage: " ",
			Flags:     []cli.Flag{},
			Action:    runPending,
		},
		{
			Name:      "version",
			Usage:     "display collective-cli version",
			ArgsUsage: " ",
			Flags:     []cli.Flag{},
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "" == command || "version" == command || "help" == command {
			return nil
		}

		file := c.GlobalString("config-file")
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		conf, err := getConfiguration(file, nil)
		if nil != err {
			return err
		}

		// start logging
		err = logger.Initialise(conf.Logging)
		if nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			file:    file,
			config:  conf,
			verbose: verbose,
			ctx:     ctx,
			log:     logger.New("main"),
			e:       e,
			w:       w,
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		if _, ok := c.App.Metadata["config"].(*metadata); ok {
			logger.Finalise()
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("%s: terminated with error: %s", app.Name, err)
	}
}
