// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the contract registry",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 16,
		Usage: "megabytes of ram allocated to the registry cache",
	}
	optionsFlag = cli.StringFlag{
		Name:  "options",
		Usage: "YAML file with default transaction options",
	}
	chainIDFlag = cli.StringFlag{
		Name:  "chain-id",
		Usage: "chain id stamped on built transactions (decimal or 0x-hex)",
	}

	abiFlag = cli.StringFlag{
		Name:  "abi",
		Usage: "ABI or compiler artifact file of the contract",
	}
	contractFlag = cli.StringFlag{
		Name:  "contract",
		Usage: "name of a registered contract",
	}
	addressFlag = cli.StringFlag{
		Name:  "address",
		Usage: "contract address, overrides the registered one",
	}
	bytecodeFlag = cli.StringFlag{
		Name:  "bytecode",
		Usage: "creation code in hex, overrides the artifact one",
	}
	extraDataFlag = cli.StringFlag{
		Name:  "extra-data",
		Usage: "hex data appended to the call or creation data",
	}
	nonceFlag = cli.StringFlag{
		Name:  "nonce",
		Usage: "finalize into a raw unsigned transaction with this nonce",
	}
	legacyKFlag = cli.IntFlag{
		Name:  "legacy-k",
		Usage: "probe count of a vechain legacy header bloom, 0 for an ethereum log bloom",
	}
	dataFlag = cli.StringFlag{
		Name:  "data",
		Usage: "hex data to decode",
	}
	outputFlag = cli.BoolFlag{
		Name:  "output",
		Usage: "decode return data instead of call data",
	}
	topicsFlag = cli.StringFlag{
		Name:  "topics",
		Usage: "comma separated log topics",
	}

	rpcFlag = cli.StringFlag{
		Name:  "rpc",
		Value: "http://localhost:8545",
		Usage: "JSON-RPC endpoint of the node",
	}
	fromBlockFlag = cli.StringFlag{
		Name:  "from",
		Usage: "first block of the range",
	}
	toBlockFlag = cli.StringFlag{
		Name:  "to",
		Usage: "last block of the range",
	}
	batchSizeFlag = cli.Uint64Flag{
		Name:  "batch",
		Value: 5000,
		Usage: "blocks per query when the range is bounded",
	}
	topicFlag = cli.StringSliceFlag{
		Name:  "topic",
		Usage: "accepted values of an indexed argument, one flag per argument in order, comma separated, empty for any",
	}

	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8670",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.Uint64Flag{
		Name:  "api-timeout",
		Value: 10000,
		Usage: "API request timeout value in milliseconds",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
)
