// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/abikit/log"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "abikit")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	targetFlags := []cli.Flag{abiFlag, contractFlag, addressFlag}

	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "abikit"
	app.Usage = "Build, decode and match contract transactions and events"
	app.Copyright = "2025 VeChain Foundation <https://vechain.org/>"
	app.Flags = []cli.Flag{
		verbosityFlag,
		jsonLogsFlag,
		dataDirFlag,
		cacheFlag,
		optionsFlag,
		chainIDFlag,
	}
	app.Before = func(ctx *cli.Context) error {
		initLogger(ctx)
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:      "describe",
			Usage:     "list the functions and events of a contract",
			Flags:     targetFlags,
			Action:    describeAction,
			ArgsUsage: " ",
		},
		{
			Name:      "encode",
			Usage:     "build a call transaction",
			ArgsUsage: "<method|fallback|receive> [args...]",
			Flags:     append(targetFlags, extraDataFlag, nonceFlag),
			Action:    encodeAction,
		},
		{
			Name:      "deploy",
			Usage:     "build a contract creation transaction",
			ArgsUsage: "[constructor args...]",
			Flags:     append(targetFlags, bytecodeFlag, extraDataFlag, nonceFlag),
			Action:    deployAction,
		},
		{
			Name:      "finalize",
			Usage:     "finalize an encoded descriptor into a raw unsigned transaction",
			ArgsUsage: "<encoded>",
			Flags:     []cli.Flag{nonceFlag},
			Action:    finalizeAction,
		},
		{
			Name:      "decode",
			Usage:     "decode call data, or return data of a method with -output",
			ArgsUsage: "[method]",
			Flags:     append(targetFlags, dataFlag, outputFlag),
			Action:    decodeAction,
		},
		{
			Name:      "event",
			Usage:     "decode an event log",
			Flags:     append(targetFlags, topicsFlag, dataFlag),
			Action:    eventAction,
			ArgsUsage: " ",
		},
		{
			Name:      "bloom",
			Usage:     "test whether a header bloom may contain an event",
			ArgsUsage: "<event> <bloom>",
			Flags:     append(targetFlags, legacyKFlag),
			Action:    bloomAction,
		},
		{
			Name:      "logs",
			Usage:     "fetch and decode the logs of an event from a node",
			ArgsUsage: "<event>",
			Flags:     append(targetFlags, rpcFlag, fromBlockFlag, toBlockFlag, batchSizeFlag, topicFlag),
			Action:    logsAction,
		},
		{
			Name:  "registry",
			Usage: "manage registered contracts",
			Subcommands: []cli.Command{
				{
					Name:      "add",
					Usage:     "register a contract from an ABI or artifact file",
					ArgsUsage: "<name> <file>",
					Flags:     []cli.Flag{addressFlag},
					Action:    registryAddAction,
				},
				{
					Name:      "import",
					Usage:     "register artifacts under their contract names",
					ArgsUsage: "<file>...",
					Action:    registryImportAction,
				},
				{
					Name:   "list",
					Usage:  "list registered contracts",
					Action: registryListAction,
				},
				{
					Name:      "remove",
					Usage:     "remove a registered contract",
					ArgsUsage: "<name>",
					Action:    registryRemoveAction,
				},
			},
		},
		{
			Name:  "serve",
			Usage: "serve the registered contracts over HTTP",
			Flags: []cli.Flag{
				apiAddrFlag,
				apiCorsFlag,
				apiTimeoutFlag,
				enableAPILogsFlag,
				enableMetricsFlag,
				metricsAddrFlag,
			},
			Action: serveAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}
