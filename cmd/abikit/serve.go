// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/abikit/api"
	"github.com/vechain/abikit/cmd/abikit/httpserver"
	"github.com/vechain/abikit/metrics"
)

func serveAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	reg, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing registry..."); reg.Close() }()

	client, err := newClient(ctx)
	if err != nil {
		return err
	}

	handler := api.New(reg, client, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})
	timeout := time.Duration(ctx.Uint64(apiTimeoutFlag.Name)) * time.Millisecond
	apiURL, stopAPI, err := httpserver.StartAPIServer(ctx.String(apiAddrFlag.Name), handler, timeout)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); stopAPI() }()

	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		url, stopMetrics, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); stopMetrics() }()
		metricsURL = url
	}

	printStartupMessage(ctx, apiURL, metricsURL)

	<-handleExitSignal().Done()
	return nil
}

func printStartupMessage(ctx *cli.Context, apiURL, metricsURL string) {
	if metricsURL == "" {
		metricsURL = "Disabled"
	}
	fmt.Fprintf(ctx.App.Writer, `Starting %v
    Registry   [ %v ]
    API portal [ %v ]
    Metrics    [ %v ]
`,
		ctx.App.Name+" "+ctx.App.Version,
		ctx.GlobalString(dataDirFlag.Name),
		apiURL,
		metricsURL)
}
