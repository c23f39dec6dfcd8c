// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/vechain/abikit/abi"
	"github.com/vechain/abikit/contract"
	"github.com/vechain/abikit/options"
)

func parseBlockFlag(ctx *cli.Context, flag cli.StringFlag) (*big.Int, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return nil, nil
	}
	n, err := options.ParseQuantity(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", flag.Name, err)
	}
	return n, nil
}

// parseTopicFilters converts one -topic value per indexed argument into
// accepted values. An empty value accepts anything.
func parseTopicFilters(ev *abi.Event, values []string) ([][]any, error) {
	var (
		filters [][]any
		pos     int
	)
	for _, arg := range ev.Inputs() {
		if !arg.Indexed {
			continue
		}
		if pos >= len(values) {
			break
		}
		var accepted []any
		for _, s := range strings.Split(values[pos], ",") {
			if s = strings.TrimSpace(s); s == "" {
				continue
			}
			v, err := abi.ParseArg(arg.Type, s)
			if err != nil {
				return nil, fmt.Errorf("topic %d (%s): %w", pos, arg.Name, err)
			}
			accepted = append(accepted, v)
		}
		filters = append(filters, accepted)
		pos++
	}
	if pos < len(values) {
		return nil, fmt.Errorf("event %s has %d indexed args, got %d topic filters", ev.Name(), pos, len(values))
	}
	return filters, nil
}

func logsAction(ctx *cli.Context) error {
	t, err := loadTarget(ctx)
	if err != nil {
		return err
	}
	name := ctx.Args().First()
	if name == "" {
		return errors.New("event required")
	}
	ev, ok := t.contract.ABI().EventByName(name)
	if !ok {
		return &abi.EventNotFoundError{Name: name}
	}

	filter := contract.EventFilter{BatchSize: ctx.Uint64(batchSizeFlag.Name)}
	if filter.FromBlock, err = parseBlockFlag(ctx, fromBlockFlag); err != nil {
		return err
	}
	if filter.ToBlock, err = parseBlockFlag(ctx, toBlockFlag); err != nil {
		return err
	}
	if filter.Topics, err = parseTopicFilters(ev, ctx.StringSlice(topicFlag.Name)); err != nil {
		return err
	}
	parser, err := t.contract.CreateEventParser(name, &filter)
	if err != nil {
		return err
	}

	exitCtx := handleExitSignal()
	client, err := ethclient.DialContext(exitCtx, ctx.String(rpcFlag.Name))
	if err != nil {
		return fmt.Errorf("dial %s: %w", ctx.String(rpcFlag.Name), err)
	}
	defer client.Close()

	var bar *pb.ProgressBar
	progress := func(done, total int) {
		if total < 2 || !isatty.IsTerminal(os.Stderr.Fd()) {
			return
		}
		if bar == nil {
			bar = pb.New(total).SetMaxWidth(90)
			bar.Output = os.Stderr
			bar.Start()
		}
		bar.Set(done)
	}
	events, err := parser.FetchWithProgress(exitCtx, client, progress)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	out := make([]eventOutput, 0, len(events))
	for _, e := range events {
		hash := e.Log.TxHash
		out = append(out, eventOutput{
			Event:       e.Name,
			Fields:      abi.FormatValues(e.Fields),
			BlockNumber: e.Log.BlockNumber,
			TxHash:      &hash,
			LogIndex:    e.Log.Index,
		})
	}
	logger.Info("fetched logs", "event", name, "count", len(out))
	return printJSON(ctx.App.Writer, out)
}
