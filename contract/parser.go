// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import (
	"context"
	"fmt"
	"math/big"
	"slices"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/abikit/abi"
)

const fetchConcurrency = 4

// EventFilter narrows the logs an EventParser considers.
type EventFilter struct {
	// FromBlock and ToBlock bound the block range, nil means unbounded.
	FromBlock *big.Int
	ToBlock   *big.Int
	// Addresses restricts the emitting contracts. Empty means the contract
	// address when known, else any address.
	Addresses []common.Address
	// Topics lists accepted values per indexed argument, in declaration
	// order. A nil or empty entry matches anything.
	Topics [][]any
	// BatchSize splits a bounded range into windows of this many blocks.
	BatchSize uint64
}

// Event is a decoded log.
type Event struct {
	Name   string
	Fields map[string]any
	Log    types.Log
}

// EventParser scans logs of one event.
type EventParser struct {
	event  *abi.Event
	filter EventFilter
	topics [][]common.Hash
}

// CreateEventParser returns a parser for the named event. filter may be nil.
func (c *Contract) CreateEventParser(name string, filter *EventFilter) (*EventParser, error) {
	ev, ok := c.desc.abi.EventByName(name)
	if !ok {
		return nil, &abi.EventNotFoundError{Name: name}
	}

	var f EventFilter
	if filter != nil {
		f = *filter
		f.Addresses = slices.Clone(filter.Addresses)
	}
	if len(f.Addresses) == 0 {
		if addr := c.desc.Address(); addr != nil {
			f.Addresses = []common.Address{*addr}
		}
	}

	indexed := 0
	for _, arg := range ev.Inputs() {
		if arg.Indexed {
			indexed++
		}
	}
	if len(f.Topics) > indexed {
		return nil, fmt.Errorf("event %s has %d indexed args, got %d topic filters", name, indexed, len(f.Topics))
	}
	topics, err := ethabi.MakeTopics(f.Topics...)
	if err != nil {
		return nil, err
	}
	if !ev.Anonymous() {
		topics = append([][]common.Hash{{ev.ID()}}, topics...)
	}
	// trailing wildcards add nothing to the query
	for len(topics) > 0 && len(topics[len(topics)-1]) == 0 {
		topics = topics[:len(topics)-1]
	}

	return &EventParser{event: ev, filter: f, topics: topics}, nil
}

// Event returns the scanned event.
func (p *EventParser) Event() *abi.Event {
	return p.event
}

// Query returns the log filter query of this parser.
func (p *EventParser) Query() ethereum.FilterQuery {
	return p.query(p.filter.FromBlock, p.filter.ToBlock)
}

func (p *EventParser) query(from, to *big.Int) ethereum.FilterQuery {
	q := ethereum.FilterQuery{
		FromBlock: from,
		ToBlock:   to,
		Addresses: slices.Clone(p.filter.Addresses),
		Topics:    make([][]common.Hash, len(p.topics)),
	}
	for i, t := range p.topics {
		q.Topics[i] = slices.Clone(t)
	}
	return q
}

// Match reports whether log satisfies the address and topic filters.
func (p *EventParser) Match(log *types.Log) bool {
	if len(p.filter.Addresses) > 0 && !slices.Contains(p.filter.Addresses, log.Address) {
		return false
	}
	if len(log.Topics) < len(p.topics) {
		return false
	}
	for i, accepted := range p.topics {
		if len(accepted) > 0 && !slices.Contains(accepted, log.Topics[i]) {
			return false
		}
	}
	return true
}

// ParseLogs decodes the logs matching this parser, skipping the rest.
func (p *EventParser) ParseLogs(logs []types.Log) []Event {
	var events []Event
	for _, log := range logs {
		if !p.Match(&log) {
			continue
		}
		fields, err := p.event.Decode(log.Topics, log.Data)
		if err != nil {
			logger.Trace("skip undecodable log", "event", p.event.Name(), "tx", log.TxHash, "err", err)
			continue
		}
		events = append(events, Event{Name: p.event.Name(), Fields: fields, Log: log})
	}
	return events
}

// Fetch queries src for the logs of this parser and decodes them. A bounded
// range with a batch size is fetched in concurrent windows; events are
// returned in block order.
func (p *EventParser) Fetch(ctx context.Context, src ethereum.LogFilterer) ([]Event, error) {
	return p.FetchWithProgress(ctx, src, nil)
}

// FetchWithProgress is Fetch reporting each completed window to progress,
// which may be nil. Calls to progress are serialized.
func (p *EventParser) FetchWithProgress(ctx context.Context, src ethereum.LogFilterer, progress func(done, total int)) ([]Event, error) {
	windows := p.windows()

	var (
		mu   sync.Mutex
		done int
	)

	start := time.Now()
	results := make([][]types.Log, len(windows))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, w := range windows {
		g.Go(func() error {
			logs, err := src.FilterLogs(ctx, w)
			if err != nil {
				return fmt.Errorf("filter logs [%v, %v]: %w", w.FromBlock, w.ToBlock, err)
			}
			results[i] = logs
			if progress != nil {
				mu.Lock()
				done++
				progress(done, len(windows))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	metricFetchDuration().Observe(time.Since(start).Milliseconds())

	var events []Event
	for _, logs := range results {
		events = append(events, p.ParseLogs(logs)...)
	}
	logger.Debug("fetched events", "event", p.event.Name(), "windows", len(windows), "count", len(events))
	return events, nil
}

func (p *EventParser) windows() []ethereum.FilterQuery {
	from, to, size := p.filter.FromBlock, p.filter.ToBlock, p.filter.BatchSize
	if size == 0 || from == nil || to == nil || from.Cmp(to) > 0 {
		return []ethereum.FilterQuery{p.query(from, to)}
	}

	var (
		windows []ethereum.FilterQuery
		step    = new(big.Int).SetUint64(size)
		one     = big.NewInt(1)
	)
	for lo := new(big.Int).Set(from); lo.Cmp(to) <= 0; lo = new(big.Int).Add(lo, step) {
		hi := new(big.Int).Add(lo, step)
		hi.Sub(hi, one)
		if hi.Cmp(to) > 0 {
			hi.Set(to)
		}
		windows = append(windows, p.query(new(big.Int).Set(lo), hi))
	}
	return windows
}
