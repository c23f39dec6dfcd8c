// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/abikit/abi"
	"github.com/vechain/abikit/bloom"
)

func transferLog(t *testing.T, c *Contract, from, to common.Address, value int64, block uint64) types.Log {
	t.Helper()
	ev, ok := c.ABI().EventByName("Transfer")
	require.True(t, ok)
	topics, err := ev.Topics(from, to)
	require.NoError(t, err)
	data, err := ev.Encode(big.NewInt(value))
	require.NoError(t, err)
	return types.Log{Address: tokenAddr, Topics: topics, Data: data, BlockNumber: block}
}

func TestTestBloomForEventPresence(t *testing.T) {
	c := newToken(t, &tokenAddr, nil)
	transfer, _ := c.ABI().EventByName("Transfer")

	var logBloom bloom.LogBloom
	id := transfer.ID()
	logBloom.Add(id[:])

	legacy, err := bloom.NewLegacyBloom(bloom.LegacyK(1))
	require.NoError(t, err)
	legacy.Add(id[:])

	var header types.Bloom
	header.Add(id[:])

	for _, f := range []bloom.Filter{&logBloom, legacy, header} {
		possible, declared := c.TestBloomForEventPresence("Transfer", f)
		assert.True(t, declared)
		assert.True(t, possible)
	}

	var empty bloom.LogBloom
	possible, declared := c.TestBloomForEventPresence("Approval", &empty)
	assert.True(t, declared)
	assert.False(t, possible)

	possible, declared = c.TestBloomForEventPresence("Trace", &empty)
	assert.True(t, declared)
	assert.True(t, possible)

	possible, declared = c.TestBloomForEventPresence("Unknown", &logBloom)
	assert.False(t, declared)
	assert.False(t, possible)
}

func TestBloomNoFalseNegative(t *testing.T) {
	c := newToken(t, &tokenAddr, nil)

	var logs []*types.Log
	for i := range 50 {
		l := transferLog(t, c, alice, common.BigToAddress(big.NewInt(int64(i))), int64(i), 1)
		logs = append(logs, &l)
	}
	b := bloom.LogsBloom(logs)

	possible, declared := c.TestBloomForEventPresence("Transfer", &b)
	assert.True(t, declared)
	assert.True(t, possible)
}

func TestParseEvent(t *testing.T) {
	c := newToken(t, &tokenAddr, nil)

	name, fields := c.ParseEvent(transferLog(t, c, alice, bob, 42, 1))
	assert.Equal(t, "Transfer", name)
	assert.Equal(t, alice, fields["from"])
	assert.Equal(t, bob, fields["to"])
	assert.Equal(t, big.NewInt(42), fields["value"])
	assert.Equal(t, big.NewInt(42), fields["2"])

	name, fields = c.ParseEvent(types.Log{})
	assert.Empty(t, name)
	assert.Nil(t, fields)

	name, fields = c.ParseEvent(types.Log{Topics: []common.Hash{{1}}})
	assert.Empty(t, name)
	assert.Nil(t, fields)

	broken := transferLog(t, c, alice, bob, 42, 1)
	broken.Data = broken.Data[:16]
	name, fields = c.ParseEvent(broken)
	assert.Empty(t, name)
	assert.Nil(t, fields)
}

func TestCreateEventParser(t *testing.T) {
	c := newToken(t, &tokenAddr, nil)

	_, err := c.CreateEventParser("Unknown", nil)
	var notFound *abi.EventNotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, err = c.CreateEventParser("Transfer", &EventFilter{Topics: [][]any{nil, nil, nil}})
	assert.Error(t, err)

	p, err := c.CreateEventParser("Transfer", &EventFilter{
		FromBlock: big.NewInt(1),
		ToBlock:   big.NewInt(10),
		Topics:    [][]any{nil, {bob}},
	})
	require.NoError(t, err)

	q := p.Query()
	transfer, _ := c.ABI().EventByName("Transfer")
	assert.Equal(t, []common.Address{tokenAddr}, q.Addresses)
	require.Len(t, q.Topics, 3)
	assert.Equal(t, []common.Hash{transfer.ID()}, q.Topics[0])
	assert.Empty(t, q.Topics[1])
	assert.Equal(t, []common.Hash{common.BytesToHash(bob.Bytes())}, q.Topics[2])
	assert.Equal(t, big.NewInt(1), q.FromBlock)

	logs := []types.Log{
		transferLog(t, c, alice, bob, 1, 1),
		transferLog(t, c, bob, alice, 2, 2),
		transferLog(t, c, alice, bob, 3, 3),
	}
	other := transferLog(t, c, alice, bob, 4, 4)
	other.Address = alice
	logs = append(logs, other)

	events := p.ParseLogs(logs)
	require.Len(t, events, 2)
	assert.Equal(t, big.NewInt(1), events[0].Fields["value"])
	assert.Equal(t, big.NewInt(3), events[1].Fields["value"])
	assert.Equal(t, "Transfer", events[1].Name)
	assert.Equal(t, uint64(3), events[1].Log.BlockNumber)
}

func TestEventParserAnonymous(t *testing.T) {
	c := newToken(t, nil, nil)

	p, err := c.CreateEventParser("Trace", nil)
	require.NoError(t, err)
	q := p.Query()
	assert.Empty(t, q.Topics)
	assert.Empty(t, q.Addresses)

	trace, _ := c.ABI().EventByName("Trace")
	data, err := trace.Encode(big.NewInt(5))
	require.NoError(t, err)
	events := p.ParseLogs([]types.Log{{Address: bob, Data: data}})
	require.Len(t, events, 1)
	assert.Equal(t, big.NewInt(5), events[0].Fields["step"])
}

// logSource serves logs from memory and records the queried windows.
type logSource struct {
	lock    sync.Mutex
	logs    []types.Log
	queries []ethereum.FilterQuery
	err     error
}

func (s *logSource) FilterLogs(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.queries = append(s.queries, q)
	if s.err != nil {
		return nil, s.err
	}
	var out []types.Log
	for _, l := range s.logs {
		n := new(big.Int).SetUint64(l.BlockNumber)
		if q.FromBlock != nil && n.Cmp(q.FromBlock) < 0 {
			continue
		}
		if q.ToBlock != nil && n.Cmp(q.ToBlock) > 0 {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (s *logSource) SubscribeFilterLogs(context.Context, ethereum.FilterQuery, chan<- types.Log) (ethereum.Subscription, error) {
	return nil, errors.New("not supported")
}

func TestEventParserFetch(t *testing.T) {
	c := newToken(t, &tokenAddr, nil)

	src := &logSource{}
	for i := uint64(1); i <= 25; i++ {
		src.logs = append(src.logs, transferLog(t, c, alice, bob, int64(i), i))
	}

	p, err := c.CreateEventParser("Transfer", &EventFilter{
		FromBlock: big.NewInt(3),
		ToBlock:   big.NewInt(22),
		BatchSize: 6,
	})
	require.NoError(t, err)

	events, err := p.Fetch(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, events, 20)
	for i, ev := range events {
		assert.Equal(t, uint64(i+3), ev.Log.BlockNumber)
	}

	var windows []string
	for _, q := range src.queries {
		windows = append(windows, fmt.Sprintf("%v-%v", q.FromBlock, q.ToBlock))
	}
	sort.Strings(windows)
	assert.Equal(t, []string{"15-20", "21-22", "3-8", "9-14"}, windows)
}

func TestEventParserFetchProgress(t *testing.T) {
	c := newToken(t, &tokenAddr, nil)
	p, err := c.CreateEventParser("Transfer", &EventFilter{
		FromBlock: big.NewInt(0),
		ToBlock:   big.NewInt(99),
		BatchSize: 10,
	})
	require.NoError(t, err)

	var calls []int
	_, err = p.FetchWithProgress(context.Background(), &logSource{}, func(done, total int) {
		assert.Equal(t, 10, total)
		calls = append(calls, done)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, calls)
}

func TestEventParserFetchError(t *testing.T) {
	c := newToken(t, &tokenAddr, nil)
	p, err := c.CreateEventParser("Transfer", nil)
	require.NoError(t, err)

	_, err = p.Fetch(context.Background(), &logSource{err: errors.New("boom")})
	assert.ErrorContains(t, err, "boom")
}
