// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import (
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/vechain/abikit/bloom"
)

// TestBloomForEventPresence tests whether a log of the named event may be
// covered by filter. declared is false for events not in the ABI. Anonymous
// events have no topic to test and are always possible.
func (c *Contract) TestBloomForEventPresence(name string, filter bloom.Filter) (possible, declared bool) {
	ev, ok := c.desc.abi.EventByName(name)
	if !ok {
		return false, false
	}
	if ev.Anonymous() {
		return true, true
	}
	id := ev.ID()
	return filter.Test(id[:]), true
}

// ParseEvent matches the first topic of log against the declared events and
// decodes it. It returns ("", nil) when no event matches or the log layout
// does not fit the event.
func (c *Contract) ParseEvent(log types.Log) (string, map[string]any) {
	name, fields := c.parseEvent(log)
	countDecode("event", fields != nil)
	return name, fields
}

func (c *Contract) parseEvent(log types.Log) (string, map[string]any) {
	if len(log.Topics) == 0 {
		return "", nil
	}
	ev, ok := c.desc.abi.EventByID(log.Topics[0])
	if !ok {
		return "", nil
	}
	fields, err := ev.Decode(log.Topics, log.Data)
	if err != nil {
		logger.Trace("no event interpretation", "event", ev.Name(), "err", err)
		return "", nil
	}
	return ev.Name(), fields
}
