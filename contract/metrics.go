// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import (
	"github.com/vechain/abikit/log"
	"github.com/vechain/abikit/metrics"
)

var (
	logger = log.WithContext("pkg", "contract")

	metricBuildCount    = metrics.LazyLoadCounterVec("contract_build_count", []string{"op", "result"})
	metricDecodeCount   = metrics.LazyLoadCounterVec("contract_decode_count", []string{"op", "result"})
	metricFetchDuration = metrics.LazyLoadHistogram("contract_fetch_duration_ms", metrics.Bucket10s)
)

func countBuild(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metricBuildCount().AddWithLabel(1, map[string]string{"op": op, "result": result})
}

func countDecode(op string, ok bool) {
	result := "ok"
	if !ok {
		result = "none"
	}
	metricDecodeCount().AddWithLabel(1, map[string]string{"op": op, "result": result})
}
