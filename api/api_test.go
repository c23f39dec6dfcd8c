// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/abikit/contract"
	"github.com/vechain/abikit/log"
	"github.com/vechain/abikit/metrics"
	"github.com/vechain/abikit/registry"
)

const counterABI = `[{"type":"function","name":"count","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"}]`

func init() {
	metrics.InitializePrometheusMetrics()
}

func newServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	reg, err := registry.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { reg.Close() })

	addr := common.HexToAddress("0x0000000000000000000000000000456e65726779")
	require.NoError(t, reg.Put(&registry.Entry{Name: "counter", ABI: []byte(counterABI), Address: &addr}))

	ts := httptest.NewServer(New(reg, contract.NewClient(big.NewInt(1), nil), opts))
	t.Cleanup(ts.Close)
	return ts
}

func TestMetricsMiddleware(t *testing.T) {
	ts := newServer(t, Options{AllowedOrigins: "*", EnableMetrics: true})

	httpGet(t, ts.URL+"/contracts")
	httpGet(t, ts.URL+"/contracts/counter")
	_, code := httpGet(t, ts.URL+"/contracts/missing")
	assert.Equal(t, http.StatusNotFound, code)

	body, code := httpGet(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, code)
	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	require.NoError(t, err)

	got := make(map[string]float64)
	for _, m := range families["abikit_api_request_count"].GetMetric() {
		labels := make(map[string]string)
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		assert.Equal(t, http.MethodGet, labels["method"])
		got[labels["name"]+" "+labels["code"]] += m.GetCounter().GetValue()
	}
	assert.Equal(t, float64(1), got["contracts 200"])
	assert.Equal(t, float64(1), got["contracts_name 200"])
	assert.Equal(t, float64(1), got["contracts_name 404"])

	hist := families["abikit_api_duration_ms"].GetMetric()
	require.Len(t, hist, 1)
	assert.GreaterOrEqual(t, hist[0].GetHistogram().GetSampleCount(), uint64(3))
}

func TestMetricsDisabled(t *testing.T) {
	ts := newServer(t, Options{})
	_, code := httpGet(t, ts.URL+"/metrics")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouteLabel(t *testing.T) {
	for name, want := range map[string]string{
		"GET /contracts":               "contracts",
		"GET /contracts/{name}":        "contracts_name",
		"POST /contracts/{name}/bloom": "contracts_name_bloom",
		"/plain/":                      "plain",
	} {
		assert.Equal(t, want, routeLabel(name), name)
	}
}

func TestCORS(t *testing.T) {
	ts := newServer(t, Options{AllowedOrigins: "http://localhost:3000, HTTP://Example.org"})

	for origin, allowed := range map[string]bool{
		"http://localhost:3000": true,
		"http://example.org":    true,
		"http://evil.com":       false,
	} {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/contracts", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		res.Body.Close()
		if allowed {
			assert.Equal(t, origin, res.Header.Get("Access-Control-Allow-Origin"), origin)
		} else {
			assert.Empty(t, res.Header.Get("Access-Control-Allow-Origin"), origin)
		}
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log.SetDefault(log.NewHandler(&buf, 3, true))
	defer log.SetDefault(log.NewHandler(os.Stderr, 3, false))

	var seen string
	handler := RequestLoggerHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seen = string(b)
		w.WriteHeader(http.StatusAccepted)
	}), log.WithContext("pkg", "api"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contracts/counter/decode", strings.NewReader(`{"data":"0x"}`)))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, `{"data":"0x"}`, seen)
	out := buf.String()
	assert.Contains(t, out, "API Request")
	assert.Contains(t, out, "/contracts/counter/decode")
	assert.Contains(t, out, `{\"data\":\"0x\"}`)
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	if err != nil {
		t.Fatal(err)
	}
	r, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	return r, res.StatusCode
}
