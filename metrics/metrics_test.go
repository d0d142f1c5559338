// Copyright (c) 2025 The Fluid Staking developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	server := httptest.NewServer(HTTPHandler())

	t.Cleanup(func() {
		server.Close()
	})

	// meters on the noop backend absorb everything
	count1 := Counter("count1")
	count1.Add(1)

	countVec := CounterVec("countVec1", []string{"status"})
	countVec.AddWithLabel(1, map[string]string{"status": "committed"})

	gauge := Gauge("gauge1")
	gauge.Add(3)
	gauge.Set(1)

	hist := Histogram("hist1", Bucket1s)
	hist.Observe(42)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 404, resp.StatusCode)
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	Counter("prom_count1").Add(3)
	CounterVec("prom_countVec1", []string{"status"}).
		AddWithLabel(2, map[string]string{"status": "committed"})
	Gauge("prom_gauge1").Set(7)
	Histogram("prom_hist1", Bucket1s).Observe(100)

	gatherers := prometheus.Gatherers{prometheus.DefaultGatherer}
	families, err := gatherers.Gather()
	require.NoError(t, err)

	found := make(map[string]bool)
	for _, family := range families {
		found[family.GetName()] = true
	}
	require.True(t, found["fluid_metrics_prom_count1"])
	require.True(t, found["fluid_metrics_prom_countVec1"])
	require.True(t, found["fluid_metrics_prom_gauge1"])
	require.True(t, found["fluid_metrics_prom_hist1"])
}
