/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package stats

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// PrometheusStats wraps Stats and periodically re-expresses its counter
// snapshot as Prometheus gauges, rather than wiring counters through
// prometheus.Counter directly: /metrics reports the same counter set that
// JSONStats serves on /counters, with each key's dots flattened to
// underscores. PrometheusStats holds its own Stats, separate from any
// JSONStats.
type PrometheusStats struct {
	Stats
	registry *prometheus.Registry
	interval time.Duration
}

// NewPrometheusStats returns a PrometheusStats that re-scrapes its own
// counters every scrapeInterval.
func NewPrometheusStats(scrapeInterval time.Duration) *PrometheusStats {
	return &PrometheusStats{
		Stats:    *NewStats(),
		registry: prometheus.NewRegistry(),
		interval: scrapeInterval,
	}
}

// Start begins the periodic scrape loop and serves /metrics on
// monitoringPort. It blocks; callers typically invoke it in its own
// goroutine.
func (e *PrometheusStats) Start(monitoringPort int) error {
	go func() {
		for {
			e.scrapeMetrics()
			time.Sleep(e.interval)
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	addr := fmt.Sprintf(":%d", monitoringPort)
	log.Infof("ranging: starting prometheus exporter on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func (e *PrometheusStats) scrapeMetrics() {
	for mkey, mval := range e.GetCounters() {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Name: flattenKey(mkey), Help: mkey})
		if err := e.registry.Register(g); err != nil {
			are := &prometheus.AlreadyRegisteredError{}
			if errors.As(err, are) {
				g = are.ExistingCollector.(prometheus.Gauge)
			} else {
				log.Errorf("ranging: failed to register metric %s: %v", mkey, err)
				continue
			}
		}
		g.Set(float64(mval))
	}
}

func flattenKey(key string) string {
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, ".", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return key
}
