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
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// JSONStats serves Stats' counters over a tiny HTTP endpoint so an
// external poller (or a human with curl) can read them without a
// Prometheus scrape config.
type JSONStats struct {
	Stats
}

// NewJSONStats returns a new JSONStats wrapping a fresh counter set.
func NewJSONStats() *JSONStats {
	return &JSONStats{Stats: *NewStats()}
}

// Start runs the HTTP server on monitoringPort. It blocks; callers
// typically invoke it in its own goroutine.
func (s *JSONStats) Start(monitoringPort int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/counters", s.handleCountersRequest)
	addr := fmt.Sprintf(":%d", monitoringPort)
	log.Infof("ranging: starting counters http server on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *JSONStats) handleCountersRequest(w http.ResponseWriter, _ *http.Request) {
	js, err := json.Marshal(s.GetCounters())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(js); err != nil {
		log.Errorf("ranging: failed to reply to counters request: %v", err)
	}
}
