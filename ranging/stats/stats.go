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

// Package stats implements ranging.StatsSink as atomic in-memory counters,
// exposed either over a small JSON/HTTP endpoint or scraped into
// Prometheus gauges.
package stats

import (
	"sync/atomic"

	"github.com/uwb-go/dw1000/mac"
)

// Stats is the atomic-counter implementation of ranging.StatsSink. Every
// counter is a plain int64 behind sync/atomic, which is enough precision
// for a single-radio counter set and avoids a mutex on the hot path.
type Stats struct {
	framesSentPoll        int64
	framesSentPollAck     int64
	framesSentRange       int64
	framesSentRangeReport int64
	framesSentBlink       int64
	framesSentRangingInit int64

	framesReceivedPoll        int64
	framesReceivedPollAck     int64
	framesReceivedRange       int64
	framesReceivedRangeReport int64
	framesReceivedBlink       int64
	framesReceivedRangingInit int64

	rangeComputed  int64
	protocolFailed int64
	peerEvicted    int64
	peerInactive   int64
}

// NewStats returns a zeroed Stats.
func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) sentCounter(t mac.MessageType) *int64 {
	switch t {
	case mac.TypePoll:
		return &s.framesSentPoll
	case mac.TypePollAck:
		return &s.framesSentPollAck
	case mac.TypeRange:
		return &s.framesSentRange
	case mac.TypeRangeReport:
		return &s.framesSentRangeReport
	case mac.TypeBlink:
		return &s.framesSentBlink
	case mac.TypeRangingInit:
		return &s.framesSentRangingInit
	default:
		return nil
	}
}

func (s *Stats) receivedCounter(t mac.MessageType) *int64 {
	switch t {
	case mac.TypePoll:
		return &s.framesReceivedPoll
	case mac.TypePollAck:
		return &s.framesReceivedPollAck
	case mac.TypeRange:
		return &s.framesReceivedRange
	case mac.TypeRangeReport:
		return &s.framesReceivedRangeReport
	case mac.TypeBlink:
		return &s.framesReceivedBlink
	case mac.TypeRangingInit:
		return &s.framesReceivedRangingInit
	default:
		return nil
	}
}

// IncFramesSent atomically increments the per-type sent counter.
func (s *Stats) IncFramesSent(t mac.MessageType) {
	if c := s.sentCounter(t); c != nil {
		atomic.AddInt64(c, 1)
	}
}

// IncFramesReceived atomically increments the per-type received counter.
func (s *Stats) IncFramesReceived(t mac.MessageType) {
	if c := s.receivedCounter(t); c != nil {
		atomic.AddInt64(c, 1)
	}
}

// IncRangeComputed atomically adds 1 to the range-computed counter.
func (s *Stats) IncRangeComputed() { atomic.AddInt64(&s.rangeComputed, 1) }

// IncProtocolFailed atomically adds 1 to the protocol-failed counter.
func (s *Stats) IncProtocolFailed() { atomic.AddInt64(&s.protocolFailed, 1) }

// IncPeerEvicted atomically adds 1 to the quality-eviction counter.
func (s *Stats) IncPeerEvicted() { atomic.AddInt64(&s.peerEvicted, 1) }

// IncPeerInactive atomically adds 1 to the inactivity-eviction counter.
func (s *Stats) IncPeerInactive() { atomic.AddInt64(&s.peerInactive, 1) }

// GetCounters returns a snapshot of every counter, keyed the way a
// monitoring backend would want to group them.
func (s *Stats) GetCounters() map[string]int64 {
	return map[string]int64{
		"ranging.tx.poll":          atomic.LoadInt64(&s.framesSentPoll),
		"ranging.tx.poll_ack":      atomic.LoadInt64(&s.framesSentPollAck),
		"ranging.tx.range":         atomic.LoadInt64(&s.framesSentRange),
		"ranging.tx.range_report": atomic.LoadInt64(&s.framesSentRangeReport),
		"ranging.tx.blink":         atomic.LoadInt64(&s.framesSentBlink),
		"ranging.tx.ranging_init": atomic.LoadInt64(&s.framesSentRangingInit),

		"ranging.rx.poll":          atomic.LoadInt64(&s.framesReceivedPoll),
		"ranging.rx.poll_ack":      atomic.LoadInt64(&s.framesReceivedPollAck),
		"ranging.rx.range":         atomic.LoadInt64(&s.framesReceivedRange),
		"ranging.rx.range_report": atomic.LoadInt64(&s.framesReceivedRangeReport),
		"ranging.rx.blink":         atomic.LoadInt64(&s.framesReceivedBlink),
		"ranging.rx.ranging_init": atomic.LoadInt64(&s.framesReceivedRangingInit),

		"ranging.range_computed":  atomic.LoadInt64(&s.rangeComputed),
		"ranging.protocol_failed": atomic.LoadInt64(&s.protocolFailed),
		"ranging.peer_evicted":    atomic.LoadInt64(&s.peerEvicted),
		"ranging.peer_inactive":   atomic.LoadInt64(&s.peerInactive),
	}
}
