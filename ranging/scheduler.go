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

package ranging

import log "github.com/sirupsen/logrus"

// Scheduler drives an Engine's cadence (spec.md §4.3): the tag alternates
// BLINK and POLL transmissions on a fixed interval, sweeping its peer
// table for inactivity once every BlinkInterval cycles; the anchor is
// purely reactive and only needs the inactivity sweep. A Scheduler owns
// no goroutine of its own — the Coordinator calls Tick from its single
// driving loop, keeping the whole engine single-threaded.
type Scheduler struct {
	cfg    *Config
	engine *Engine

	blinkCounter int
	lastTickMS   int64
	haveTicked   bool
}

// NewScheduler returns a Scheduler for engine using cfg's cadence fields.
func NewScheduler(cfg *Config, engine *Engine) *Scheduler {
	return &Scheduler{cfg: cfg, engine: engine}
}

// TickInterval returns the millisecond period between Tick calls a caller
// should aim for: Config.RangeIntervalMS plus headroom proportional to the
// current peer count and Config.ReplyDelayUS (spec.md §4.3), matching
// original_source/DW1000_library_pizzo00/src/DW1000Ranging.cpp's
// `_rangeInterval + devicesCount*3*DEFAULT_REPLY_DELAY_TIME/1000` so a full
// cycle's worth of reply slots always lands before the next tick, however
// many peers are in the table.
func (s *Scheduler) TickInterval() int64 {
	devices := int64(s.engine.table.Len())
	headroomMS := devices * 3 * int64(s.cfg.ReplyDelayUS) / 1000
	return s.cfg.RangeIntervalMS + headroomMS
}

// Tick fires one cadence step. Only the tag role transmits BLINK/POLL;
// the anchor role is purely reactive inside Engine.Poll, so Tick on an
// anchor engine only advances the cadence counter and, on the first tick
// of each BlinkInterval cycle, runs the inactivity sweep.
func (s *Scheduler) Tick(nowMS int64) {
	if s.haveTicked && nowMS-s.lastTickMS < s.TickInterval() {
		return
	}
	s.lastTickMS = nowMS
	s.haveTicked = true

	blinkTick := s.blinkCounter == 0
	if s.engine.role == RoleTag {
		if blinkTick {
			s.engine.transmitBlink()
		} else {
			s.engine.transmitPoll(nowMS)
		}
	}
	s.blinkCounter++
	if s.blinkCounter >= s.cfg.BlinkInterval {
		s.blinkCounter = 0
	}

	if blinkTick {
		s.engine.table.SweepInactive(nowMS, s.cfg.InactivityMS, func(p *Peer) {
			s.engine.stats.IncPeerInactive()
			s.engine.Callbacks.fireInactiveDevice(p)
		})
	}
}

// CheckRangeTimeout implements the tag's range-retry fallback (spec.md
// §4.4.4: "reply_time_of_last_poll_ack + 3ms"): if a POLL was sent and no
// matching POLL_ACK ever arrived from the last-addressed peer, the tag
// gives up waiting and sends RANGE anyway using whichever peers did ack,
// rather than stalling the whole cycle on one silent anchor.
func (s *Scheduler) CheckRangeTimeout(nowMS int64) {
	e := s.engine
	if e.role != RoleTag {
		return
	}
	if !e.pollAckDeadlineSet {
		return
	}
	if nowMS < e.pollAckDeadlineMS {
		return
	}
	e.pollAckDeadlineSet = false
	if e.tagState != AwaitPollAck {
		return
	}
	log.Debugf("ranging: POLL_ACK deadline expired, transmitting RANGE with partial acks")
	e.tagTransmitRange(nowMS)
}
