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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwb-go/dw1000/mac"
)

// TestSchedulerBlinksThenPolls checks the cadence interleaving of spec.md
// §4.3: the first tick of every BlinkInterval cycle is a BLINK, the rest
// are POLL.
func TestSchedulerBlinksThenPolls(t *testing.T) {
	e, sim := newTagEngine(t, 0x0001)
	e.cfg.BlinkInterval = 3
	sched := NewScheduler(e.cfg, e)

	interval := sched.TickInterval()
	sched.Tick(0)
	require.Len(t, sim.TXLog, 1)
	_, mtype := mac.DetectType(sim.TXLog[0])
	assert.Equal(t, mac.TypeBlink, mtype)

	sched.Tick(interval)
	require.Len(t, sim.TXLog, 2)
	_, mtype = mac.DetectType(sim.TXLog[1])
	assert.Equal(t, mac.TypePoll, mtype)

	sched.Tick(2 * interval)
	require.Len(t, sim.TXLog, 3)
	_, mtype = mac.DetectType(sim.TXLog[2])
	assert.Equal(t, mac.TypePoll, mtype)

	sched.Tick(3 * interval)
	require.Len(t, sim.TXLog, 4)
	_, mtype = mac.DetectType(sim.TXLog[3])
	assert.Equal(t, mac.TypeBlink, mtype, "cycle must restart with BLINK after BlinkInterval ticks")
}

// TestSchedulerIgnoresTicksWithinInterval ensures Tick is a no-op if
// called again before TickInterval has elapsed, so a caller polling
// faster than the configured cadence does not double-transmit.
func TestSchedulerIgnoresTicksWithinInterval(t *testing.T) {
	e, sim := newTagEngine(t, 0x0001)
	sched := NewScheduler(e.cfg, e)

	sched.Tick(0)
	require.Len(t, sim.TXLog, 1)
	sched.Tick(1)
	assert.Len(t, sim.TXLog, 1, "a tick inside the cadence window must not transmit again")
}

// TestSchedulerSweepsInactiveOnBlinkTick implements scenario S3 from
// spec.md §8, driven through the Scheduler rather than directly through
// PeerTable.SweepInactive: on the first tick of a BlinkInterval cycle,
// three stale peers are all evicted with on_inactive_device firing for
// each.
func TestSchedulerSweepsInactiveOnBlinkTick(t *testing.T) {
	e, _ := newAnchorEngine(t, 0x0002)
	e.cfg.InactivityMS = 2000
	for i := 0; i < 3; i++ {
		e.PeerTable().Insert(&Peer{ShortAddr: mac.ShortAddress(i), LastActivityMS: 0})
	}
	var evicted []mac.ShortAddress
	e.Callbacks.OnInactiveDevice = func(p *Peer) { evicted = append(evicted, p.ShortAddr) }

	sched := NewScheduler(e.cfg, e)
	sched.Tick(2500)

	assert.Equal(t, 0, e.PeerTable().Len())
	assert.Len(t, evicted, 3)
}

// TestSchedulerTickIntervalScalesWithPeerCount checks spec.md §4.3's
// "headroom proportional to the number of peers and to
// DEFAULT_REPLY_DELAY_US" requirement: a full table must widen the tick
// interval well past a bare-bones fixed-headroom guess, matching
// original_source/DW1000_library_pizzo00/src/DW1000Ranging.cpp's
// devicesCount*3*DEFAULT_REPLY_DELAY_TIME/1000 formula.
func TestSchedulerTickIntervalScalesWithPeerCount(t *testing.T) {
	e, _ := newTagEngine(t, 0x0001)
	e.cfg.ReplyDelayUS = 3000
	sched := NewScheduler(e.cfg, e)

	empty := sched.TickInterval()
	assert.Equal(t, e.cfg.RangeIntervalMS, empty, "no peers means no headroom beyond range_interval_ms")

	for i := 0; i < MaxDevices; i++ {
		e.PeerTable().Insert(&Peer{ShortAddr: mac.ShortAddress(i)})
	}
	full := sched.TickInterval()
	wantHeadroom := int64(MaxDevices) * 3 * int64(e.cfg.ReplyDelayUS) / 1000
	assert.Equal(t, e.cfg.RangeIntervalMS+wantHeadroom, full)
	assert.Greater(t, full, empty+int64(5), "a full table's headroom must exceed a flat few-millisecond guess")
}

// TestSchedulerAnchorNeverTransmits confirms the anchor role is purely
// reactive: Tick only runs the inactivity sweep, never a BLINK or POLL.
func TestSchedulerAnchorNeverTransmits(t *testing.T) {
	e, sim := newAnchorEngine(t, 0x0002)
	sched := NewScheduler(e.cfg, e)
	sched.Tick(0)
	sched.Tick(sched.TickInterval())
	assert.Empty(t, sim.TXLog)
}
