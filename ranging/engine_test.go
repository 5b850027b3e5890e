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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwb-go/dw1000/mac"
	"github.com/uwb-go/dw1000/radio"
	"github.com/uwb-go/dw1000/timestamp"
)

type fixedRNG struct{ n int }

func (r fixedRNG) Intn(n int) int {
	if r.n >= n {
		return 0
	}
	return r.n
}

func newAnchorEngine(t *testing.T, selfAddr mac.ShortAddress) (*Engine, *radio.SimDriver) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Role = "anchor"
	cfg.ShortAddress = selfAddr
	sim := radio.NewSimDriver()
	e := NewEngine(RoleAnchor, cfg, sim, fixedRNG{}, NopStats{})
	return e, sim
}

func newTagEngine(t *testing.T, selfAddr mac.ShortAddress) (*Engine, *radio.SimDriver) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Role = "tag"
	cfg.ShortAddress = selfAddr
	sim := radio.NewSimDriver()
	e := NewEngine(RoleTag, cfg, sim, fixedRNG{}, NopStats{})
	return e, sim
}

// TestEngineS1CleanCycle runs scenario S1 from spec.md §8: a single
// BLINK/POLL/RANGE exchange produces a RANGING_INIT, a POLL_ACK, and a
// time-of-flight computation matching the formula directly.
func TestEngineS1CleanCycle(t *testing.T) {
	const tagAddr = mac.ShortAddress(0x0001)
	e, sim := newAnchorEngine(t, 0x0002)

	codec := mac.NewCodec()

	blink := codec.BuildBlink(tagAddr, nil)
	sim.InjectReceive(blink, 1000, 0, 0, 0)
	e.Poll(0)
	require.Len(t, sim.TXLog, 1, "anchor must emit RANGING_INIT for an unknown tag")
	shape, mtype := mac.DetectType(sim.TXLog[0])
	assert.Equal(t, mac.ShapeLong, shape)
	assert.Equal(t, mac.TypeRangingInit, mtype)
	e.Poll(0) // drain the RANGING_INIT sent event

	poll := codec.BuildPoll(tagAddr, []mac.PollEntry{{Addr: 0x0002, ReplyTime: 3000}})
	sim.NextTxTS = 5000
	sim.InjectReceive(poll, 2000, 0, 0, 0)
	e.Poll(0)
	require.Len(t, sim.TXLog, 2, "anchor must emit POLL_ACK within one Poll call")
	_, mtype = mac.DetectType(sim.TXLog[1])
	assert.Equal(t, mac.TypePollAck, mtype)
	assert.Equal(t, AwaitRange, e.anchorState)
	e.Poll(0) // drain the POLL_ACK sent event, stamping TPollAckSent

	peer := e.PeerTable().Find(tagAddr)
	require.NotNil(t, peer)
	assert.Equal(t, timestamp.Timestamp(5000), peer.TPollAckSent, "handleSent must stamp TPollAckSent from GetTransmitTimestamp")

	rangeFrame := codec.BuildRange(tagAddr, []mac.RangeEntry{{Addr: 0x0002, Delta1: 6100, Delta2: 3100}})
	sim.InjectReceive(rangeFrame, peer.TPollAckSent.Add(timestamp.Timestamp(6000)), 0, 0, 0)
	e.Poll(0)

	round1 := timestamp.Timestamp(6100).Wrap()
	reply2 := timestamp.Timestamp(3100).Wrap()
	reply1 := peer.TPollAckSent.Sub(peer.TPollReceived).Wrap()
	round2 := peer.TRangeReceived.Sub(peer.TPollAckSent).Wrap()
	want := ComputeTOF(round1, reply1, round2, reply2).AsMeters()

	assert.InDelta(t, want, peer.Range, 1e-9)
	assert.Equal(t, AwaitPoll, e.anchorState)
	assert.False(t, e.protocolFailed)
}

// TestEngineS4LastPollAckShortcut implements scenario S4: the tag
// transmits RANGE immediately upon receiving the POLL_ACK from the
// last-expected anchor, without waiting for the next tick.
func TestEngineS4LastPollAckShortcut(t *testing.T) {
	e, sim := newTagEngine(t, 0x0100)
	codec := mac.NewCodec()

	anchors := []mac.ShortAddress{0xA0, 0xA1, 0xA2, 0xA3}
	for _, a := range anchors {
		e.PeerTable().Insert(&Peer{ShortAddr: a})
	}
	e.lastExpectedAddr = 0xA3
	e.tagState = AwaitPollAck

	for _, a := range anchors {
		ack := codec.BuildPollAck(a, 0x0100)
		sim.InjectReceive(ack, timestamp.Timestamp(1000), 0, 0, 0)
		e.Poll(0)
	}

	require.Len(t, sim.TXLog, 1, "RANGE must be transmitted exactly once, on the last POLL_ACK")
	_, mtype := mac.DetectType(sim.TXLog[0])
	assert.Equal(t, mac.TypeRange, mtype)
	assert.Equal(t, Idle, e.tagState)
}

// TestEngineS5RangeTimeoutFallback implements scenario S5: when only a
// subset of expected anchors ack before the deadline, RANGE is still sent
// carrying just those that acked.
func TestEngineS5RangeTimeoutFallback(t *testing.T) {
	e, sim := newTagEngine(t, 0x0100)
	codec := mac.NewCodec()

	anchors := []mac.ShortAddress{0xA0, 0xA1, 0xA2, 0xA3}
	for _, a := range anchors {
		e.PeerTable().Insert(&Peer{ShortAddr: a})
	}
	e.lastExpectedAddr = 0xA3
	e.tagState = AwaitPollAck
	e.pollAckDeadlineSet = true
	e.pollAckDeadlineMS = 1003

	for _, a := range []mac.ShortAddress{0xA0, 0xA2} {
		ack := codec.BuildPollAck(a, 0x0100)
		sim.InjectReceive(ack, timestamp.Timestamp(1000), 0, 0, 0)
		e.Poll(0)
	}
	require.Empty(t, sim.TXLog, "RANGE must not fire before the last-expected anchor acks or the deadline passes")

	sched := NewScheduler(e.cfg, e)
	sched.CheckRangeTimeout(1004)

	require.Len(t, sim.TXLog, 1)
	frame := sim.TXLog[0]
	entries, err := mac.DecodeRange(frame)
	require.NoError(t, err)
	require.Len(t, entries, 2, "only the acked peers are carried")
	gotAddrs := map[mac.ShortAddress]bool{entries[0].Addr: true, entries[1].Addr: true}
	assert.True(t, gotAddrs[0xA0])
	assert.True(t, gotAddrs[0xA2])
	assert.False(t, gotAddrs[0xA3])
}

// TestEngineS6OutOfOrderRejection implements scenario S6: a RANGE frame
// with no preceding POLL_ACK sets protocol_failed without computing a
// range or firing a callback, and the next POLL clears it.
func TestEngineS6OutOfOrderRejection(t *testing.T) {
	const tagAddr = mac.ShortAddress(0x0001)
	e, sim := newAnchorEngine(t, 0x0002)
	codec := mac.NewCodec()

	e.PeerTable().Insert(&Peer{ShortAddr: tagAddr})
	require.Equal(t, AwaitPoll, e.anchorState)

	fired := false
	e.Callbacks.OnNewRange = func(*Peer) { fired = true }

	rangeFrame := codec.BuildRange(tagAddr, []mac.RangeEntry{{Addr: 0x0002, Delta1: 100, Delta2: 100}})
	sim.InjectReceive(rangeFrame, timestamp.Timestamp(500), 0, 0, 0)
	e.Poll(0)

	assert.True(t, e.protocolFailed)
	assert.False(t, fired)
	assert.Equal(t, 0.0, e.PeerTable().Find(tagAddr).Range)

	poll := codec.BuildPoll(tagAddr, []mac.PollEntry{{Addr: 0x0002, ReplyTime: 3000}})
	sim.NextTxTS = 900
	sim.InjectReceive(poll, timestamp.Timestamp(600), 0, 0, 0)
	e.Poll(0)

	assert.False(t, e.protocolFailed, "next POLL must clear protocol_failed")
}

// TestEngineS2PeerTableEvictionOnBlink implements scenario S2 from spec.md
// §8: with the anchor's peer table already full, a BLINK from an unknown
// 13th device must still be inserted, evicting the lowest-quality entry
// and firing on_evicted_on_full — exercising the real
// anchorHandleBlink -> anchorInsertOrFind -> PeerTable.Insert path, not
// just PeerTable.Insert in isolation.
func TestEngineS2PeerTableEvictionOnBlink(t *testing.T) {
	const newAddr = mac.ShortAddress(0x00FF)
	e, sim := newAnchorEngine(t, 0x0002)

	const worstAddr = mac.ShortAddress(5)
	for i := 0; i < MaxDevices; i++ {
		q := float32(1) // every existing peer starts strong...
		if mac.ShortAddress(i) == worstAddr {
			q = 0 // ...except the one that must be evicted
		}
		e.PeerTable().Insert(&Peer{ShortAddr: mac.ShortAddress(i), Quality: q})
	}
	require.Equal(t, MaxDevices, e.PeerTable().Len())

	var evictedPeer *Peer
	e.Callbacks.OnEvictedOnFull = func(p *Peer) { evictedPeer = p }

	codec := mac.NewCodec()
	blink := codec.BuildBlink(newAddr, nil)
	sim.InjectReceive(blink, timestamp.Timestamp(1000), 0, 0, 0)
	e.Poll(0)

	require.NotNil(t, evictedPeer, "on_evicted_on_full must fire when a BLINK arrives against a full table")
	assert.Equal(t, worstAddr, evictedPeer.ShortAddr, "the lowest-quality peer must be the one evicted")
	assert.Equal(t, MaxDevices, e.PeerTable().Len(), "table size must stay bounded after the swap")
	require.NotNil(t, e.PeerTable().Find(newAddr), "the new device from the BLINK must now be present")
	assert.Nil(t, e.PeerTable().Find(worstAddr), "the evicted device must no longer be present")
}

// TestComputeTOFSymmetric checks testable property 6: the formula is
// symmetric under swapping (round1, reply1) with (round2, reply2).
func TestComputeTOFSymmetric(t *testing.T) {
	round1 := timestamp.Timestamp(6100)
	reply1 := timestamp.Timestamp(3000)
	round2 := timestamp.Timestamp(6000)
	reply2 := timestamp.Timestamp(3100)

	a := ComputeTOF(round1, reply1, round2, reply2)
	b := ComputeTOF(round2, reply2, round1, reply1)
	assert.Equal(t, a, b)
}

func TestComputeTOFNeverNegative(t *testing.T) {
	tof := ComputeTOF(100, 5000, 100, 5000)
	assert.GreaterOrEqual(t, uint64(tof), uint64(0))
	assert.False(t, math.Signbit(tof.AsMeters()))
}
