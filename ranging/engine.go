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
	log "github.com/sirupsen/logrus"

	"github.com/uwb-go/dw1000/mac"
	"github.com/uwb-go/dw1000/radio"
	"github.com/uwb-go/dw1000/timestamp"
)

// AnchorState is the anchor half of the protocol state machine (spec.md
// §4.4.2).
type AnchorState int

const (
	// AwaitPoll is the anchor's initial state and its state after any
	// reset: it is listening for BLINK or POLL.
	AwaitPoll AnchorState = iota
	// AwaitRange means a POLL_ACK was just sent and a matching RANGE is
	// expected next.
	AwaitRange
)

// TagState is the tag half of the protocol state machine (spec.md §4.4.3).
type TagState int

const (
	// Idle means the tag has not yet started a ranging cycle.
	Idle TagState = iota
	// AwaitPollAck means a POLL was just sent and POLL_ACKs are expected.
	AwaitPollAck
	// AwaitRangeReport means RANGE was just sent and, because
	// Config.EnableRangeReport is set, a RANGE_REPORT is expected next.
	AwaitRangeReport
)

// Slot-assignment constants, spec.md §4.4.4.
const (
	devicePerPollTransmit = 4
	pollAckTimeSlots      = 6
)

// Engine is the asymmetric two-way ranging protocol state machine: one
// role (TAG or ANCHOR) for its lifetime, single-threaded cooperative, with
// Poll as its only entry point (spec.md §5). All state is owned by the
// Engine value; callers provide the radio, clock, RNG, and callbacks as
// collaborators, so multiple Engines can coexist in one process without
// interfering.
type Engine struct {
	role   Role
	cfg    *Config
	codec  *mac.Codec
	driver radio.Driver
	rng    RNG
	stats  StatsSink

	Callbacks Callbacks

	table   *PeerTable
	mailbox radio.EventMailbox

	selfShort mac.ShortAddress
	selfLong  mac.LongAddress

	anchorState    AnchorState
	tagState       TagState
	protocolFailed bool

	lastActivityMS int64

	lastExpectedAddr   mac.ShortAddress
	pollAckDeadlineMS  int64
	pollAckDeadlineSet bool

	pendingTxType  mac.MessageType
	pendingTxAddrs []mac.ShortAddress

	rxBuf [mac.LenData]byte
}

// NewEngine constructs an Engine for the given role and wires its sent/
// received interrupt hooks into driver. The driver need not be configured
// yet: the owning Coordinator runs Begin/NewConfiguration/.../
// CommitConfiguration and places it into permanent receive mode in Run,
// before the first Poll.
func NewEngine(role Role, cfg *Config, driver radio.Driver, rng RNG, stats StatsSink) *Engine {
	if stats == nil {
		stats = NopStats{}
	}
	e := &Engine{
		role:      role,
		cfg:       cfg,
		codec:     mac.NewCodec(),
		driver:    driver,
		rng:       rng,
		stats:     stats,
		table:     NewPeerTable(cfg.MaxDevices),
		selfShort: cfg.ShortAddress,
		selfLong:  cfg.LongAddress,
	}
	driver.AttachSentHandler(e.mailbox.MarkSent)
	driver.AttachReceivedHandler(e.mailbox.MarkReceived)
	return e
}

// PeerTable exposes the engine's table for read-only inspection (debug
// dumps, stats collection).
func (e *Engine) PeerTable() *PeerTable { return e.table }

// Role returns the engine's fixed role.
func (e *Engine) Role() Role { return e.role }

// ProtocolFailed reports whether the anchor's failure flag is currently
// set (spec.md §4.6); exposed for tests and diagnostics.
func (e *Engine) ProtocolFailed() bool { return e.protocolFailed }

// Poll drains at most one pending sent event and one pending received
// event, then checks the engine-wide inactivity reset. No suspension
// points: this never blocks (spec.md §5).
func (e *Engine) Poll(nowMS int64) {
	if e.mailbox.TakeSent() {
		e.handleSent(nowMS)
	}
	if e.mailbox.TakeReceived() {
		e.handleReceived(nowMS)
	}
	if nowMS-e.lastActivityMS > e.cfg.ResetPeriodMS {
		e.reset(nowMS)
	}
}

func (e *Engine) noteActivity(nowMS int64) {
	e.lastActivityMS = nowMS
}

func (e *Engine) reset(nowMS int64) {
	log.Debugf("ranging: resetting engine after %dms of inactivity", e.cfg.ResetPeriodMS)
	if e.role == RoleAnchor {
		e.anchorState = AwaitPoll
		e.protocolFailed = false
	} else {
		e.tagState = Idle
		e.pollAckDeadlineSet = false
	}
	e.lastActivityMS = nowMS
	if err := e.driver.StartReceive(); err != nil {
		log.Warningf("ranging: StartReceive after reset: %v", err)
	}
}

// transmit drives the driver's send path uniformly: NewTransmit, an
// optional SetDelay for slotted replies, SetData, then StartTransmit. The
// pending type/addresses are recorded so the next sent event knows which
// Peer timestamp fields to fill in.
func (e *Engine) transmit(frame []byte, msgType mac.MessageType, addrs []mac.ShortAddress, delay *timestamp.Timestamp) error {
	if err := e.driver.NewTransmit(); err != nil {
		return err
	}
	if delay != nil {
		if _, err := e.driver.SetDelay(*delay); err != nil {
			return err
		}
	}
	if err := e.driver.SetData(frame); err != nil {
		return err
	}
	if err := e.driver.StartTransmit(); err != nil {
		return err
	}
	e.pendingTxType = msgType
	e.pendingTxAddrs = addrs
	e.stats.IncFramesSent(msgType)
	return nil
}

func (e *Engine) handleSent(nowMS int64) {
	ts, err := e.driver.GetTransmitTimestamp()
	if err != nil {
		log.Warningf("ranging: GetTransmitTimestamp: %v", err)
		return
	}
	switch e.pendingTxType {
	case mac.TypePoll:
		for _, addr := range e.pendingTxAddrs {
			if p := e.table.Find(addr); p != nil {
				p.TPollSent = ts
			}
		}
	case mac.TypePollAck:
		if len(e.pendingTxAddrs) == 1 {
			if p := e.table.Find(e.pendingTxAddrs[0]); p != nil {
				p.TPollAckSent = ts
			}
		}
	case mac.TypeRange:
		for _, addr := range e.pendingTxAddrs {
			if p := e.table.Find(addr); p != nil {
				p.TRangeSent = ts
			}
		}
	}
	e.noteActivity(nowMS)
}

func (e *Engine) handleReceived(nowMS int64) {
	if e.driver.IsReceiveFailed() {
		log.Debugf("ranging: dropping corrupt receive")
		return
	}
	n, err := e.driver.GetData(e.rxBuf[:])
	if err != nil {
		log.Warningf("ranging: GetData: %v", err)
		return
	}
	frame := e.rxBuf[:n]
	_, msgType := mac.DetectType(frame)
	if msgType == mac.TypeError {
		log.Debugf("ranging: dropping frame of unknown type")
		return
	}

	rxTS, err := e.driver.GetReceiveTimestamp()
	if err != nil {
		log.Warningf("ranging: GetReceiveTimestamp: %v", err)
		return
	}
	rxPower := e.driver.GetReceivePower()
	fpPower := e.driver.GetFirstPathPower()
	quality := e.driver.GetReceiveQuality()
	log.Debugf("ranging: rx %s rx_power=%.2f first_path_power=%.2f quality=%.2f", msgType, rxPower, fpPower, quality)
	e.stats.IncFramesReceived(msgType)

	if e.role == RoleAnchor {
		e.anchorHandleFrame(nowMS, frame, msgType, rxTS, rxPower, fpPower, quality)
	} else {
		e.tagHandleFrame(nowMS, frame, msgType, rxTS, rxPower, fpPower, quality)
	}
}

// --- Anchor state machine (spec.md §4.4.2) ---

func (e *Engine) anchorHandleFrame(nowMS int64, frame []byte, msgType mac.MessageType, rxTS timestamp.Timestamp, rxPower, fpPower, quality float32) {
	switch msgType {
	case mac.TypeBlink:
		e.anchorHandleBlink(nowMS, frame)
	case mac.TypePoll:
		e.anchorHandlePoll(nowMS, frame, rxTS, rxPower, fpPower, quality)
	case mac.TypeRange:
		e.anchorHandleRange(nowMS, frame, rxTS)
	default:
		e.protocolFailed = true
		e.stats.IncProtocolFailed()
	}
}

func (e *Engine) anchorInsertOrFind(addr mac.ShortAddress) (*Peer, bool) {
	peer := e.table.Find(addr)
	if peer != nil {
		return peer, false
	}
	peer = &Peer{ShortAddr: addr, LongAddr: mac.ShortAddressToEUI(addr)}
	res, evicted := e.table.Insert(peer)
	if res == Replaced {
		e.stats.IncPeerEvicted()
		e.Callbacks.fireEvictedOnFull(evicted)
	}
	return peer, true
}

func (e *Engine) sendRangingInit(dst mac.ShortAddress, dstEUI mac.LongAddress) {
	slotDuration := int(2.5 * float64(e.cfg.ReplyDelayUS))
	delaySlot := randomSlot(e.rng, slotDuration, 7*slotDuration)
	delay := timestamp.FromMicroseconds(float64(delaySlot))
	frame := e.codec.BuildRangingInit(e.selfShort, dstEUI)
	if err := e.transmit(frame, mac.TypeRangingInit, nil, &delay); err != nil {
		log.Warningf("ranging: transmit RANGING_INIT to %s: %v", dst, err)
	}
}

func (e *Engine) anchorHandleBlink(nowMS int64, frame []byte) {
	src, err := mac.DecodeBlinkSrc(frame)
	if err != nil {
		log.Warningf("ranging: decode blink: %v", err)
		return
	}
	known := mac.DecodeBlinkKnown(frame)

	peer, isNew := e.anchorInsertOrFind(src)
	peer.LastActivityMS = nowMS
	e.noteActivity(nowMS)
	if isNew {
		e.Callbacks.fireBlinkDevice(peer)
	}

	for _, a := range known {
		if a == e.selfShort {
			return // tag already knows us, no RANGING_INIT needed
		}
	}
	e.sendRangingInit(src, peer.LongAddr)
}

func (e *Engine) anchorHandlePoll(nowMS int64, frame []byte, rxTS timestamp.Timestamp, rxPower, fpPower, quality float32) {
	src, err := mac.DecodeShortSrc(frame)
	if err != nil {
		log.Warningf("ranging: decode poll source: %v", err)
		return
	}
	entries, err := mac.DecodePoll(frame)
	if err != nil {
		log.Warningf("ranging: decode poll: %v", err)
		return
	}

	e.protocolFailed = false // spec §4.6: a fresh POLL clears protocol_failed

	peer, isNew := e.anchorInsertOrFind(src)
	peer.LastActivityMS = nowMS
	peer.HasAckedPoll = false
	peer.RXPower, peer.FirstPathPower, peer.Quality = rxPower, fpPower, quality
	e.noteActivity(nowMS)
	if isNew {
		e.Callbacks.fireNewDevice(peer)
	}

	var found *mac.PollEntry
	for i := range entries {
		if entries[i].Addr == e.selfShort {
			found = &entries[i]
			break
		}
	}
	if found == nil {
		e.sendRangingInit(src, peer.LongAddr)
		return
	}

	peer.TPollReceived = rxTS
	delay := timestamp.FromMicroseconds(float64(found.ReplyTime))
	frame2 := e.codec.BuildPollAck(e.selfShort, src)
	if err := e.transmit(frame2, mac.TypePollAck, []mac.ShortAddress{src}, &delay); err != nil {
		log.Warningf("ranging: transmit POLL_ACK to %s: %v", src, err)
		return
	}
	e.anchorState = AwaitRange
}

func (e *Engine) anchorHandleRange(nowMS int64, frame []byte, rxTS timestamp.Timestamp) {
	if e.anchorState != AwaitRange {
		e.protocolFailed = true
		e.stats.IncProtocolFailed()
		return
	}
	src, err := mac.DecodeShortSrc(frame)
	if err != nil {
		log.Warningf("ranging: decode range source: %v", err)
		return
	}
	entries, err := mac.DecodeRange(frame)
	if err != nil {
		log.Warningf("ranging: decode range: %v", err)
		return
	}

	peer := e.table.Find(src)
	if peer == nil {
		log.Debugf("ranging: RANGE from unknown peer %s dropped", src)
		return
	}

	var found *mac.RangeEntry
	for i := range entries {
		if entries[i].Addr == e.selfShort {
			found = &entries[i]
			break
		}
	}
	if found == nil {
		e.protocolFailed = true
		e.stats.IncProtocolFailed()
		e.anchorState = AwaitPoll
		return
	}

	peer.TRangeReceived = rxTS
	peer.LastActivityMS = nowMS
	e.noteActivity(nowMS)

	if e.protocolFailed {
		e.anchorState = AwaitPoll
		return
	}

	round1 := timestamp.Timestamp(found.Delta1).Wrap()
	reply2 := timestamp.Timestamp(found.Delta2).Wrap()
	reply1 := peer.TPollAckSent.Sub(peer.TPollReceived).Wrap()
	round2 := peer.TRangeReceived.Sub(peer.TPollAckSent).Wrap()

	tof := ComputeTOF(round1, reply1, round2, reply2)
	peer.Range = tof.AsMeters()
	e.stats.IncRangeComputed()
	e.Callbacks.fireNewRange(peer)

	if e.cfg.EnableRangeReport {
		frame2 := e.codec.BuildRangeReport(e.selfShort, src, float32(peer.Range), peer.RXPower)
		if err := e.transmit(frame2, mac.TypeRangeReport, []mac.ShortAddress{src}, nil); err != nil {
			log.Warningf("ranging: transmit RANGE_REPORT to %s: %v", src, err)
		}
	}
	e.anchorState = AwaitPoll
}

// --- Tag state machine (spec.md §4.4.3) ---

func (e *Engine) tagHandleFrame(nowMS int64, frame []byte, msgType mac.MessageType, rxTS timestamp.Timestamp, rxPower, fpPower, quality float32) {
	switch msgType {
	case mac.TypeRangingInit:
		e.tagHandleRangingInit(nowMS, frame)
	case mac.TypePollAck:
		e.tagHandlePollAck(nowMS, frame, rxTS, rxPower, fpPower, quality)
	case mac.TypeRangeReport:
		e.tagHandleRangeReport(nowMS, frame)
	default:
		e.tagState = AwaitPollAck
	}
}

func (e *Engine) tagHandleRangingInit(nowMS int64, frame []byte) {
	anchorAddr, err := mac.DecodeLongSrc(frame)
	if err != nil {
		log.Warningf("ranging: decode ranging_init: %v", err)
		return
	}
	if e.table.Find(anchorAddr) != nil {
		return
	}
	peer := &Peer{ShortAddr: anchorAddr}
	res, evicted := e.table.Insert(peer)
	if res == Replaced {
		e.stats.IncPeerEvicted()
		e.Callbacks.fireEvictedOnFull(evicted)
	}
	peer.LastActivityMS = nowMS
	e.noteActivity(nowMS)
	e.Callbacks.fireNewDevice(peer)
}

func (e *Engine) tagHandlePollAck(nowMS int64, frame []byte, rxTS timestamp.Timestamp, rxPower, fpPower, quality float32) {
	if e.tagState != AwaitPollAck {
		e.tagState = AwaitPollAck
		return
	}
	src, err := mac.DecodeShortSrc(frame)
	if err != nil {
		log.Warningf("ranging: decode poll_ack source: %v", err)
		return
	}
	peer := e.table.Find(src)
	if peer == nil {
		log.Debugf("ranging: POLL_ACK from unknown peer %s dropped", src)
		return
	}
	peer.TPollAckReceived = rxTS
	peer.HasAckedPoll = true
	peer.LastActivityMS = nowMS
	peer.RXPower, peer.FirstPathPower, peer.Quality = rxPower, fpPower, quality
	e.noteActivity(nowMS)

	peer.Round1 = peer.TPollAckReceived.Sub(peer.TPollSent).Wrap()

	if src == e.lastExpectedAddr {
		e.tagTransmitRange(nowMS)
	}
}

func (e *Engine) tagTransmitRange(nowMS int64) {
	if err := e.driver.NewTransmit(); err != nil {
		log.Warningf("ranging: NewTransmit RANGE: %v", err)
		return
	}
	delay := timestamp.FromMicroseconds(float64(e.cfg.ReplyDelayUS))
	predictedTxTS, err := e.driver.SetDelay(delay)
	if err != nil {
		log.Warningf("ranging: SetDelay RANGE: %v", err)
		return
	}

	var entries []mac.RangeEntry
	var addrs []mac.ShortAddress
	for _, p := range e.table.All() {
		if !p.HasAckedPoll {
			continue
		}
		p.Reply2 = predictedTxTS.Sub(p.TPollAckReceived).Wrap()
		entries = append(entries, mac.RangeEntry{
			Addr:   p.ShortAddr,
			Delta1: p.Round1.AsTicks(),
			Delta2: p.Reply2.AsTicks(),
		})
		addrs = append(addrs, p.ShortAddr)
	}

	frame := e.codec.BuildRange(e.selfShort, entries)
	if err := e.driver.SetData(frame); err != nil {
		log.Warningf("ranging: SetData RANGE: %v", err)
		return
	}
	if err := e.driver.StartTransmit(); err != nil {
		log.Warningf("ranging: StartTransmit RANGE: %v", err)
		return
	}
	e.pendingTxType = mac.TypeRange
	e.pendingTxAddrs = addrs
	e.stats.IncFramesSent(mac.TypeRange)
	e.pollAckDeadlineSet = false

	if e.cfg.EnableRangeReport {
		e.tagState = AwaitRangeReport
	} else {
		e.tagState = Idle
	}
}

func (e *Engine) tagHandleRangeReport(nowMS int64, frame []byte) {
	if e.tagState != AwaitRangeReport {
		return
	}
	src, err := mac.DecodeShortSrc(frame)
	if err != nil {
		log.Warningf("ranging: decode range_report source: %v", err)
		return
	}
	peer := e.table.Find(src)
	if peer == nil {
		log.Debugf("ranging: RANGE_REPORT from unknown peer %s dropped", src)
		return
	}
	rangeMeters, rxPower, err := mac.DecodeRangeReport(frame)
	if err != nil {
		log.Warningf("ranging: decode range_report: %v", err)
		return
	}
	peer.Range = float64(rangeMeters)
	peer.RXPower = rxPower
	peer.LastActivityMS = nowMS
	e.noteActivity(nowMS)
	e.stats.IncRangeComputed()
	e.Callbacks.fireNewRange(peer)
	e.tagState = Idle
}

// --- Scheduler-facing emissions ---

func (e *Engine) transmitBlink() {
	peers := e.table.All()
	known := make([]mac.ShortAddress, 0, len(peers))
	for _, p := range peers {
		known = append(known, p.ShortAddr)
	}
	frame := e.codec.BuildBlink(e.selfShort, known)
	if err := e.transmit(frame, mac.TypeBlink, nil, nil); err != nil {
		log.Warningf("ranging: transmit BLINK: %v", err)
	}
}

func (e *Engine) transmitPoll(nowMS int64) {
	peers := e.table.All()
	n := len(peers)
	if n > devicePerPollTransmit {
		n = devicePerPollTransmit
	}
	startSlot := 0
	if n < pollAckTimeSlots {
		startSlot = pollAckTimeSlots - n
	}

	entries := make([]mac.PollEntry, 0, n)
	addrs := make([]mac.ShortAddress, 0, n)
	var lastAddr mac.ShortAddress
	for i := 0; i < n; i++ {
		p := peers[i]
		slot := startSlot + i
		replyTime := uint16((2*slot + 1) * int(e.cfg.ReplyDelayUS))
		entries = append(entries, mac.PollEntry{Addr: p.ShortAddr, ReplyTime: replyTime})
		addrs = append(addrs, p.ShortAddr)
		p.HasAckedPoll = false
		lastAddr = p.ShortAddr
	}

	frame := e.codec.BuildPoll(e.selfShort, entries)
	if err := e.transmit(frame, mac.TypePoll, addrs, nil); err != nil {
		log.Warningf("ranging: transmit POLL: %v", err)
		return
	}

	e.lastExpectedAddr = lastAddr
	e.tagState = AwaitPollAck

	lastSlot := startSlot + n - 1
	if lastSlot < 0 {
		lastSlot = 0
	}
	lastReplyUS := (2*lastSlot + 1) * int(e.cfg.ReplyDelayUS)
	e.pollAckDeadlineMS = nowMS + int64(lastReplyUS)/1000 + 3
	e.pollAckDeadlineSet = true
}
