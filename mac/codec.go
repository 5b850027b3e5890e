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

package mac

import (
	"encoding/binary"
	"fmt"
	"math"
)

// PollDeviceSize is the per-entry length of a POLL payload record.
const PollDeviceSize = 4

// RangeDeviceSize is the per-entry length of a RANGE payload record.
const RangeDeviceSize = 12

// RangeReportSize is the fixed length of a RANGE_REPORT payload.
const RangeReportSize = 8

// PollEntry is one slot assignment carried in a POLL frame.
type PollEntry struct {
	Addr      ShortAddress
	ReplyTime uint16 // microseconds
}

// RangeEntry is one set of pre-computed TWR deltas carried in a RANGE
// frame, per spec.md §4.4.1: the tag ships round1 (t_poll_ack_recv -
// t_poll_sent) and reply2 (t_range_sent - t_poll_ack_recv) so the anchor
// can finish the formula using only its own clock.
type RangeEntry struct {
	Addr   ShortAddress
	Delta1 uint64 // round1, 40-bit tick count
	Delta2 uint64 // reply2, 40-bit tick count
}

// Codec builds and parses MAC frames. It owns the monotonic 8-bit sequence
// counter stamped into every outgoing frame; one Codec instance belongs to
// one ProtocolEngine.
type Codec struct {
	seq uint8
}

// NewCodec returns a Codec with its sequence counter at zero.
func NewCodec() *Codec {
	return &Codec{}
}

func (c *Codec) nextSeq() uint8 {
	s := c.seq
	c.seq++
	return s
}

func putShortLE(buf []byte, off int, a ShortAddress) {
	binary.LittleEndian.PutUint16(buf[off:off+2], uint16(a))
}

func getShortLE(buf []byte, off int) ShortAddress {
	return ShortAddress(binary.LittleEndian.Uint16(buf[off : off+2]))
}

// ShortAddressToEUI synthesizes an EUI-64 from a short address by
// left-padding with zero OUI bytes. This bridges the address-width gap
// between Peer's short-address-only bookkeeping (spec.md §3) and the
// Long MAC shape's 8-byte destination field (spec.md §6.2).
func ShortAddressToEUI(a ShortAddress) LongAddress {
	var eui LongAddress
	eui[6] = byte(a >> 8)
	eui[7] = byte(a)
	return eui
}

// BuildBlink encodes a BLINK frame. known is the list of short addresses
// the tag already believes it shares with some anchor; anchors use this
// list to detect whether they still need to send RANGING_INIT.
func (c *Codec) BuildBlink(src ShortAddress, known []ShortAddress) []byte {
	buf := make([]byte, BlinkLen+1+len(known)*2)
	buf[0] = fc1Blink
	buf[1] = c.nextSeq()
	putShortLE(buf, 2, src)
	buf[BlinkLen] = byte(len(known))
	for i, a := range known {
		putShortLE(buf, BlinkLen+1+i*2, a)
	}
	return buf
}

// DecodeBlinkSrc recovers the source short address of a BLINK frame.
func DecodeBlinkSrc(frame []byte) (ShortAddress, error) {
	if len(frame) < BlinkLen {
		return 0, fmt.Errorf("mac: blink frame too short: %d bytes", len(frame))
	}
	return getShortLE(frame, 2), nil
}

// DecodeBlinkKnown returns the short addresses the tag listed as already
// known, if any.
func DecodeBlinkKnown(frame []byte) []ShortAddress {
	if len(frame) <= BlinkLen {
		return nil
	}
	n := int(frame[BlinkLen])
	out := make([]ShortAddress, 0, n)
	for i := 0; i < n; i++ {
		off := BlinkLen + 1 + i*2
		if off+2 > len(frame) {
			break
		}
		out = append(out, getShortLE(frame, off))
	}
	return out
}

func (c *Codec) buildShortHeader(dst ShortAddress, src ShortAddress, payloadLen int) []byte {
	buf := make([]byte, ShortMACLen+1+payloadLen)
	buf[0] = fc1
	buf[1] = fc2Short
	buf[2] = c.nextSeq()
	buf[3] = panIDLo
	buf[4] = panIDHi
	putShortLE(buf, 5, dst)
	putShortLE(buf, 7, src)
	return buf
}

// DecodeShortSrc recovers the source short address of a short-MAC frame.
func DecodeShortSrc(frame []byte) (ShortAddress, error) {
	if len(frame) < ShortMACLen {
		return 0, fmt.Errorf("mac: short frame too short: %d bytes", len(frame))
	}
	return getShortLE(frame, 7), nil
}

func (c *Codec) buildLongHeader(dstEUI LongAddress, src ShortAddress, payloadLen int) []byte {
	buf := make([]byte, LongMACLen+1+payloadLen)
	buf[0] = fc1
	buf[1] = fc2Long
	buf[2] = c.nextSeq()
	buf[3] = panIDLo
	buf[4] = panIDHi
	// dst_eui is stored MSB-first in memory, reversed on the wire per
	// spec.md §6.2 ("Long MAC ... dst_eui_7 … dst_eui_0").
	for i := 0; i < 8; i++ {
		buf[5+i] = dstEUI[7-i]
	}
	putShortLE(buf, 13, src)
	return buf
}

// DecodeLongSrc recovers the source short address of a long-MAC frame.
func DecodeLongSrc(frame []byte) (ShortAddress, error) {
	if len(frame) < LongMACLen {
		return 0, fmt.Errorf("mac: long frame too short: %d bytes", len(frame))
	}
	return getShortLE(frame, 13), nil
}

// BuildPoll encodes a multicast POLL frame listing the anchors addressed
// in this cycle and their assigned reply slots.
func (c *Codec) BuildPoll(src ShortAddress, entries []PollEntry) []byte {
	payload := make([]byte, 1+len(entries)*PollDeviceSize)
	payload[0] = byte(len(entries))
	for i, e := range entries {
		off := 1 + i*PollDeviceSize
		putShortLE(payload, off, e.Addr)
		binary.LittleEndian.PutUint16(payload[off+2:off+4], e.ReplyTime)
	}
	buf := c.buildShortHeader(Broadcast, src, len(payload)+1)
	buf[ShortMACLen] = byte(TypePoll)
	copy(buf[ShortMACLen+1:], payload)
	return buf
}

// DecodePoll parses a POLL payload into its per-anchor slot entries.
func DecodePoll(frame []byte) ([]PollEntry, error) {
	if len(frame) <= ShortMACLen {
		return nil, fmt.Errorf("mac: poll frame has no payload")
	}
	payload := frame[ShortMACLen+1:]
	if len(payload) < 1 {
		return nil, fmt.Errorf("mac: poll payload truncated")
	}
	n := int(payload[0])
	entries := make([]PollEntry, 0, n)
	for i := 0; i < n; i++ {
		off := 1 + i*PollDeviceSize
		if off+PollDeviceSize > len(payload) {
			return nil, fmt.Errorf("mac: poll payload truncated at entry %d", i)
		}
		entries = append(entries, PollEntry{
			Addr:      getShortLE(payload, off),
			ReplyTime: binary.LittleEndian.Uint16(payload[off+2 : off+4]),
		})
	}
	return entries, nil
}

// BuildPollAck encodes a POLL_ACK frame from an anchor to a tag.
func (c *Codec) BuildPollAck(src, dst ShortAddress) []byte {
	buf := c.buildShortHeader(dst, src, 1)
	buf[ShortMACLen] = byte(TypePollAck)
	return buf
}

// BuildRange encodes a RANGE frame carrying the tag-computed deltas for
// each anchor that acknowledged the preceding POLL.
func (c *Codec) BuildRange(src ShortAddress, entries []RangeEntry) []byte {
	payload := make([]byte, 1+len(entries)*RangeDeviceSize)
	payload[0] = byte(len(entries))
	for i, e := range entries {
		off := 1 + i*RangeDeviceSize
		putShortLE(payload, off, e.Addr)
		// bytes [off+2:off+4] reserved, left zero
		put40LE(payload, off+4, e.Delta1)
		put40LE(payload, off+9, e.Delta2)
	}
	buf := c.buildShortHeader(Broadcast, src, len(payload)+1)
	buf[ShortMACLen] = byte(TypeRange)
	copy(buf[ShortMACLen+1:], payload)
	return buf
}

// DecodeRange parses a RANGE payload into its per-anchor delta entries.
func DecodeRange(frame []byte) ([]RangeEntry, error) {
	if len(frame) <= ShortMACLen {
		return nil, fmt.Errorf("mac: range frame has no payload")
	}
	payload := frame[ShortMACLen+1:]
	if len(payload) < 1 {
		return nil, fmt.Errorf("mac: range payload truncated")
	}
	n := int(payload[0])
	entries := make([]RangeEntry, 0, n)
	for i := 0; i < n; i++ {
		off := 1 + i*RangeDeviceSize
		if off+RangeDeviceSize > len(payload) {
			return nil, fmt.Errorf("mac: range payload truncated at entry %d", i)
		}
		entries = append(entries, RangeEntry{
			Addr:   getShortLE(payload, off),
			Delta1: get40LE(payload, off+4),
			Delta2: get40LE(payload, off+9),
		})
	}
	return entries, nil
}

// BuildRangeReport encodes a RANGE_REPORT frame.
func (c *Codec) BuildRangeReport(src, dst ShortAddress, rangeMeters, rxPower float32) []byte {
	buf := c.buildShortHeader(dst, src, RangeReportSize+1)
	buf[ShortMACLen] = byte(TypeRangeReport)
	payload := buf[ShortMACLen+1:]
	binary.LittleEndian.PutUint32(payload[0:4], math.Float32bits(rangeMeters))
	binary.LittleEndian.PutUint32(payload[4:8], math.Float32bits(rxPower))
	return buf
}

// DecodeRangeReport parses a RANGE_REPORT payload.
func DecodeRangeReport(frame []byte) (rangeMeters, rxPower float32, err error) {
	if len(frame) < ShortMACLen+1+RangeReportSize {
		return 0, 0, fmt.Errorf("mac: range_report payload truncated")
	}
	payload := frame[ShortMACLen+1:]
	rangeMeters = math.Float32frombits(binary.LittleEndian.Uint32(payload[0:4]))
	rxPower = math.Float32frombits(binary.LittleEndian.Uint32(payload[4:8]))
	return rangeMeters, rxPower, nil
}

// BuildRangingInit encodes a RANGING_INIT frame, the anchor's long-MAC
// first-contact reply to an unrecognized tag.
func (c *Codec) BuildRangingInit(src ShortAddress, dstEUI LongAddress) []byte {
	buf := c.buildLongHeader(dstEUI, src, 1)
	buf[LongMACLen] = byte(TypeRangingInit)
	return buf
}

// put40LE writes the low 40 bits of v into buf[off:off+5], little-endian.
func put40LE(buf []byte, off int, v uint64) {
	for i := 0; i < 5; i++ {
		buf[off+i] = byte(v >> (8 * i))
	}
}

// get40LE reads a 40-bit little-endian value from buf[off:off+5].
func get40LE(buf []byte, off int) uint64 {
	var v uint64
	for i := 0; i < 5; i++ {
		v |= uint64(buf[off+i]) << (8 * i)
	}
	return v
}
