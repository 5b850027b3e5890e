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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectTypeRoundTrip(t *testing.T) {
	c := NewCodec()

	blink := c.BuildBlink(0x0001, nil)
	shape, typ := DetectType(blink)
	assert.Equal(t, ShapeBlink, shape)
	assert.Equal(t, TypeBlink, typ)

	poll := c.BuildPoll(0x0001, []PollEntry{{Addr: 0x0002, ReplyTime: 3000}})
	shape, typ = DetectType(poll)
	assert.Equal(t, ShapeShort, shape)
	assert.Equal(t, TypePoll, typ)

	ack := c.BuildPollAck(0x0002, 0x0001)
	_, typ = DetectType(ack)
	assert.Equal(t, TypePollAck, typ)

	rng := c.BuildRange(0x0001, []RangeEntry{{Addr: 0x0002, Delta1: 6100, Delta2: 3100}})
	_, typ = DetectType(rng)
	assert.Equal(t, TypeRange, typ)

	report := c.BuildRangeReport(0x0002, 0x0001, 1.23, -80.0)
	_, typ = DetectType(report)
	assert.Equal(t, TypeRangeReport, typ)

	init := c.BuildRangingInit(0x0002, ShortAddressToEUI(0x0001))
	shape, typ = DetectType(init)
	assert.Equal(t, ShapeLong, shape)
	assert.Equal(t, TypeRangingInit, typ)
}

func TestDecodeSrcRoundTrip(t *testing.T) {
	c := NewCodec()

	blink := c.BuildBlink(0x1234, nil)
	src, err := DecodeBlinkSrc(blink)
	require.NoError(t, err)
	assert.Equal(t, ShortAddress(0x1234), src)

	short := c.BuildPollAck(0x5678, 0x0001)
	src, err = DecodeShortSrc(short)
	require.NoError(t, err)
	assert.Equal(t, ShortAddress(0x5678), src)

	long := c.BuildRangingInit(0xABCD, ShortAddressToEUI(0x0001))
	src, err = DecodeLongSrc(long)
	require.NoError(t, err)
	assert.Equal(t, ShortAddress(0xABCD), src)
}

func TestUnknownFrameIsTypeError(t *testing.T) {
	shape, typ := DetectType([]byte{0x00, 0x00})
	assert.Equal(t, ShapeUnknown, shape)
	assert.Equal(t, TypeError, typ)
}

func TestTruncatedFrameIsTypeError(t *testing.T) {
	_, typ := DetectType([]byte{fc1, fc2Short})
	assert.Equal(t, TypeError, typ)
}

func TestSequenceNumberIncrementsAndWraps(t *testing.T) {
	c := NewCodec()
	c.seq = 255
	f1 := c.BuildBlink(1, nil)
	f2 := c.BuildBlink(1, nil)
	assert.Equal(t, uint8(255), f1[1])
	assert.Equal(t, uint8(0), f2[1])
}

func TestBlinkKnownList(t *testing.T) {
	c := NewCodec()
	known := []ShortAddress{0x0001, 0x0002, 0x0003}
	blink := c.BuildBlink(0x0010, known)
	got := DecodeBlinkKnown(blink)
	assert.Equal(t, known, got)
}

func TestPollPayloadRoundTrip(t *testing.T) {
	c := NewCodec()
	entries := []PollEntry{
		{Addr: 0x00A0, ReplyTime: 3000},
		{Addr: 0x00A1, ReplyTime: 9000},
	}
	poll := c.BuildPoll(0x0001, entries)
	got, err := DecodePoll(poll)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestRangePayloadRoundTrip(t *testing.T) {
	c := NewCodec()
	entries := []RangeEntry{
		{Addr: 0x00A0, Delta1: 6100, Delta2: 3100},
		{Addr: 0x00A1, Delta1: (1 << 40) - 1, Delta2: 0},
	}
	rng := c.BuildRange(0x0001, entries)
	got, err := DecodeRange(rng)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestRangeReportRoundTrip(t *testing.T) {
	c := NewCodec()
	report := c.BuildRangeReport(0x0002, 0x0001, 4.2, -73.5)
	dist, power, err := DecodeRangeReport(report)
	require.NoError(t, err)
	assert.InDelta(t, 4.2, dist, 0.0001)
	assert.InDelta(t, -73.5, power, 0.0001)
}

func TestPanIDFixed(t *testing.T) {
	c := NewCodec()
	poll := c.BuildPoll(1, nil)
	assert.Equal(t, byte(panIDLo), poll[3])
	assert.Equal(t, byte(panIDHi), poll[4])
}
