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

package timestamp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMasksTo40Bits(t *testing.T) {
	ts := New(Mask + 12345) // 2^40 + 12344
	assert.Equal(t, Timestamp(12344), ts)
}

func TestAddWraps(t *testing.T) {
	a := Timestamp(Mask)
	b := New(2)
	assert.Equal(t, Timestamp(1), a.Add(b))
}

func TestSubAndWrapPositiveDifference(t *testing.T) {
	early := New(1000)
	later := New(6100)
	diff := later.Sub(early).Wrap()
	assert.Equal(t, Timestamp(5100), diff)
}

func TestSubAndWrapAcrossCounterRollover(t *testing.T) {
	// later timestamp captured just after the 40-bit counter rolled over
	early := New(Mask - 99)
	later := New(50)
	diff := later.Sub(early).Wrap()
	assert.Equal(t, Timestamp(150), diff)
}

func TestWrapInvariantAlwaysNonNegativeAndSmall(t *testing.T) {
	// property 5 from spec.md §8: for any a <= b (mod 2^40),
	// (b-a).Wrap().AsTicks() is in [0, 2^39)
	cases := []struct{ a, b uint64 }{
		{0, 0}, {0, 1}, {Mask, 0}, {Mask - 1, 3}, {1 << 20, 1<<20 + 7},
	}
	for _, c := range cases {
		d := New(c.b).Sub(New(c.a)).Wrap()
		assert.Less(t, d.AsTicks(), uint64(1)<<(Width-1))
	}
}

func TestAsMetersRoughCalibration(t *testing.T) {
	// 1 meter of flight time is roughly 3.336 ns, i.e. about 213 ticks.
	oneMeterTicks := FromMicroseconds(0.0033356)
	got := oneMeterTicks.AsMeters()
	require.InDelta(t, 1.0, got, 0.01)
}

func TestMicrosecondsRoundTrip(t *testing.T) {
	ts := FromMicroseconds(3000)
	got := ts.AsMicroseconds()
	assert.InDelta(t, 3000.0, got, 0.01)
}

func TestMulDiv(t *testing.T) {
	ts := New(100)
	assert.Equal(t, Timestamp(300), ts.Mul(3))
	assert.Equal(t, Timestamp(100), ts.Mul(3).Div(3))
	assert.Equal(t, ts, ts.Div(0)) // divide by zero is a no-op, not a panic
}

func TestAsInt64TicksMatchesAsTicks(t *testing.T) {
	ts := New(987654321)
	assert.Equal(t, int64(ts.AsTicks()), ts.AsInt64Ticks())
}

func TestWrapNeverProducesNaN(t *testing.T) {
	// sanity: Wrap output always feeds cleanly into AsMeters
	d := New(0).Sub(New(1)).Wrap()
	assert.False(t, math.IsNaN(d.AsMeters()))
}
