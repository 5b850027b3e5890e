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

// Package timestamp implements the DW1000's 40-bit device-time counter:
// wrap-safe ring arithmetic and fixed-point conversion to meters and to
// microseconds. Values of Timestamp are ticks, not wall-clock time.
package timestamp

// Width is the number of significant bits in a DW1000 timestamp register.
const Width = 40

// Mask covers the 40 low bits that the radio's counter actually uses.
const Mask uint64 = (1 << Width) - 1

// signBit is the bit that, when set in a 40-bit value, indicates a negative
// quantity for the purposes of Wrap.
const signBit uint64 = 1 << (Width - 1)

// TickHz is the DW1000 fundamental counter frequency: 128 * 499.2 MHz.
const TickHz = 128 * 499.2e6

// TickDuration is the duration of one device tick in seconds, about 15.65
// picoseconds.
const TickDuration = 1.0 / TickHz

// SpeedOfLight is c in meters per second.
const SpeedOfLight = 299792458.0

// tickSeconds is one tick expressed in seconds as a float64.
const tickSeconds = 1.0 / TickHz

// Timestamp is a 40-bit unsigned device-time count. Add and Sub are ring
// arithmetic modulo 2^40, matching the DW1000's free-running counter
// register. Mul and Div operate on the plain tick value without
// re-truncating to 40 bits: they exist to scale a timestamp by a small
// integer factor (e.g. slot numbering), not to model register overflow.
type Timestamp uint64

// New truncates an arbitrary uint64 tick count to the 40-bit device range.
func New(ticks uint64) Timestamp {
	return Timestamp(ticks & Mask)
}

// FromMicroseconds converts a duration in microseconds to device ticks.
func FromMicroseconds(us float64) Timestamp {
	return New(uint64(us * 1e-6 * TickHz))
}

// AsMicroseconds converts ticks to a duration in microseconds.
func (t Timestamp) AsMicroseconds() float64 {
	return float64(t) * tickSeconds * 1e6
}

// AsMeters converts a tick count — typically a time-of-flight duration
// already produced by Wrap — into a one-way distance in meters:
// ticks * tick_duration * c.
func (t Timestamp) AsMeters() float64 {
	return float64(t) * tickSeconds * SpeedOfLight
}

// Add returns t + other, ring-reduced modulo 2^40.
func (t Timestamp) Add(other Timestamp) Timestamp {
	return New(uint64(t) + uint64(other))
}

// Sub returns t - other, ring-reduced modulo 2^40. The raw result may
// represent a negative quantity (high bit set in the 40-bit space); call
// Wrap to normalize a difference that is known to be non-negative once
// correctly ordered.
func (t Timestamp) Sub(other Timestamp) Timestamp {
	return New(uint64(t) - uint64(other) + (Mask + 1))
}

// Mul scales t by a non-negative integer factor.
func (t Timestamp) Mul(factor uint64) Timestamp {
	return Timestamp(uint64(t) * factor)
}

// Div divides t by a positive integer divisor.
func (t Timestamp) Div(divisor uint64) Timestamp {
	if divisor == 0 {
		return t
	}
	return Timestamp(uint64(t) / divisor)
}

// Wrap normalizes a possibly-oversized or logically-negative 40-bit
// difference into the positive half of the 40-bit range, [0, 2^39). This is
// the basic TWR correctness invariant: subtracting a later-captured
// timestamp from an earlier one (modulo-2^40 wraparound included) must
// yield a small positive duration once normalized.
func (t Timestamp) Wrap() Timestamp {
	v := uint64(t) & Mask
	if v&signBit != 0 {
		v = (Mask + 1) - v
	}
	return Timestamp(v)
}

// AsTicks returns the raw 40-bit tick count.
func (t Timestamp) AsTicks() uint64 {
	return uint64(t) & Mask
}

// AsInt64Ticks returns the tick count as a signed int64, useful for the
// time-of-flight formula's products and sums which can exceed the 40-bit
// range but comfortably fit in 64 bits for realistic ranging durations.
func (t Timestamp) AsInt64Ticks() int64 {
	return int64(t.AsTicks())
}
