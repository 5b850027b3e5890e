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

// Package mac implements the 802.15.4-derived MAC framing used by the
// DW1000 ranging protocol: short (2-byte) and long (EUI-64) addresses, the
// blink/short/long frame shapes, and the codec that builds and parses them.
package mac

import "fmt"

// ShortAddress is a 2-byte device address, stored here in normal (MSB-first)
// order; MacCodec reverses the bytes exactly once at the wire boundary.
type ShortAddress uint16

// Broadcast is the reserved short address meaning "all devices".
const Broadcast ShortAddress = 0xFFFF

// String renders a short address as 0xNNNN.
func (a ShortAddress) String() string {
	return fmt.Sprintf("0x%04X", uint16(a))
}

// LongAddress is an 8-byte EUI-64 device address, stored MSB-first.
type LongAddress [8]byte

// String renders a long address as colon-separated hex octets.
func (a LongAddress) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X:%02X:%02X",
		a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7])
}
