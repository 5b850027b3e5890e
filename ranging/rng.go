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

import "github.com/uwb-go/dw1000/mac"

// RNG is the platform random-number collaborator spec.md §1 leaves
// out-of-scope (alongside the monotonic clock). Engine only needs an
// integer in [0, n).
type RNG interface {
	Intn(n int) int
}

// NewShortAddress draws a short address from rng, retrying on collision
// with the reserved broadcast value 0xFFFF. This replicates a guard the
// original DW1000Ranging.cpp runs at Begin() time when a node has no
// operator-assigned address; most deployments instead set
// Config.ShortAddress explicitly and never call this.
func NewShortAddress(rng RNG) mac.ShortAddress {
	for {
		addr := mac.ShortAddress(rng.Intn(0x10000))
		if addr != mac.Broadcast {
			return addr
		}
	}
}

// randomSlot picks a slot uniformly in [loSlot, hiSlot] inclusive, used
// for the anchor's RANGING_INIT backoff (spec.md §4.4.2: "random slot in
// [slot_duration, 7*slot_duration]").
func randomSlot(rng RNG, loSlot, hiSlot int) int {
	if hiSlot <= loSlot {
		return loSlot
	}
	return loSlot + rng.Intn(hiSlot-loSlot+1)
}
