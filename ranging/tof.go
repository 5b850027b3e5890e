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

import "github.com/uwb-go/dw1000/timestamp"

// ComputeTOF implements the asymmetric two-way ranging formula (spec.md
// §4.4.1): tof = (round1*round2 - reply1*reply2) / (round1+round2+reply1+reply2).
// All four inputs must already be Wrap()-normalized durations, not raw
// 40-bit register values. The formula is symmetric under swapping
// (round1, reply1) with (round2, reply2).
func ComputeTOF(round1, reply1, round2, reply2 timestamp.Timestamp) timestamp.Timestamp {
	r1 := round1.AsInt64Ticks()
	p1 := reply1.AsInt64Ticks()
	r2 := round2.AsInt64Ticks()
	p2 := reply2.AsInt64Ticks()

	denom := r1 + r2 + p1 + p2
	if denom == 0 {
		return 0
	}
	tof := (r1*r2 - p1*p2) / denom
	if tof < 0 {
		tof = 0
	}
	return timestamp.New(uint64(tof))
}
