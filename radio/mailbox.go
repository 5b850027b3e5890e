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

package radio

import "sync/atomic"

// EventMailbox is the single-slot, lock-free handoff between the radio's
// interrupt handlers and the cooperative Poll loop (spec.md §5). The
// interrupt context calls MarkSent/MarkReceived; the owning goroutine
// calls TakeSent/TakeReceived once per Poll, sent before received, to
// match the hardware timeline where a TX-complete interrupt is observed
// before a pending RX-complete interrupt when both race.
//
// On platforms with real hardware interrupts this is simply two atomic
// flags; on thread-based test harnesses the same type fills the role of
// a mutex-protected mailbox without needing one, since sync/atomic
// operations are safe to call from any goroutine.
type EventMailbox struct {
	sent     atomic.Bool
	received atomic.Bool
}

// MarkSent records that a transmission completed. Safe to call from an
// interrupt handler.
func (m *EventMailbox) MarkSent() {
	m.sent.Store(true)
}

// MarkReceived records that a frame arrived. Safe to call from an
// interrupt handler.
func (m *EventMailbox) MarkReceived() {
	m.received.Store(true)
}

// TakeSent atomically reads and clears the sent flag.
func (m *EventMailbox) TakeSent() bool {
	return m.sent.CompareAndSwap(true, false)
}

// TakeReceived atomically reads and clears the received flag.
func (m *EventMailbox) TakeReceived() bool {
	return m.received.CompareAndSwap(true, false)
}
