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

// Package ranging implements the asymmetric two-way ranging protocol
// engine that sits between a radio.Driver collaborator and application
// callbacks: peer bookkeeping, the blink/poll scheduler, and the per-role
// anchor/tag state machine that turns timestamped frame exchanges into
// distance measurements.
package ranging

import (
	"github.com/uwb-go/dw1000/mac"
	"github.com/uwb-go/dw1000/timestamp"
)

// Peer is one known remote device's timing record. The six TWR timestamps
// and their derived deltas are filled in over the course of one ranging
// cycle; stale fields from a previous cycle are harmless since each
// engine state transition only reads the subset it just wrote.
type Peer struct {
	ShortAddr mac.ShortAddress
	LongAddr  mac.LongAddress

	// The six TWR timestamps, see spec §3 / §4.4.1.
	TPollSent        timestamp.Timestamp
	TPollReceived    timestamp.Timestamp
	TPollAckSent     timestamp.Timestamp
	TPollAckReceived timestamp.Timestamp
	TRangeSent       timestamp.Timestamp
	TRangeReceived   timestamp.Timestamp

	// Deltas carried over the wire so the anchor never needs the tag's
	// absolute clock.
	Round1 timestamp.Timestamp // t_poll_ack_received - t_poll_sent
	Reply2 timestamp.Timestamp // t_range_sent - t_poll_ack_received

	Range float64 // most recent computed distance, meters

	RXPower       float32
	FirstPathPower float32
	Quality       float32

	LastActivityMS int64
	ReplyDelayUS   uint16
	HasAckedPoll   bool

	index int
}

// Index returns the peer's current dense position within its PeerTable.
func (p *Peer) Index() int { return p.index }
