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

// Package radio declares the collaborator contract the ranging engine
// consumes: the SPI/GPIO driver that configures a DW1000 transceiver and
// returns hardware send/receive timestamps (spec.md §6.1). It is
// deliberately thin — configuration, interrupt attachment, and the
// send/receive primitives — with all protocol logic living in package
// ranging.
package radio

import (
	"github.com/uwb-go/dw1000/mac"
	"github.com/uwb-go/dw1000/timestamp"
)

// Driver is the contract the ranging engine needs from the underlying
// DW1000 SPI/GPIO driver. Implementations must be safe to call from a
// single goroutine only; AttachSentHandler/AttachReceivedHandler
// callbacks, however, may run on an interrupt context and must only
// touch the Mailbox (see mailbox.go).
type Driver interface {
	// Begin initializes the chip select, IRQ and reset GPIO lines.
	Begin(irq, rst int) error
	// Select binds the driver to a specific chip-select line (for
	// multi-radio boards); most deployments call this once.
	Select(cs int) error

	// Configuration sequence, called once at start-up in this order.
	NewConfiguration() error
	SetDefaults() error
	SetDeviceAddress(addr mac.ShortAddress) error
	SetNetworkID(id uint16) error
	EnableMode(mode string) error
	CommitConfiguration() error

	// SetEUI sets the node's 64-bit address.
	SetEUI(eui mac.LongAddress) error

	// AttachSentHandler/AttachReceivedHandler register the interrupt
	// hooks. fn must be safe to invoke from an interrupt context; it is
	// expected to do nothing more than post to an EventMailbox.
	AttachSentHandler(fn func())
	AttachReceivedHandler(fn func())

	// Send path.
	NewTransmit() error
	SetData(data []byte) error
	// SetDelay schedules the transmission for delay ticks from now and
	// returns the timestamp at which it is actually scheduled to go out.
	SetDelay(delay timestamp.Timestamp) (timestamp.Timestamp, error)
	StartTransmit() error

	// Receive path.
	NewReceive() error
	ReceivePermanently(permanent bool) error
	StartReceive() error
	GetData(buf []byte) (int, error)

	// Post-event timestamps and link-quality metrics.
	GetTransmitTimestamp() (timestamp.Timestamp, error)
	GetReceiveTimestamp() (timestamp.Timestamp, error)
	GetReceivePower() float32
	GetFirstPathPower() float32
	GetReceiveQuality() float32
	IsReceiveFailed() bool

	// HighPowerInit optionally boosts transmit power.
	HighPowerInit() error
}
