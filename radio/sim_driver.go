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

import (
	"errors"

	"github.com/uwb-go/dw1000/mac"
	"github.com/uwb-go/dw1000/timestamp"
)

// SimDriver is an in-memory Driver used by engine tests (spec.md §8: "end
// to end scenarios ... RadioDriver mocked to return scripted
// timestamps"). Test code drives it directly: InjectReceive simulates an
// incoming frame and fires the received-handler callback exactly like a
// real interrupt would; TXLog records every frame the engine transmitted
// so assertions can inspect it.
type SimDriver struct {
	Mailbox EventMailbox

	sentHandler     func()
	receivedHandler func()

	// configuration capture, inspectable by tests
	DeviceAddress mac.ShortAddress
	NetworkID     uint16
	Mode          string
	EUI           mac.LongAddress
	HighPower     bool

	// send path state
	pendingData   []byte
	pendingDelay  timestamp.Timestamp
	NextTxTS      timestamp.Timestamp // what GetTransmitTimestamp will report next
	TXLog         [][]byte            // every frame handed to StartTransmit, in order

	// receive path state
	rxFrame    []byte
	rxTS       timestamp.Timestamp
	rxPower    float32
	fpPower    float32
	rxQuality  float32
	rxFailed   bool
	receiving  bool
}

// NewSimDriver returns a ready-to-use simulated driver.
func NewSimDriver() *SimDriver {
	return &SimDriver{}
}

func (s *SimDriver) Begin(_, _ int) error  { return nil }
func (s *SimDriver) Select(_ int) error    { return nil }

func (s *SimDriver) NewConfiguration() error { return nil }
func (s *SimDriver) SetDefaults() error      { return nil }

func (s *SimDriver) SetDeviceAddress(addr mac.ShortAddress) error {
	s.DeviceAddress = addr
	return nil
}

func (s *SimDriver) SetNetworkID(id uint16) error {
	s.NetworkID = id
	return nil
}

func (s *SimDriver) EnableMode(mode string) error {
	s.Mode = mode
	return nil
}

func (s *SimDriver) CommitConfiguration() error { return nil }

func (s *SimDriver) SetEUI(eui mac.LongAddress) error {
	s.EUI = eui
	return nil
}

func (s *SimDriver) AttachSentHandler(fn func())     { s.sentHandler = fn }
func (s *SimDriver) AttachReceivedHandler(fn func())  { s.receivedHandler = fn }

func (s *SimDriver) NewTransmit() error {
	s.pendingData = nil
	s.pendingDelay = 0
	return nil
}

func (s *SimDriver) SetData(data []byte) error {
	s.pendingData = append([]byte(nil), data...)
	return nil
}

func (s *SimDriver) SetDelay(delay timestamp.Timestamp) (timestamp.Timestamp, error) {
	s.pendingDelay = delay
	return s.NextTxTS, nil
}

func (s *SimDriver) StartTransmit() error {
	if s.pendingData == nil {
		return errors.New("radio: StartTransmit with no data set")
	}
	s.TXLog = append(s.TXLog, s.pendingData)
	s.pendingData = nil
	if s.sentHandler != nil {
		s.sentHandler()
	}
	return nil
}

func (s *SimDriver) NewReceive() error { return nil }

func (s *SimDriver) ReceivePermanently(permanent bool) error {
	s.receiving = permanent
	return nil
}

func (s *SimDriver) StartReceive() error {
	s.receiving = true
	return nil
}

func (s *SimDriver) GetData(buf []byte) (int, error) {
	n := copy(buf, s.rxFrame)
	return n, nil
}

func (s *SimDriver) GetTransmitTimestamp() (timestamp.Timestamp, error) {
	return s.NextTxTS, nil
}

func (s *SimDriver) GetReceiveTimestamp() (timestamp.Timestamp, error) {
	return s.rxTS, nil
}

func (s *SimDriver) GetReceivePower() float32    { return s.rxPower }
func (s *SimDriver) GetFirstPathPower() float32  { return s.fpPower }
func (s *SimDriver) GetReceiveQuality() float32  { return s.rxQuality }
func (s *SimDriver) IsReceiveFailed() bool       { return s.rxFailed }

func (s *SimDriver) HighPowerInit() error {
	s.HighPower = true
	return nil
}

// InjectReceive simulates an incoming frame: it stages the frame bytes
// and link-quality metrics for the next GetData/GetReceiveTimestamp calls
// and invokes the received-handler callback as a real IRQ would.
func (s *SimDriver) InjectReceive(frame []byte, rxTS timestamp.Timestamp, rxPower, fpPower, quality float32) {
	s.rxFrame = frame
	s.rxTS = rxTS
	s.rxPower = rxPower
	s.fpPower = fpPower
	s.rxQuality = quality
	s.rxFailed = false
	if s.receivedHandler != nil {
		s.receivedHandler()
	}
}

// InjectReceiveFailure simulates a corrupted receive (spec.md §4.6: driver
// reports failure, engine ignores it, no state change).
func (s *SimDriver) InjectReceiveFailure() {
	s.rxFailed = true
	if s.receivedHandler != nil {
		s.receivedHandler()
	}
}
