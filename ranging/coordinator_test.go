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

import (
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/uwb-go/dw1000/mac"
	"github.com/uwb-go/dw1000/radio"
)

// TestConfigureRadioCallOrder checks the chip bring-up sequence (spec.md
// §6.1) against a call-expectation mock rather than the scripted SimDriver
// used elsewhere: Begin/Select must run before any configuration call, and
// CommitConfiguration must run before SetEUI, before the receive path is
// armed.
func TestConfigureRadioCallOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDriver := radio.NewMockDriver(ctrl)

	cfg := DefaultConfig()
	cfg.Role = "tag"
	cfg.ShortAddress = 0x0001
	cfg.LongAddress = mac.LongAddress{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	cfg.IRQPin = 17
	cfg.RSTPin = 27
	cfg.ChipSelect = 0
	cfg.Mode = "MODE_LONGDATA_RANGE_LOWPOWER"

	// NewCoordinator's NewEngine registers the mailbox interrupt hooks.
	mockDriver.EXPECT().AttachSentHandler(gomock.Any())
	mockDriver.EXPECT().AttachReceivedHandler(gomock.Any())

	gomock.InOrder(
		mockDriver.EXPECT().Begin(cfg.IRQPin, cfg.RSTPin).Return(nil),
		mockDriver.EXPECT().Select(cfg.ChipSelect).Return(nil),
		mockDriver.EXPECT().NewConfiguration().Return(nil),
		mockDriver.EXPECT().SetDefaults().Return(nil),
		mockDriver.EXPECT().SetDeviceAddress(cfg.ShortAddress).Return(nil),
		mockDriver.EXPECT().SetNetworkID(mac.PanID).Return(nil),
		mockDriver.EXPECT().EnableMode(cfg.Mode).Return(nil),
		mockDriver.EXPECT().CommitConfiguration().Return(nil),
		mockDriver.EXPECT().SetEUI(cfg.LongAddress).Return(nil),
		mockDriver.EXPECT().NewReceive().Return(nil),
		mockDriver.EXPECT().ReceivePermanently(true).Return(nil),
		mockDriver.EXPECT().StartReceive().Return(nil),
	)

	coord, err := NewCoordinator(cfg, mockDriver, fixedRNG{}, NopStats{}, Callbacks{})
	if err != nil {
		t.Fatalf("NewCoordinator: %v", err)
	}
	if err := coord.configureRadio(); err != nil {
		t.Fatalf("configureRadio: %v", err)
	}
}

// TestConfigureRadioHighPowerInit checks that HighPowerInit is called once
// during bring-up when Config.HighPower is set. The expectations here are
// unordered; call order is checked by TestConfigureRadioCallOrder.
func TestConfigureRadioHighPowerInit(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDriver := radio.NewMockDriver(ctrl)

	cfg := DefaultConfig()
	cfg.Role = "anchor"
	cfg.ShortAddress = 0x0002
	cfg.HighPower = true

	mockDriver.EXPECT().AttachSentHandler(gomock.Any())
	mockDriver.EXPECT().AttachReceivedHandler(gomock.Any())
	mockDriver.EXPECT().Begin(gomock.Any(), gomock.Any()).Return(nil)
	mockDriver.EXPECT().Select(gomock.Any()).Return(nil)
	mockDriver.EXPECT().NewConfiguration().Return(nil)
	mockDriver.EXPECT().SetDefaults().Return(nil)
	mockDriver.EXPECT().SetDeviceAddress(gomock.Any()).Return(nil)
	mockDriver.EXPECT().SetNetworkID(gomock.Any()).Return(nil)
	mockDriver.EXPECT().EnableMode(gomock.Any()).Return(nil)
	mockDriver.EXPECT().CommitConfiguration().Return(nil)
	mockDriver.EXPECT().SetEUI(gomock.Any()).Return(nil)
	mockDriver.EXPECT().HighPowerInit().Return(nil)
	mockDriver.EXPECT().NewReceive().Return(nil)
	mockDriver.EXPECT().ReceivePermanently(true).Return(nil)
	mockDriver.EXPECT().StartReceive().Return(nil)

	coord, err := NewCoordinator(cfg, mockDriver, fixedRNG{}, NopStats{}, Callbacks{})
	if err != nil {
		t.Fatalf("NewCoordinator: %v", err)
	}
	if err := coord.configureRadio(); err != nil {
		t.Fatalf("configureRadio: %v", err)
	}
}
