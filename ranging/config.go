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
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"

	"github.com/uwb-go/dw1000/mac"
)

// Role identifies which half of the asymmetric exchange an engine plays.
type Role int

const (
	// RoleTag is the mobile node whose position is sought.
	RoleTag Role = iota
	// RoleAnchor is a fixed reference node.
	RoleAnchor
)

// String renders a Role for logging and config validation errors.
func (r Role) String() string {
	if r == RoleAnchor {
		return "anchor"
	}
	return "tag"
}

// Config holds everything needed to construct a Coordinator, mirroring
// spec.md §6.3 field for field.
type Config struct {
	Role            string           `yaml:"role"`
	ShortAddress    mac.ShortAddress `yaml:"short_address"`
	LongAddress     mac.LongAddress  `yaml:"long_address"`
	RangeIntervalMS int64            `yaml:"range_interval_ms"`
	ResetPeriodMS   int64            `yaml:"reset_period_ms"`
	InactivityMS    int64            `yaml:"inactivity_ms"`
	ReplyDelayUS    uint16           `yaml:"default_reply_delay_us"`
	BlinkInterval   int              `yaml:"blink_interval"`
	MaxDevices      int              `yaml:"max_devices"`
	EnableRangeReport bool           `yaml:"enable_range_report"`
	HighPower       bool             `yaml:"high_power"`
	Mode            string           `yaml:"mode"`

	MonitoringPort int `yaml:"monitoring_port"`

	// SPI/GPIO wiring for radio.SPIDriver; unused by SimDriver-backed tests.
	SPIDevice  string `yaml:"spi_device"`
	IRQPin     int    `yaml:"irq_pin"`
	RSTPin     int    `yaml:"rst_pin"`
	ChipSelect int    `yaml:"chip_select"`
}

// DefaultConfig returns a Config with every default from spec.md §6.3
// applied; Role/ShortAddress/LongAddress/Mode have no sane default and
// must be supplied.
func DefaultConfig() *Config {
	return &Config{
		RangeIntervalMS:   1500,
		ResetPeriodMS:     2000,
		InactivityMS:      2000,
		ReplyDelayUS:      3000,
		BlinkInterval:     5,
		MaxDevices:        MaxDevices,
		EnableRangeReport: false,
		HighPower:         false,
		MonitoringPort:    4270,
		SPIDevice:         "/dev/spidev0.0",
	}
}

// ParsedRole returns the Role the config's Role string names.
func (c *Config) ParsedRole() (Role, error) {
	switch c.Role {
	case "tag":
		return RoleTag, nil
	case "anchor":
		return RoleAnchor, nil
	default:
		return 0, fmt.Errorf("ranging: unknown role %q, must be \"tag\" or \"anchor\"", c.Role)
	}
}

// Validate checks that Config is internally consistent.
func (c *Config) Validate() error {
	if _, err := c.ParsedRole(); err != nil {
		return err
	}
	if c.RangeIntervalMS <= 0 {
		return fmt.Errorf("ranging: range_interval_ms must be positive")
	}
	if c.ResetPeriodMS <= 0 {
		return fmt.Errorf("ranging: reset_period_ms must be positive")
	}
	if c.InactivityMS <= 0 {
		return fmt.Errorf("ranging: inactivity_ms must be positive")
	}
	if c.ReplyDelayUS == 0 {
		return fmt.Errorf("ranging: default_reply_delay_us must be positive")
	}
	if c.BlinkInterval <= 0 {
		return fmt.Errorf("ranging: blink_interval must be positive")
	}
	if c.MaxDevices <= 0 || c.MaxDevices > MaxDevices {
		return fmt.Errorf("ranging: max_devices must be in (0, %d]", MaxDevices)
	}
	return nil
}

// ReadConfig loads a Config from a YAML file, starting from defaults so
// the file only needs to override what differs.
func ReadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ranging: reading config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("ranging: parsing config %q: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("ranging: validating config %q: %w", path, err)
	}
	log.Debugf("ranging: config: %+v", c)
	return c, nil
}
