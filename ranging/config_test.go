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
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig("/does/not/exist")
	require.Error(t, err)
}

func TestReadConfigDefaultsOnEmptyFile(t *testing.T) {
	f, err := os.CreateTemp("", "ranging-config")
	require.NoError(t, err)
	defer os.Remove(f.Name())

	cfg, err := ReadConfig(f.Name())
	// an empty file applies no overrides, but Role is still unset so
	// Validate (called by ReadConfig) must reject it.
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestReadConfigOverridesDefaults(t *testing.T) {
	f, err := os.CreateTemp("", "ranging-config")
	require.NoError(t, err)
	defer os.Remove(f.Name())

	_, err = f.Write([]byte(`role: anchor
short_address: 7
range_interval_ms: 2000
mode: mode4
`))
	require.NoError(t, err)

	cfg, err := ReadConfig(f.Name())
	require.NoError(t, err)
	require.Equal(t, "anchor", cfg.Role)
	require.EqualValues(t, 7, cfg.ShortAddress)
	require.Equal(t, int64(2000), cfg.RangeIntervalMS)
	require.Equal(t, "mode4", cfg.Mode)
	// everything not overridden keeps its DefaultConfig value.
	require.Equal(t, DefaultConfig().ResetPeriodMS, cfg.ResetPeriodMS)
	require.Equal(t, DefaultConfig().SPIDevice, cfg.SPIDevice)
}

func TestParsedRole(t *testing.T) {
	cfg := DefaultConfig()

	cfg.Role = "tag"
	role, err := cfg.ParsedRole()
	require.NoError(t, err)
	require.Equal(t, RoleTag, role)

	cfg.Role = "anchor"
	role, err = cfg.ParsedRole()
	require.NoError(t, err)
	require.Equal(t, RoleAnchor, role)

	cfg.Role = "bogus"
	_, err = cfg.ParsedRole()
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	base := func() *Config {
		c := DefaultConfig()
		c.Role = "tag"
		return c
	}

	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults ok", mutate: func(*Config) {}, wantErr: false},
		{name: "bad role", mutate: func(c *Config) { c.Role = "" }, wantErr: true},
		{name: "zero range interval", mutate: func(c *Config) { c.RangeIntervalMS = 0 }, wantErr: true},
		{name: "zero reset period", mutate: func(c *Config) { c.ResetPeriodMS = 0 }, wantErr: true},
		{name: "zero inactivity", mutate: func(c *Config) { c.InactivityMS = 0 }, wantErr: true},
		{name: "zero reply delay", mutate: func(c *Config) { c.ReplyDelayUS = 0 }, wantErr: true},
		{name: "zero blink interval", mutate: func(c *Config) { c.BlinkInterval = 0 }, wantErr: true},
		{name: "max devices too high", mutate: func(c *Config) { c.MaxDevices = MaxDevices + 1 }, wantErr: true},
		{name: "max devices zero", mutate: func(c *Config) { c.MaxDevices = 0 }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
