package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Station:   StationConfig{Callsign: "N0CALL", SSID: "9", Passcode: "13023"},
		Server:    ServerConfig{Host: "euro.aprs2.net", Port: 14580},
		Position:  PositionConfig{Latitude: 45.5, Longitude: -73.25},
		Beacon:    BeaconConfig{Symbol: "Home", Comment: "test", Interval: 30},
		Interface: InterfaceConfig{Type: "APRSIS"},
		App:       AppConfig{Autostart: true},
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty callsign", func(c *Config) { c.Station.Callsign = "  " }},
		{"non-numeric ssid", func(c *Config) { c.Station.SSID = "x" }},
		{"empty host", func(c *Config) { c.Server.Host = "" }},
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too big", func(c *Config) { c.Server.Port = 70000 }},
		{"latitude out of range", func(c *Config) { c.Position.Latitude = 91 }},
		{"longitude out of range", func(c *Config) { c.Position.Longitude = -180.5 }},
		{"interval zero", func(c *Config) { c.Beacon.Interval = 0 }},
		{"unknown interface", func(c *Config) { c.Interface.Type = "CARRIER-PIGEON" }},
		{"kiss without device", func(c *Config) { c.Interface.Type = "KISS"; c.Interface.Device = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := validConfig()
			tt.mutate(&conf)
			err := conf.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestValidateDefaultsToAprsis(t *testing.T) {
	conf := validConfig()
	conf.Interface.Type = ""
	assert.NoError(t, conf.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	original := validConfig()
	original.Beacon.Comment = "multi\nline comment"
	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestStoreSnapshots(t *testing.T) {
	store := NewStore(validConfig())

	first := store.Get()
	edited := first
	edited.Beacon.Interval = 5
	store.Set(edited)

	assert.Equal(t, 30, first.Beacon.Interval)
	assert.Equal(t, 5, store.Get().Beacon.Interval)
}

func TestAddr(t *testing.T) {
	assert.Equal(t, "euro.aprs2.net:14580", validConfig().Server.Addr())
}
