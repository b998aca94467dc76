package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all application configuration
type Config struct {
	Station   StationConfig   `toml:"station"`
	Server    ServerConfig    `toml:"server"`
	Position  PositionConfig  `toml:"position"`
	Beacon    BeaconConfig    `toml:"beacon"`
	Interface InterfaceConfig `toml:"interface"`
	App       AppConfig       `toml:"app"`
}

// StationConfig identifies the transmitting station
type StationConfig struct {
	Callsign string `toml:"callsign"`
	SSID     string `toml:"ssid"`
	Passcode string `toml:"passcode"`
}

// ServerConfig holds the APRS-IS server endpoint
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// PositionConfig holds the station location in decimal degrees
type PositionConfig struct {
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
}

// BeaconConfig holds what gets sent and how often
type BeaconConfig struct {
	Symbol   string `toml:"symbol"`
	Comment  string `toml:"comment"`
	Interval int    `toml:"interval"` // minutes
}

// InterfaceConfig selects the beacon transport
type InterfaceConfig struct {
	Type   string `toml:"type"`   // "APRSIS" or "KISS"
	Device string `toml:"device"` // serial path or ip:port, KISS only
}

// AppConfig holds application behavior flags
type AppConfig struct {
	Autostart bool `toml:"autostart"`
}

// Load reads the configuration from the specified path
func Load(path string) (Config, error) {
	var conf Config

	data, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}

	if err := toml.Unmarshal(data, &conf); err != nil {
		return conf, err
	}

	return conf, nil
}

// Save writes the configuration back to the specified path
func (c Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Validate checks ranges and required fields before the beacon core sees
// the record. The core itself does not re-validate.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Station.Callsign) == "" {
		return fmt.Errorf("%w: callsign is empty", ErrInvalid)
	}
	if c.Station.SSID != "" {
		if _, err := strconv.Atoi(c.Station.SSID); err != nil {
			return fmt.Errorf("%w: SSID %q is not numeric", ErrInvalid, c.Station.SSID)
		}
	}
	if c.Server.Host == "" {
		return fmt.Errorf("%w: server host is empty", ErrInvalid)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range 1-65535", ErrInvalid, c.Server.Port)
	}
	if c.Position.Latitude < -90 || c.Position.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range -90..90", ErrInvalid, c.Position.Latitude)
	}
	if c.Position.Longitude < -180 || c.Position.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range -180..180", ErrInvalid, c.Position.Longitude)
	}
	if c.Beacon.Interval < 1 {
		return fmt.Errorf("%w: interval must be at least 1 minute", ErrInvalid)
	}
	switch strings.ToUpper(c.Interface.Type) {
	case "", "APRSIS":
	case "KISS":
		if c.Interface.Device == "" {
			return fmt.Errorf("%w: KISS interface needs a device", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown interface type %q", ErrInvalid, c.Interface.Type)
	}
	return nil
}

// Addr returns the server endpoint as host:port
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
