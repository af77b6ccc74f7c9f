package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"bidipin/board"
	"bidipin/mqtt"
)

// Config is the pinprobe configuration file.
type Config struct {
	// Line to probe
	Pin board.Config `yaml:"pin"`

	// MQTT connection settings, used by monitor
	MQTT mqtt.Config `yaml:"mqtt"`

	ClientID string   `yaml:"client_id"`
	Topic    string   `yaml:"topic"`    // defaults to bidipin/<client_id>
	Interval Duration `yaml:"interval"` // monitor sampling period
	Hold     Duration `yaml:"hold"`     // level hold time for toggle
}

// Duration is a time.Duration written as "10ms" in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "parse duration %q", s)
	}
	*d = Duration(v)
	return nil
}

func defaultConfig() Config {
	return Config{
		ClientID: "pinprobe",
		Interval: Duration(10 * time.Millisecond),
		Hold:     Duration(500 * time.Millisecond),
	}
}

// loadConfig reads path. A missing file yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return cfg.withDefaults(), nil
	}
	if err != nil {
		return cfg, errors.Wrap(err, "open config")
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, errors.Wrap(err, "decode config")
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	d := defaultConfig()
	if c.ClientID == "" {
		c.ClientID = d.ClientID
	}
	if c.Topic == "" {
		c.Topic = "bidipin/" + c.ClientID
	}
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	if c.Hold <= 0 {
		c.Hold = d.Hold
	}
	return c
}
