// Package cdev implements pin.Line on the Linux GPIO character device
// (/dev/gpiochipN) using go-gpiocdev.
package cdev

import "errors"

// ErrNotSupported is returned by Open on platforms without the GPIO
// character device.
var ErrNotSupported = errors.New("gpio character device not supported on this platform")

// Config selects a line on a GPIO chip.
type Config struct {
	Chip     string `yaml:"chip"`     // defaults to gpiochip0
	Offset   int    `yaml:"offset"`   // line offset on the chip
	Consumer string `yaml:"consumer"` // label shown by gpioinfo
}

func (c *Config) setDefaults() {
	if c.Chip == "" {
		c.Chip = "gpiochip0"
	}
	if c.Consumer == "" {
		c.Consumer = "bidipin"
	}
}
