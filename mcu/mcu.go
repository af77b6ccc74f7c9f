//go:build tinygo

// Package mcu implements pin.Line on a TinyGo machine.Pin.
package mcu

import (
	"machine"

	"bidipin/pin"
)

// Pin is a microcontroller GPIO that can switch direction.
type Pin struct {
	p machine.Pin
}

var _ pin.Line = (*Pin)(nil)

// New wraps p. The caller configures the mode before first use.
func New(p machine.Pin) *Pin {
	return &Pin{p: p}
}

// SetAsOutput implements pin.Line.
func (p *Pin) SetAsOutput() {
	p.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
}

// SetAsInput implements pin.Line. machine.PinInput leaves the pull
// resistors disabled.
func (p *Pin) SetAsInput() {
	p.p.Configure(machine.PinConfig{Mode: machine.PinInput})
}

// SetHigh implements pin.Line.
func (p *Pin) SetHigh() {
	p.p.High()
}

// SetLow implements pin.Line.
func (p *Pin) SetLow() {
	p.p.Low()
}

// IsHigh implements pin.Line.
func (p *Pin) IsHigh() bool {
	return p.p.Get()
}

// Close leaves the pin as a floating input.
func (p *Pin) Close() error {
	p.SetAsInput()
	return nil
}
