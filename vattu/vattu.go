//go:build linux

// Package vattu implements pin.Line on BCM283x GPIO registers using govattu.
package vattu

import (
	"github.com/hjkoskel/govattu"
	"github.com/pkg/errors"

	"bidipin/pin"
)

// Pin is a BCM GPIO that can switch direction.
type Pin struct {
	hw  govattu.Vattu
	pin uint8
	own bool
}

var _ pin.Line = (*Pin)(nil)

// Open maps the GPIO registers and configures BCM pin bcm as an input. Close
// unmaps them.
func Open(bcm uint8) (*Pin, error) {
	hw, err := govattu.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open gpio")
	}
	p := New(hw, bcm)
	p.own = true
	p.SetAsInput()
	return p, nil
}

// New uses registers already mapped by hw. Close leaves hw open.
func New(hw govattu.Vattu, bcm uint8) *Pin {
	return &Pin{hw: hw, pin: bcm}
}

// SetAsOutput implements pin.Line.
func (p *Pin) SetAsOutput() {
	p.hw.PinMode(p.pin, govattu.ALToutput)
}

// SetAsInput implements pin.Line. The pull resistor is switched off so the
// line floats.
func (p *Pin) SetAsInput() {
	p.hw.PinMode(p.pin, govattu.ALTinput)
	p.hw.PullMode(p.pin, govattu.PULLoff)
}

// SetHigh implements pin.Line.
func (p *Pin) SetHigh() {
	p.hw.PinSet(p.pin)
}

// SetLow implements pin.Line.
func (p *Pin) SetLow() {
	p.hw.PinClear(p.pin)
}

// IsHigh implements pin.Line.
func (p *Pin) IsHigh() bool {
	return p.hw.ReadPinLevel(p.pin)
}

// Close releases the registers if Open mapped them.
func (p *Pin) Close() error {
	if !p.own {
		return nil
	}
	p.own = false
	return p.hw.Close()
}
