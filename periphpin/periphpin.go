// Package periphpin implements pin.Line for any periph.io GPIO pin.
//
// periph pins already switch direction at runtime: In selects sense mode and
// Out selects drive mode while setting the level. This package forwards to
// them and drops their errors into a pin.Latch.
package periphpin

import (
	"periph.io/x/conn/v3/gpio"

	"bidipin/pin"
)

// Pin adapts a gpio.PinIO.
//
// periph's Out both selects output mode and sets the level, so SetHigh and
// SetLow on a line in input mode switch it to output. Other backends only
// load the output register or record a fault in that case.
type Pin struct {
	pin.Latch
	p     gpio.PinIO
	level gpio.Level // last level requested by SetHigh/SetLow
}

// New adapts p. The output level defaults to low until SetHigh is called.
func New(p gpio.PinIO) *Pin {
	return &Pin{p: p, level: gpio.Low}
}

// PinIO returns the adapted periph pin.
func (p *Pin) PinIO() gpio.PinIO {
	return p.p
}

// SetAsOutput implements pin.Line. periph has no direction-only call, so the
// line is driven to the last requested level.
func (p *Pin) SetAsOutput() {
	p.Record(p.p.Out(p.level))
}

// SetAsInput implements pin.Line.
func (p *Pin) SetAsInput() {
	p.Record(p.p.In(gpio.Float, gpio.NoEdge))
}

// SetHigh implements pin.Line.
func (p *Pin) SetHigh() {
	p.level = gpio.High
	p.Record(p.p.Out(gpio.High))
}

// SetLow implements pin.Line.
func (p *Pin) SetLow() {
	p.level = gpio.Low
	p.Record(p.p.Out(gpio.Low))
}

// IsHigh implements pin.Line.
func (p *Pin) IsHigh() bool {
	return p.p.Read() == gpio.High
}

// Close halts the pin.
func (p *Pin) Close() error {
	return p.p.Halt()
}
