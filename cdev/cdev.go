//go:build linux

package cdev

import (
	"github.com/pkg/errors"
	"github.com/warthog618/go-gpiocdev"

	"bidipin/pin"
)

// line is the part of *gpiocdev.Line the adapter uses.
type line interface {
	Reconfigure(options ...gpiocdev.LineConfigOption) error
	SetValue(value int) error
	Value() (int, error)
	Close() error
}

// Pin is a requested GPIO line that can switch direction.
//
// Output mode uses push-pull drive. Input mode disables bias so the line
// floats unless something else drives it.
type Pin struct {
	pin.Latch
	l     line
	value int // last value requested by SetHigh/SetLow
}

// Open requests the line as a floating input.
func Open(cfg Config) (*Pin, error) {
	cfg.setDefaults()
	l, err := gpiocdev.RequestLine(cfg.Chip, cfg.Offset,
		gpiocdev.WithConsumer(cfg.Consumer),
		gpiocdev.AsInput,
		gpiocdev.WithBiasDisabled)
	if err != nil {
		return nil, errors.Wrapf(err, "request %s:%d", cfg.Chip, cfg.Offset)
	}
	return newPin(l), nil
}

func newPin(l line) *Pin {
	return &Pin{l: l}
}

// SetAsOutput implements pin.Line. The line starts at the last requested
// value, low if none.
func (p *Pin) SetAsOutput() {
	p.Record(p.l.Reconfigure(gpiocdev.AsOutput(p.value), gpiocdev.AsPushPull))
}

// SetAsInput implements pin.Line.
func (p *Pin) SetAsInput() {
	p.Record(p.l.Reconfigure(gpiocdev.AsInput, gpiocdev.WithBiasDisabled))
}

// SetHigh implements pin.Line.
func (p *Pin) SetHigh() {
	p.value = 1
	p.Record(p.l.SetValue(1))
}

// SetLow implements pin.Line.
func (p *Pin) SetLow() {
	p.value = 0
	p.Record(p.l.SetValue(0))
}

// IsHigh implements pin.Line.
func (p *Pin) IsHigh() bool {
	v, err := p.l.Value()
	if !p.Record(err) {
		return false
	}
	return v != 0
}

// Close releases the line.
func (p *Pin) Close() error {
	return p.l.Close()
}
