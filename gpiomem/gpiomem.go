//go:build linux

// Package gpiomem implements pin.Line on BCM283x GPIO registers mapped from
// /dev/gpiomem, using warthog618/gpio.
//
// Register access cannot fail once the map is established, so Pin does not
// report faults.
package gpiomem

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/warthog618/gpio"

	"bidipin/pin"
)

var (
	mapRegisters   = gpio.Open
	unmapRegisters = gpio.Close
	newLine        = func(bcm int) line {
		if p := gpio.NewPin(bcm); p != nil {
			return p
		}
		return nil
	}

	mu   sync.Mutex
	refs int
)

// acquire maps the registers for the first open pin.
func acquire() error {
	mu.Lock()
	defer mu.Unlock()

	if refs == 0 {
		if err := mapRegisters(); err != nil {
			return errors.Wrap(err, "map gpio registers")
		}
	}
	refs++
	return nil
}

// release unmaps the registers when the last pin closes.
func release() error {
	mu.Lock()
	defer mu.Unlock()

	if refs == 0 {
		return nil
	}
	refs--
	if refs == 0 {
		return unmapRegisters()
	}
	return nil
}

// line is the part of *gpio.Pin the adapter uses.
type line interface {
	Input()
	Output()
	PullNone()
	High()
	Low()
	Read() gpio.Level
}

// Pin is a BCM GPIO that can switch direction.
type Pin struct {
	p      line
	closed bool
}

var _ pin.Line = (*Pin)(nil)

// Open maps the GPIO registers if needed and configures BCM pin bcm as a
// floating input.
func Open(bcm uint8) (*Pin, error) {
	if err := acquire(); err != nil {
		return nil, err
	}
	l := newLine(int(bcm))
	if l == nil {
		release()
		return nil, errors.Errorf("bcm pin %d out of range", bcm)
	}
	p := &Pin{p: l}
	p.SetAsInput()
	return p, nil
}

// SetAsOutput implements pin.Line.
func (p *Pin) SetAsOutput() {
	p.p.Output()
}

// SetAsInput implements pin.Line.
func (p *Pin) SetAsInput() {
	p.p.Input()
	p.p.PullNone()
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
	return p.p.Read() == gpio.High
}

// Close returns the pin to a floating input and drops its hold on the
// register map.
func (p *Pin) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.SetAsInput()
	return release()
}
