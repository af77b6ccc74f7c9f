// Package board opens the one GPIO backend compiled into the binary.
//
// The backend is chosen with build tags, never at runtime:
//
//	periph    periph.io host drivers
//	gpiomem   BCM registers through warthog618/gpio
//	vattu     BCM registers through govattu
//	sim       simulated wire
//	tinygo    TinyGo machine pins (set by the tinygo compiler)
//
// Without any of them, linux builds use the GPIO character device and other
// platforms use the simulator. Each backend file declares Backend, so
// selecting two of them fails to compile.
package board

import (
	"errors"

	pkgerrors "github.com/pkg/errors"

	"bidipin/pin"
)

// ErrUnknownPin is returned when the backend has no pin matching the config.
var ErrUnknownPin = errors.New("unknown pin")

// Config selects a line. Backends read the fields they understand.
type Config struct {
	Chip     string `yaml:"chip"`     // cdev: gpiochip name
	Line     int    `yaml:"line"`     // cdev offset, BCM number or machine pin
	Name     string `yaml:"name"`     // periph and sim: pin name, defaults to GPIO<line>
	Consumer string `yaml:"consumer"` // cdev: consumer label
}

// Pin is an opened line. It is owned by one caller at a time.
type Pin struct {
	pin.Pin
	close func() error
}

// Open opens the line described by cfg on the compiled-in backend.
func Open(cfg Config) (*Pin, error) {
	l, closer, err := open(cfg)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "open %s line %d", Backend, cfg.Line)
	}
	return &Pin{Pin: pin.New(l), close: closer}, nil
}

// Close releases the line.
func (p *Pin) Close() error {
	if p.close == nil {
		return nil
	}
	closer := p.close
	p.close = nil
	return closer()
}

// Fault returns the pending fault of the line, if its backend reports any.
func (p *Pin) Fault() error {
	return pin.FaultOf(p.Pin)
}
