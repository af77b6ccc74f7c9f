package sim

import "bidipin/pin"

// Pin implements pin.Line on a Wire. Wire errors are swallowed and latched.
type Pin struct {
	pin.Latch
	w *Wire
}

// NewPin attaches a pin to w.
func NewPin(w *Wire) *Pin {
	return &Pin{w: w}
}

// Wire returns the wire the pin is attached to.
func (p *Pin) Wire() *Wire {
	return p.w
}

// SetAsOutput implements pin.Line.
func (p *Pin) SetAsOutput() {
	p.Record(p.w.SetMode(pin.ModeOutput))
}

// SetAsInput implements pin.Line.
func (p *Pin) SetAsInput() {
	p.Record(p.w.SetMode(pin.ModeInput))
}

// SetHigh implements pin.Line.
func (p *Pin) SetHigh() {
	p.Record(p.w.Write(true))
}

// SetLow implements pin.Line.
func (p *Pin) SetLow() {
	p.Record(p.w.Write(false))
}

// IsHigh implements pin.Line.
func (p *Pin) IsHigh() bool {
	v, err := p.w.Read()
	if !p.Record(err) {
		return false
	}
	return v
}

// Close implements io.Closer. It releases the host side of the wire.
func (p *Pin) Close() error {
	return p.w.SetMode(pin.ModeUndefined)
}
