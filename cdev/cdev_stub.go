//go:build !linux

package cdev

import "bidipin/pin"

// Pin is a stub for non-linux platforms.
type Pin struct {
	pin.Latch
}

// Open returns ErrNotSupported on non-linux platforms.
func Open(cfg Config) (*Pin, error) {
	return nil, ErrNotSupported
}

func (p *Pin) SetAsOutput() {}
func (p *Pin) SetAsInput()  {}
func (p *Pin) SetHigh()     {}
func (p *Pin) SetLow()      {}
func (p *Pin) IsHigh() bool { return false }
func (p *Pin) Close() error { return nil }
