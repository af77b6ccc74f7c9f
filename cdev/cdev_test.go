//go:build linux

package cdev

import (
	"errors"
	"testing"

	"github.com/warthog618/go-gpiocdev"

	"bidipin/pin"
)

// fakeLine records calls and fails on demand.
type fakeLine struct {
	reconfigures int
	value        int
	closed       bool

	reconfigureErr error
	setErr         error
	getErr         error
}

func (f *fakeLine) Reconfigure(options ...gpiocdev.LineConfigOption) error {
	f.reconfigures++
	return f.reconfigureErr
}

func (f *fakeLine) SetValue(value int) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.value = value
	return nil
}

func (f *fakeLine) Value() (int, error) {
	if f.getErr != nil {
		return 0, f.getErr
	}
	return f.value, nil
}

func (f *fakeLine) Close() error {
	f.closed = true
	return nil
}

func TestDriveAndSample(t *testing.T) {
	f := &fakeLine{}
	p := pin.New(newPin(f))

	p.SetAsOutput()
	p.SetHigh()
	p.SetAsInput()
	if !p.IsHigh() || p.IsLow() {
		t.Error("line does not read back high")
	}
	p.SetAsOutput()
	p.SetLow()
	p.SetAsInput()
	if p.IsHigh() || !p.IsLow() {
		t.Error("line does not read back low")
	}
	if f.reconfigures != 4 {
		t.Errorf("reconfigures = %d, want 4", f.reconfigures)
	}
	if err := pin.FaultOf(p); err != nil {
		t.Errorf("unexpected fault %v", err)
	}
}

func TestSamplingFailureReadsLow(t *testing.T) {
	boom := errors.New("EIO")
	f := &fakeLine{value: 1, getErr: boom}
	p := newPin(f)

	p.SetAsInput()
	if p.IsHigh() {
		t.Error("IsHigh() = true on failed sample")
	}
	if !pin.IsLow(p) {
		t.Error("IsLow() = false on failed sample")
	}
	if err := p.Fault(); err != boom {
		t.Errorf("Fault() = %v, want %v", err, boom)
	}

	f.getErr = nil
	if !p.IsHigh() {
		t.Error("IsHigh() = false after recovery")
	}
}

func TestDriveFailuresAreSwallowed(t *testing.T) {
	f := &fakeLine{
		reconfigureErr: errors.New("EBUSY"),
		setErr:         errors.New("EPERM"),
	}
	p := newPin(f)

	p.SetAsOutput()
	p.SetHigh()
	p.SetLow()
	p.SetAsInput()
	if got := p.Faults(); got != 4 {
		t.Errorf("Faults() = %d, want 4", got)
	}
	if f.value != 0 {
		t.Errorf("value = %d, failed writes reached the line", f.value)
	}
}

func TestClose(t *testing.T) {
	f := &fakeLine{}
	if err := newPin(f).Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if !f.closed {
		t.Error("line not closed")
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.setDefaults()
	if cfg.Chip != "gpiochip0" || cfg.Consumer != "bidipin" {
		t.Errorf("defaults = %+v", cfg)
	}
}
