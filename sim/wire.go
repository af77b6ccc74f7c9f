// Package sim simulates a single GPIO wire and provides a pin.Line on top of
// it. It stands in for hardware in tests and on hosts without GPIO.
package sim

import (
	"errors"
	"sync"

	"bidipin/pin"
)

// ErrInjected is returned by a Wire operation failed with FailReads,
// FailWrites or FailModes when no specific error was given.
var ErrInjected = errors.New("sim: injected fault")

// Wire is a simulated physical line shared by the host and one external peer.
//
// When neither side drives it, the wire keeps its last level, the way a short
// trace with no pull resistor holds its charge. A Wire starts undefined and
// low.
//
// Wire is safe for concurrent use so that a test can act as the peer from
// another goroutine.
type Wire struct {
	mu          sync.Mutex
	name        string
	mode        pin.Mode
	latch       bool  // output register
	level       bool  // level the wire sits at
	peer        *bool // level driven by the peer, nil if released
	transitions []pin.Mode
	reads       fault
	writes      fault
	modes       fault
}

type fault struct {
	n   int
	err error
}

func (f *fault) next() error {
	if f.n == 0 {
		return nil
	}
	f.n--
	if f.err == nil {
		return ErrInjected
	}
	return f.err
}

// NewWire creates an undefined, undriven wire.
func NewWire(name string) *Wire {
	return &Wire{name: name}
}

// Name returns the name given to NewWire.
func (w *Wire) Name() string {
	return w.name
}

// SetMode switches the host side of the wire to m.
func (w *Wire) SetMode(m pin.Mode) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.modes.next(); err != nil {
		return err
	}
	w.mode = m
	w.transitions = append(w.transitions, m)
	w.resolve()
	return nil
}

// Write sets the output register. The wire follows it only in output mode.
func (w *Wire) Write(level bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writes.next(); err != nil {
		return err
	}
	w.latch = level
	w.resolve()
	return nil
}

// Read samples the wire.
func (w *Wire) Read() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.reads.next(); err != nil {
		return false, err
	}
	return w.level, nil
}

// Drive makes the peer drive the wire to level.
func (w *Wire) Drive(level bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.peer = &level
	w.resolve()
}

// Release stops the peer from driving the wire.
func (w *Wire) Release() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.peer = nil
}

// FailReads makes the next n reads fail with err, or ErrInjected if err is nil.
func (w *Wire) FailReads(n int, err error) {
	w.mu.Lock()
	w.reads = fault{n: n, err: err}
	w.mu.Unlock()
}

// FailWrites makes the next n writes fail.
func (w *Wire) FailWrites(n int, err error) {
	w.mu.Lock()
	w.writes = fault{n: n, err: err}
	w.mu.Unlock()
}

// FailModes makes the next n mode switches fail.
func (w *Wire) FailModes(n int, err error) {
	w.mu.Lock()
	w.modes = fault{n: n, err: err}
	w.mu.Unlock()
}

// Mode returns the current host-side mode.
func (w *Wire) Mode() pin.Mode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mode
}

// Level returns the level the wire sits at, as the peer would see it.
func (w *Wire) Level() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.level
}

// Transitions returns every mode the host switched to, in order.
func (w *Wire) Transitions() []pin.Mode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]pin.Mode(nil), w.transitions...)
}

// resolve recomputes the wire level. The host wins in output mode.
func (w *Wire) resolve() {
	switch {
	case w.mode == pin.ModeOutput:
		w.level = w.latch
	case w.peer != nil:
		w.level = *w.peer
	}
}
