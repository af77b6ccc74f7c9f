package sim_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"bidipin/pin"
	"bidipin/sim"
)

func newPin(t *testing.T) (pin.Pin, *sim.Wire) {
	t.Helper()
	w := sim.NewWire(t.Name())
	return pin.New(sim.NewPin(w)), w
}

func TestScenario(t *testing.T) {
	p, w := newPin(t)
	if m := w.Mode(); m != pin.ModeUndefined {
		t.Fatalf("initial mode = %s, want undefined", m)
	}

	p.SetAsOutput()
	p.SetHigh()
	if !w.Level() {
		t.Fatal("wire not high after SetHigh")
	}
	p.SetAsOutput()
	p.SetLow()
	p.SetAsInput()
	w.Drive(false)

	if p.IsHigh() {
		t.Error("IsHigh() = true, want false")
	}
	if !p.IsLow() {
		t.Error("IsLow() = false, want true")
	}
	if err := pin.FaultOf(p); err != nil {
		t.Errorf("unexpected fault %v", err)
	}
	want := []pin.Mode{pin.ModeOutput, pin.ModeOutput, pin.ModeInput}
	if diff := cmp.Diff(want, w.Transitions()); diff != "" {
		t.Errorf("transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestSetAsOutputIsIdempotent(t *testing.T) {
	p, w := newPin(t)
	p.SetAsOutput()
	p.SetHigh()
	p.SetAsOutput()

	if m := w.Mode(); m != pin.ModeOutput {
		t.Errorf("mode = %s, want output", m)
	}
	if !w.Level() {
		t.Error("second SetAsOutput changed the driven level")
	}
	if err := pin.FaultOf(p); err != nil {
		t.Errorf("unexpected fault %v", err)
	}
}

func TestInputAfterOutputHasNoIntermediateState(t *testing.T) {
	p, w := newPin(t)
	p.SetAsOutput()
	p.SetAsInput()

	want := []pin.Mode{pin.ModeOutput, pin.ModeInput}
	if diff := cmp.Diff(want, w.Transitions()); diff != "" {
		t.Errorf("transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestFloatingWireKeepsLastDrivenLevel(t *testing.T) {
	p, _ := newPin(t)
	for _, level := range []bool{true, false, true} {
		pin.AsOutput(p).Set(level)
		if got := pin.AsInput(p).IsHigh(); got != level {
			t.Errorf("drove %v, sampled %v", level, got)
		}
	}
}

func TestHostWinsInOutputMode(t *testing.T) {
	p, w := newPin(t)
	p.SetAsOutput()
	p.SetHigh()
	w.Drive(false)
	if !w.Level() {
		t.Fatal("peer overrode host in output mode")
	}
	p.SetAsInput()
	if p.IsHigh() {
		t.Error("IsHigh() = true after peer took over")
	}
	w.Release()
	if p.IsHigh() {
		t.Error("released wire lost its level")
	}
}

func TestWriteInInputModeOnlyLoadsRegister(t *testing.T) {
	p, w := newPin(t)
	p.SetAsInput()
	w.Drive(false)
	p.SetHigh()
	if w.Level() {
		t.Fatal("write in input mode reached the wire")
	}
	w.Release()
	p.SetAsOutput()
	if !w.Level() {
		t.Error("output register not applied on SetAsOutput")
	}
}

func TestSamplingFailureReadsLow(t *testing.T) {
	p, w := newPin(t)
	p.SetAsInput()
	w.Drive(true)
	boom := errors.New("boom")
	w.FailReads(1, boom)

	done := make(chan bool, 1)
	go func() { done <- p.IsHigh() }()
	select {
	case got := <-done:
		if got {
			t.Error("IsHigh() = true on failed sample")
		}
	case <-time.After(time.Second):
		t.Fatal("IsHigh blocked on failed sample")
	}

	if err := pin.FaultOf(p); err != boom {
		t.Errorf("FaultOf() = %v, want %v", err, boom)
	}
	if !p.IsHigh() {
		t.Error("IsHigh() = false after fault cleared")
	}
	if err := pin.FaultOf(p); err != nil {
		t.Errorf("FaultOf() = %v after good sample", err)
	}
}

func TestDriveAndModeFailuresAreSwallowed(t *testing.T) {
	w := sim.NewWire(t.Name())
	sp := sim.NewPin(w)
	p := pin.New(sp)

	w.FailModes(1, nil)
	p.SetAsOutput()
	if m := w.Mode(); m != pin.ModeUndefined {
		t.Errorf("mode = %s after failed switch, want undefined", m)
	}
	p.SetAsOutput()
	w.FailWrites(2, nil)
	p.SetHigh()
	p.SetHigh()
	if w.Level() {
		t.Error("failed writes reached the wire")
	}
	if err := pin.FaultOf(p); !errors.Is(err, sim.ErrInjected) {
		t.Errorf("FaultOf() = %v, want %v", err, sim.ErrInjected)
	}
	if got := sp.Faults(); got != 3 {
		t.Errorf("Faults() = %d, want 3", got)
	}
}

func TestIsLowMatchesIsHigh(t *testing.T) {
	p, w := newPin(t)
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		switch rnd.Intn(6) {
		case 0:
			p.SetAsOutput()
		case 1:
			p.SetAsInput()
		case 2:
			p.SetHigh()
		case 3:
			p.SetLow()
		case 4:
			w.Drive(rnd.Intn(2) == 1)
		case 5:
			w.Release()
		}
		if high, low := p.IsHigh(), p.IsLow(); low == high {
			t.Fatalf("step %d: IsHigh() = %v, IsLow() = %v", i, high, low)
		}
	}
}

func TestClose(t *testing.T) {
	w := sim.NewWire("close")
	p := sim.NewPin(w)
	p.SetAsOutput()
	if err := p.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if m := w.Mode(); m != pin.ModeUndefined {
		t.Errorf("mode after Close = %s", m)
	}
	if p.Wire() != w {
		t.Error("Wire() returned a different wire")
	}
	if w.Name() != "close" {
		t.Errorf("Name() = %q", w.Name())
	}
}
