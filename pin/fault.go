package pin

// Faulter is implemented by lines whose backend can fail.
type Faulter interface {
	// Fault returns the most recent hardware error swallowed by the line and
	// clears it. It returns nil if nothing failed since the last call.
	Fault() error
}

// FaultOf returns the pending fault of l, or nil if l does not report faults.
func FaultOf(l Line) error {
	if p, ok := l.(Pin); ok {
		l = p.Line
	}
	if f, ok := l.(Faulter); ok {
		return f.Fault()
	}
	return nil
}

// Latch records swallowed errors for a backend. Embed it to implement Faulter.
//
// A Latch is not safe for concurrent use; it shares the single owner of the
// line it belongs to.
type Latch struct {
	err   error
	count uint64
}

// Record keeps err if it is not nil. It returns true if err was nil.
func (l *Latch) Record(err error) bool {
	if err == nil {
		return true
	}
	l.err = err
	l.count++
	return false
}

// Fault implements Faulter.
func (l *Latch) Fault() error {
	err := l.err
	l.err = nil
	return err
}

// Faults returns how many errors were recorded over the lifetime of the latch.
func (l *Latch) Faults() uint64 {
	return l.count
}
