// Package pin defines the capability of a single GPIO line whose direction can
// be switched at runtime between driving and sensing. It is the building block
// for bit-banged half-duplex buses where one wire carries data both ways.
//
// A line is owned by exactly one caller. None of the operations block, and
// none of them report hardware failures: a failed sample reads as low and a
// failed drive is dropped, so a bit-bang loop never leaves its timing path.
// Backends that can fail also implement Faulter.
package pin

// Line is the set of operations a backend supplies.
//
// SetHigh and SetLow are only meaningful after SetAsOutput, IsHigh only after
// SetAsInput. The caller tracks the mode; Line has no getter for it.
type Line interface {
	// SetAsOutput switches the line to drive mode with standard drive strength.
	SetAsOutput()

	// SetAsInput switches the line to sense mode with no pull resistor.
	SetAsInput()

	// SetHigh drives the line high.
	SetHigh()

	// SetLow drives the line low.
	SetLow()

	// IsHigh samples the line. A failed sample returns false.
	IsHigh() bool
}

// BidirectionalPin is what a bit-bang driver holds.
type BidirectionalPin interface {
	Line

	// IsLow returns !IsHigh().
	IsLow() bool
}

// Pin turns any Line into a BidirectionalPin.
type Pin struct {
	Line
}

// New wraps l.
func New(l Line) Pin {
	return Pin{Line: l}
}

// IsLow implements BidirectionalPin.IsLow.
func (p Pin) IsLow() bool {
	return IsLow(p.Line)
}

// IsLow reports whether l samples low.
func IsLow(l Line) bool {
	return !l.IsHigh()
}

// Mode is the electrical direction of a line.
type Mode uint8

const (
	// ModeUndefined is the state of a line nobody has configured yet.
	ModeUndefined Mode = iota
	ModeOutput
	ModeInput
)

func (m Mode) String() string {
	switch m {
	case ModeOutput:
		return "output"
	case ModeInput:
		return "input"
	default:
		return "undefined"
	}
}
