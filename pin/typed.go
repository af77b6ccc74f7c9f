package pin

// Output is a line known to be in drive mode. It only offers the operations
// that make sense there.
//
// Go does not consume values, so an Output kept after calling Input still
// compiles. Drop it; the line has moved on.
type Output struct {
	l Line
}

// Input is a line known to be in sense mode.
type Input struct {
	l Line
}

// AsOutput switches l to drive mode.
func AsOutput(l Line) Output {
	l.SetAsOutput()
	return Output{l: l}
}

// AsInput switches l to sense mode.
func AsInput(l Line) Input {
	l.SetAsInput()
	return Input{l: l}
}

// SetHigh drives the line high.
func (o Output) SetHigh() { o.l.SetHigh() }

// SetLow drives the line low.
func (o Output) SetLow() { o.l.SetLow() }

// Set drives the line to level.
func (o Output) Set(level bool) {
	if level {
		o.l.SetHigh()
	} else {
		o.l.SetLow()
	}
}

// Input switches the line to sense mode.
func (o Output) Input() Input {
	return AsInput(o.l)
}

// IsHigh samples the line.
func (i Input) IsHigh() bool { return i.l.IsHigh() }

// IsLow samples the line.
func (i Input) IsLow() bool { return IsLow(i.l) }

// Output switches the line to drive mode.
func (i Input) Output() Output {
	return AsOutput(i.l)
}
