//go:build sim || (!linux && !tinygo && !periph && !gpiomem && !vattu)

package board

import (
	"bidipin/pin"
	"bidipin/sim"
)

// Backend names the compiled-in backend.
const Backend = "sim"

func open(cfg Config) (pin.Line, func() error, error) {
	p := sim.NewPin(sim.NewWire(pinName(cfg)))
	return p, p.Close, nil
}
