//go:build tinygo

package board

import (
	"machine"

	"bidipin/mcu"
	"bidipin/pin"
)

// Backend names the compiled-in backend.
const Backend = "mcu"

func open(cfg Config) (pin.Line, func() error, error) {
	p := mcu.New(machine.Pin(cfg.Line))
	p.SetAsInput()
	return p, p.Close, nil
}
