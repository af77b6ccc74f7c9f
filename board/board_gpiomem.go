//go:build gpiomem

package board

import (
	"bidipin/gpiomem"
	"bidipin/pin"
)

// Backend names the compiled-in backend.
const Backend = "gpiomem"

func open(cfg Config) (pin.Line, func() error, error) {
	p, err := gpiomem.Open(uint8(cfg.Line))
	if err != nil {
		return nil, nil, err
	}
	return p, p.Close, nil
}
