//go:build vattu

package board

import (
	"bidipin/pin"
	"bidipin/vattu"
)

// Backend names the compiled-in backend.
const Backend = "vattu"

func open(cfg Config) (pin.Line, func() error, error) {
	p, err := vattu.Open(uint8(cfg.Line))
	if err != nil {
		return nil, nil, err
	}
	return p, p.Close, nil
}
