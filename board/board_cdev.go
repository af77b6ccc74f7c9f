//go:build linux && !tinygo && !periph && !gpiomem && !vattu && !sim

package board

import (
	"bidipin/cdev"
	"bidipin/pin"
)

// Backend names the compiled-in backend.
const Backend = "cdev"

func open(cfg Config) (pin.Line, func() error, error) {
	p, err := cdev.Open(cdev.Config{
		Chip:     cfg.Chip,
		Offset:   cfg.Line,
		Consumer: cfg.Consumer,
	})
	if err != nil {
		return nil, nil, err
	}
	return p, p.Close, nil
}
