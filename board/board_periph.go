//go:build periph

package board

import (
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"bidipin/periphpin"
	"bidipin/pin"
)

// Backend names the compiled-in backend.
const Backend = "periph"

func open(cfg Config) (pin.Line, func() error, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, errors.Wrap(err, "init periph host")
	}
	name := pinName(cfg)
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, nil, errors.Wrap(ErrUnknownPin, name)
	}
	pp := periphpin.New(p)
	pp.SetAsInput()
	return pp, pp.Close, nil
}
