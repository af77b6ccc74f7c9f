package main

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"bidipin/pin"
)

// drive switches p to output and drives it to level.
func drive(p pin.BidirectionalPin, level bool) {
	pin.AsOutput(p).Set(level)
}

// sample switches p to input and samples it.
func sample(p pin.BidirectionalPin) bool {
	return pin.AsInput(p).IsHigh()
}

// toggle drives n alternating levels starting high, holding each for hold.
func toggle(ctx context.Context, p pin.BidirectionalPin, n int, hold time.Duration) error {
	out := pin.AsOutput(p)
	level := true
	for i := 0; i < n; i++ {
		out.Set(level)
		level = !level
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(hold):
		}
	}
	return nil
}

// loopbackResult is one drive-then-sample round.
type loopbackResult struct {
	Driven  bool
	Sampled bool
	Fault   error
}

// loopback drives each level, releases the line and samples it back. On a
// line with nothing else attached the sample should match, but that depends
// on the board: leakage and stray pulls win over time.
func loopback(p pin.BidirectionalPin) []loopbackResult {
	var results []loopbackResult
	for _, level := range []bool{true, false} {
		out := pin.AsOutput(p)
		out.Set(level)
		got := out.Input().IsHigh()
		results = append(results, loopbackResult{
			Driven:  level,
			Sampled: got,
			Fault:   pin.FaultOf(p),
		})
	}
	return results
}

// publisher is the part of *mqtt.Client used by monitor.
type publisher interface {
	Publish(topic string, payload string)
}

// observation is a sampled level, or a fault raised while sampling.
type observation struct {
	High  bool
	Fault error
}

// monitor samples p every interval and publishes level changes and faults
// under topic until ctx is done. Publishing runs apart from sampling so a
// slow broker does not skew the sampling period.
func monitor(ctx context.Context, p pin.BidirectionalPin, interval time.Duration, pub publisher, topic string, log zerolog.Logger) error {
	observations := make(chan observation, 64)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(observations)
		return sampleLoop(ctx, p, interval, observations, log)
	})
	g.Go(func() error {
		for o := range observations {
			if o.Fault != nil {
				log.Warn().Err(o.Fault).Msg("sampling fault")
				pub.Publish(topic+"/fault", o.Fault.Error())
				continue
			}
			log.Debug().Bool("high", o.High).Msg("level changed")
			pub.Publish(topic+"/level", levelPayload(o.High))
		}
		return nil
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func sampleLoop(ctx context.Context, p pin.BidirectionalPin, interval time.Duration, out chan<- observation, log zerolog.Logger) error {
	in := pin.AsInput(p)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	first := true
	var last bool
	var dropped int
	emit := func(o observation) {
		select {
		case out <- o:
		default:
			dropped++
			log.Warn().Int("dropped", dropped).Msg("publisher behind, dropping observation")
		}
	}
	for {
		high := in.IsHigh()
		if err := pin.FaultOf(p); err != nil {
			emit(observation{Fault: err})
		} else if first || high != last {
			emit(observation{High: high})
			first, last = false, high
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func levelPayload(high bool) string {
	if high {
		return "1"
	}
	return "0"
}

// parseLevel accepts high/low, 1/0 and true/false.
func parseLevel(s string) (bool, error) {
	switch s {
	case "high", "HIGH", "h":
		return true, nil
	case "low", "LOW", "l":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.Errorf("invalid level %q (high|low)", s)
	}
	return v, nil
}
