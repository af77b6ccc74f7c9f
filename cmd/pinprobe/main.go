// Command pinprobe exercises one bidirectional GPIO line from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"bidipin/board"
	"bidipin/mqtt"
	"bidipin/pin"
)

var (
	projectVersion = "dev"
	projectBuild   = "dev"
)

func main() {
	var cfgFile string
	var levelFlag string

	pflag.StringVarP(&cfgFile, "cfg", "c", "pinprobe.yaml", "Config file")
	pflag.StringVarP(&levelFlag, "level", "l", "info", "Set log level")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pinprobe [flags] drive high|low | sample | toggle N | loopback | monitor\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	level, err := zerolog.ParseLevel(levelFlag)
	if err != nil {
		Exitf("Invalid log level '%s': %v\n", levelFlag, err)
	}
	logger = logger.Level(level)

	cfg, err := loadConfig(cfgFile)
	if err != nil {
		Exitf("Failed to load config: %v\n", err)
	}

	logger.Info().
		Str("version", projectVersion).
		Str("build", projectBuild).
		Str("backend", board.Backend).
		Msg("Starting pinprobe")

	if err := checkArgs(pflag.Args()); err != nil {
		pflag.Usage()
		Exitf("%v\n", err)
	}

	p, err := board.Open(cfg.Pin)
	if err != nil {
		Exitf("Failed to open pin: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, p, pflag.Args(), os.Stdout, logger)
	stop()
	if cerr := p.Close(); cerr != nil {
		logger.Warn().Err(cerr).Msg("Failed to close pin")
	}
	if err != nil {
		logger.Error().Err(err).Msg("pinprobe failed")
		os.Exit(1)
	}
}

// checkArgs rejects a command line before any line is opened.
func checkArgs(args []string) error {
	if len(args) == 0 {
		return errors.New("missing command")
	}
	switch args[0] {
	case "drive":
		if len(args) != 2 {
			return errors.New("drive needs a level (high|low)")
		}
		_, err := parseLevel(args[1])
		return err
	case "toggle":
		if len(args) != 2 {
			return errors.New("toggle needs a count")
		}
		if n, err := strconv.Atoi(args[1]); err != nil || n < 0 {
			return errors.Errorf("invalid count %q", args[1])
		}
		return nil
	case "sample", "loopback", "monitor":
		if len(args) != 1 {
			return errors.Errorf("%s takes no arguments", args[0])
		}
		return nil
	}
	return errors.Errorf("unknown command '%s'", args[0])
}

// run executes one command against p and writes its result to w.
func run(ctx context.Context, cfg Config, p pin.BidirectionalPin, args []string, w io.Writer, log zerolog.Logger) error {
	if err := checkArgs(args); err != nil {
		return err
	}
	switch cmd, args := args[0], args[1:]; cmd {
	case "drive":
		level, _ := parseLevel(args[0])
		drive(p, level)
		fmt.Fprintf(w, "driven %s\n", levelName(level))
		return faultError(p)
	case "sample":
		high := sample(p)
		if err := faultError(p); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", levelName(high))
		return nil
	case "toggle":
		n, _ := strconv.Atoi(args[0])
		if err := toggle(ctx, p, n, cfg.Hold.std()); err != nil {
			return err
		}
		fmt.Fprintf(w, "toggled %d times\n", n)
		return faultError(p)
	case "loopback":
		ok := true
		for _, r := range loopback(p) {
			status := "ok"
			switch {
			case r.Fault != nil:
				status, ok = "fault: "+r.Fault.Error(), false
			case r.Sampled != r.Driven:
				status, ok = "mismatch", false
			}
			fmt.Fprintf(w, "drove %s, sampled %s: %s\n", levelName(r.Driven), levelName(r.Sampled), status)
		}
		if !ok {
			return errors.New("loopback failed")
		}
		return nil
	case "monitor":
		client, err := mqtt.New(cfg.MQTT, cfg.ClientID, cfg.Topic+"/status", log)
		if err != nil {
			return err
		}
		defer client.Disconnect()
		go func() {
			if err := client.Connect(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("MQTT connect failed")
			}
		}()
		log.Info().Dur("interval", cfg.Interval.std()).Str("topic", cfg.Topic).Msg("Monitoring")
		return monitor(ctx, p, cfg.Interval.std(), client, cfg.Topic, log)
	}
	return nil
}

func faultError(p pin.Line) error {
	if err := pin.FaultOf(p); err != nil {
		return errors.Wrap(err, "hardware fault")
	}
	return nil
}

func levelName(high bool) string {
	if high {
		return "high"
	}
	return "low"
}

func (d Duration) std() time.Duration {
	return time.Duration(d)
}

// Exitf prints the given error message and exits with code 1.
func Exitf(message string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, message, args...)
	os.Exit(1)
}
