package machine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/tarm/serial"
)

// DefaultBaud is the factory setting of Roland mills.
const DefaultBaud = 9600

type SerialConfig struct {
	Port string
	Baud int

	// Timeout is how long opening the port is retried.
	Timeout time.Duration
}

// OpenSerial opens the mill's serial port, retrying with an exponential
// backoff while the port is busy or not yet present.
func OpenSerial(ctx context.Context, cfg SerialConfig, log *slog.Logger) (*serial.Port, error) {
	if cfg.Port == "" {
		return nil, errors.New("no serial port configured")
	}
	if cfg.Baud == 0 {
		cfg.Baud = DefaultBaud
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	var port *serial.Port
	op := func() error {
		p, err := serial.OpenPort(&serial.Config{
			Name:     cfg.Port,
			Baud:     cfg.Baud,
			Size:     8,
			Parity:   serial.ParityNone,
			StopBits: serial.Stop1,
		})
		if err != nil {
			return err
		}
		port = p
		return nil
	}

	b := &backoff.ExponentialBackOff{
		InitialInterval:     100 * time.Millisecond,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         2 * time.Second,
		MaxElapsedTime:      cfg.Timeout,
		Clock:               backoff.SystemClock,
	}
	b.Reset()
	err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), func(err error, wait time.Duration) {
		if log != nil {
			log.Warn("open serial port", "port", cfg.Port, "err", err, "retry", wait)
		}
	})
	if err != nil {
		return nil, err
	}

	return port, nil
}
