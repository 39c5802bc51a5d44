package machine

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/mastercactapus/gcode2rml/spjs"
)

// DefaultSPJSBuffer is the number of lines sent per sendjson batch.
const DefaultSPJSBuffer = 100

type SPJSConfig struct {
	// Port is the serial port name on the SPJS host.
	Port string
	Baud int

	Buffer int
}

// SPJSAdapter writes RML lines to a serial port on an SPJS host. At most
// two batches are in flight; Write blocks on the older one.
type SPJSAdapter struct {
	c   *spjs.Client
	cfg SPJSConfig
	log *slog.Logger

	partial []byte
	batch   []spjs.Data
	last    chan error

	mx      sync.Mutex
	waiting map[string]chan error
	opening bool

	readyOnce sync.Once
	ready     chan struct{}
	done      chan struct{}
}

// NewSPJSAdapter takes ownership of c; closing the adapter closes it.
func NewSPJSAdapter(c *spjs.Client, cfg SPJSConfig, log *slog.Logger) *SPJSAdapter {
	if cfg.Baud == 0 {
		cfg.Baud = DefaultBaud
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultSPJSBuffer
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &SPJSAdapter{
		c:       c,
		cfg:     cfg,
		log:     log.With("port", cfg.Port),
		waiting: make(map[string]chan error, cfg.Buffer),
		ready:   make(chan struct{}),
		done:    make(chan struct{}),
	}
	go a.loop()

	return a
}

func (a *SPJSAdapter) markReady() {
	a.readyOnce.Do(func() {
		a.log.Info("port open")
		close(a.ready)
	})
}

func (a *SPJSAdapter) checkPorts(ports []spjs.SerialPort) {
	for _, port := range ports {
		if port.Name != a.cfg.Port {
			continue
		}
		if port.IsOpen {
			a.markReady()
			return
		}
		if a.opening {
			return
		}
		a.opening = true
		err := a.c.WriteString(fmt.Sprintf("open %s %d", a.cfg.Port, a.cfg.Baud))
		if err != nil {
			a.log.Error("open port", "err", err)
		}
		return
	}
	a.log.Warn("port not found on SPJS host")
}

func (a *SPJSAdapter) resolve(id string, err error) {
	a.mx.Lock()
	ch := a.waiting[id]
	delete(a.waiting, id)
	a.mx.Unlock()
	if ch != nil {
		ch <- err
	}
}

func (a *SPJSAdapter) failAll(err error) {
	a.mx.Lock()
	defer a.mx.Unlock()
	for id, ch := range a.waiting {
		ch <- err
		delete(a.waiting, id)
	}
}

func (a *SPJSAdapter) loop() {
	defer close(a.done)
	for msg := range a.c.Messages() {
		switch msg := msg.(type) {
		case *spjs.SerialPortList:
			a.checkPorts(msg.SerialPorts)
		case *spjs.CmdStatus:
			switch msg.Cmd {
			case "Open":
				if msg.Port == a.cfg.Port {
					a.markReady()
				}
			case "Complete":
				a.resolve(msg.ID, nil)
			case "WipedQueue":
				a.failAll(fmt.Errorf("spjs: queue wiped on %s", a.cfg.Port))
			}
		case *spjs.ErrorMessage:
			a.log.Error("spjs", "err", msg.Error)
		case *spjs.DataFrame:
			if msg.Port == a.cfg.Port {
				a.log.Debug("received", "data", msg.Data)
			}
		}
	}
	a.failAll(spjs.ErrClosed)
}

// Write queues complete lines of p, sending a batch whenever the buffer
// fills up.
func (a *SPJSAdapter) Write(p []byte) (int, error) {
	a.partial = append(a.partial, p...)
	for {
		i := bytes.IndexByte(a.partial, '\n')
		if i < 0 {
			break
		}
		a.batch = append(a.batch, spjs.Data{Data: string(a.partial[:i+1]), ID: uuid.NewString()})
		a.partial = a.partial[i+1:]
		if len(a.batch) < a.cfg.Buffer {
			continue
		}
		if err := a.flush(); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func (a *SPJSAdapter) wait(ch chan error) error {
	select {
	case err := <-ch:
		return err
	case <-a.done:
		return spjs.ErrClosed
	}
}

func (a *SPJSAdapter) flush() error {
	if len(a.batch) == 0 {
		return nil
	}
	select {
	case <-a.ready:
	case <-a.done:
		return spjs.ErrClosed
	}

	id := a.batch[len(a.batch)-1].ID
	ch := make(chan error, 1)
	a.mx.Lock()
	a.waiting[id] = ch
	a.mx.Unlock()

	err := a.c.SendJSON(spjs.JSON{Port: a.cfg.Port, Data: a.batch})
	a.batch = nil
	if err != nil {
		a.mx.Lock()
		delete(a.waiting, id)
		a.mx.Unlock()
		return err
	}

	prev := a.last
	a.last = ch
	if prev == nil {
		return nil
	}
	return a.wait(prev)
}

// Close sends any buffered lines, waits for the mill to accept them and
// disconnects from SPJS.
func (a *SPJSAdapter) Close() error {
	if len(a.partial) > 0 {
		a.batch = append(a.batch, spjs.Data{Data: string(a.partial), ID: uuid.NewString()})
		a.partial = nil
	}
	err := a.flush()
	if err == nil && a.last != nil {
		err = a.wait(a.last)
	}
	a.last = nil

	if cerr := a.c.Close(); err == nil {
		err = cerr
	}
	return err
}
