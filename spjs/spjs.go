// Package spjs is a client for the Serial Port JSON Server websocket API.
package spjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/gorilla/websocket"
)

// ErrClosed is returned when sending through a closed Client.
var ErrClosed = errors.New("spjs: client closed")

// Client keeps a connection to an SPJS server, reconnecting as needed.
type Client struct {
	url string
	log *slog.Logger

	outgoing chan message
	incoming chan interface{}

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

type message struct {
	done    chan struct{}
	payload []byte
}

type DataFrame struct {
	Port string `json:"P"`
	Data string `json:"D"`
}
type CmdStatus struct {
	Cmd        string
	Port       string
	QueueCount int    `json:"QCnt"`
	ID         string `json:"Id"`
}

type ErrorMessage struct {
	Error string
}
type SerialPortList struct {
	SerialPorts []SerialPort
}
type SerialPort struct {
	Name            string
	Friendly        string
	SerialNumber    string
	IsOpen          bool
	IsPrimary       bool
	Baud            int
	BufferAlgorithm string
}

// NewClient starts connecting to url in the background. A nil logger
// discards diagnostics.
func NewClient(url string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		url:      url,
		log:      log.With("url", url),
		outgoing: make(chan message),
		incoming: make(chan interface{}, 1000),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go c.loop()

	return c
}

// Messages returns decoded server messages: *DataFrame, *CmdStatus,
// *ErrorMessage or *SerialPortList. It is closed after Close.
func (c *Client) Messages() <-chan interface{} {
	return c.incoming
}

func parseMessage(data []byte) (interface{}, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	var v interface{}
	switch {
	case fields["Error"] != nil:
		v = &ErrorMessage{}
	case fields["SerialPorts"] != nil:
		v = &SerialPortList{}
	case fields["Cmd"] != nil:
		v = &CmdStatus{}
	case fields["D"] != nil:
		v = &DataFrame{}
	default:
		return nil, errors.New("unknown message: " + string(data))
	}

	return v, json.Unmarshal(data, v)
}

func (c *Client) readLoop(ws *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if c.ctx.Err() == nil {
				c.log.Error("read", "err", err)
			}
			return
		}
		if !bytes.HasPrefix(data, []byte("{")) {
			// ignore echo messages
			continue
		}
		val, err := parseMessage(data)
		if err != nil {
			c.log.Warn("parse", "err", err)
			continue
		}
		select {
		case c.incoming <- val:
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Client) dial() (*websocket.Conn, error) {
	var ws *websocket.Conn
	op := func() error {
		c.log.Info("connecting")
		conn, _, err := websocket.DefaultDialer.DialContext(c.ctx, c.url, nil)
		if err != nil {
			if c.ctx.Err() == nil {
				c.log.Error("connect", "err", err)
			}
			return err
		}
		ws = conn
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 3 * time.Second
	b.MaxElapsedTime = 0
	if err := backoff.Retry(op, backoff.WithContext(b, c.ctx)); err != nil {
		return nil, err
	}
	return ws, nil
}

func (c *Client) loop() {
	defer close(c.done)
	defer close(c.incoming)

	var next message
	for c.ctx.Err() == nil {
		ws, err := c.dial()
		if err != nil {
			return
		}
		c.log.Info("connected")

		readDone := make(chan struct{})
		go c.readLoop(ws, readDone)
		err = c.serve(ws, readDone, &next)
		ws.Close()
		<-readDone
		if err != nil && c.ctx.Err() == nil {
			c.log.Warn("connection lost", "err", err)
		}
	}
}

// serve writes outgoing messages to ws until the connection drops or the
// client is closed. A message that could not be written is kept in next.
func (c *Client) serve(ws *websocket.Conn, readDone <-chan struct{}, next *message) error {
	// always get the port list first
	if err := ws.WriteMessage(websocket.TextMessage, []byte("list")); err != nil {
		return err
	}

	for {
		if next.done != nil {
			if err := ws.WriteMessage(websocket.TextMessage, next.payload); err != nil {
				return fmt.Errorf("send: %w", err)
			}
			close(next.done)
			next.done = nil
		}

		select {
		case <-c.ctx.Done():
			return ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		case <-readDone:
			return errors.New("read loop ended")
		case *next = <-c.outgoing:
		}
	}
}

type JSON struct {
	Port string `json:"P"`
	Data []Data
}
type Data struct {
	Data string `json:"D"`
	ID   string `json:"Id"`
}

// SendJSON queues lines on a serial port. Each Data may be matched to a
// "Complete" CmdStatus by its ID.
func (c *Client) SendJSON(v JSON) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("sendjson (marshal): %w", err)
	}
	return c.send(append([]byte("sendjson "), data...))
}

// WriteString sends a raw command, like "list" or "open".
func (c *Client) WriteString(data string) error {
	return c.send([]byte(data))
}

// send blocks until the payload has been written to the connection.
func (c *Client) send(payload []byte) error {
	m := message{done: make(chan struct{}), payload: payload}
	select {
	case c.outgoing <- m:
	case <-c.ctx.Done():
		return ErrClosed
	}

	select {
	case <-m.done:
		return nil
	case <-c.ctx.Done():
		return ErrClosed
	}
}

// Close disconnects and stops reconnecting.
func (c *Client) Close() error {
	c.cancel()
	<-c.done
	return nil
}
