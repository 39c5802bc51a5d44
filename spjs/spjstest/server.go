// Package spjstest provides an in-process SPJS server for tests.
package spjstest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/mastercactapus/gcode2rml/spjs"
)

// Server answers "list", "open" and "sendjson" commands. Every line sent
// with sendjson is reported Complete immediately.
type Server struct {
	*httptest.Server

	// URL is the websocket URL of the server.
	URL string

	mx       sync.Mutex
	ports    []spjs.SerialPort
	commands []string
	data     []string
}

func NewServer(ports ...spjs.SerialPort) *Server {
	s := &Server{ports: ports}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serveWS))
	s.URL = "ws" + strings.TrimPrefix(s.Server.URL, "http") + "/ws"
	return s
}

// Commands returns every text command received, in order.
func (s *Server) Commands() []string {
	s.mx.Lock()
	defer s.mx.Unlock()
	return append([]string(nil), s.commands...)
}

// Data returns the concatenated lines received through sendjson.
func (s *Server) Data() string {
	s.mx.Lock()
	defer s.mx.Unlock()
	return strings.Join(s.data, "")
}

func (s *Server) serveWS(w http.ResponseWriter, req *http.Request) {
	var up websocket.Upgrader
	ws, err := up.Upgrade(w, req, nil)
	if err != nil {
		return
	}
	defer ws.Close()

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			return
		}
		for _, v := range s.handle(string(msg)) {
			if err := ws.WriteJSON(v); err != nil {
				return
			}
		}
	}
}

func (s *Server) handle(cmd string) []interface{} {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.commands = append(s.commands, cmd)

	switch {
	case cmd == "list":
		return []interface{}{spjs.SerialPortList{SerialPorts: s.ports}}
	case strings.HasPrefix(cmd, "open "):
		fields := strings.Fields(cmd)
		for i := range s.ports {
			if s.ports[i].Name == fields[1] {
				s.ports[i].IsOpen = true
				return []interface{}{spjs.CmdStatus{Cmd: "Open", Port: fields[1]}}
			}
		}
		return []interface{}{spjs.ErrorMessage{Error: "no such port " + fields[1]}}
	case strings.HasPrefix(cmd, "sendjson "):
		var j spjs.JSON
		if err := json.Unmarshal([]byte(strings.TrimPrefix(cmd, "sendjson ")), &j); err != nil {
			return []interface{}{spjs.ErrorMessage{Error: err.Error()}}
		}
		var res []interface{}
		for _, d := range j.Data {
			s.data = append(s.data, d.Data)
			res = append(res, spjs.CmdStatus{Cmd: "Complete", Port: j.Port, ID: d.ID})
		}
		return res
	}

	return nil
}
