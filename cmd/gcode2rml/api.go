package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/mastercactapus/gcode2rml/gcode"
	"github.com/mastercactapus/gcode2rml/logger"
	"github.com/mastercactapus/gcode2rml/meshlevel"
)

const diagnosticsChannel = "/events/diagnostics"

type api struct {
	http.Handler
	t     *translator
	log   *slog.Logger
	level slog.Leveler
	sse   *sse.Server

	// publish sends one diagnostics record to event stream clients.
	publish func(data string)
}

func newAPI(t *translator, log *slog.Logger, level slog.Leveler) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		t:       t,
		log:     log,
		level:   level,
		sse: sse.NewServer(&sse.Options{
			Logger: slog.NewLogLogger(log.Handler(), slog.LevelDebug),
		}),
	}
	a.publish = func(data string) {
		a.sse.SendMessage(diagnosticsChannel, sse.SimpleMessage(data))
	}

	r.Use(a.logRequests)
	r.HandleFunc("/api/translate", a.translate).Methods("POST")
	r.HandleFunc("/api/config", a.config).Methods("GET")
	r.HandleFunc("/api/mesh", a.putMesh).Methods("PUT")
	r.HandleFunc("/api/mesh", a.deleteMesh).Methods("DELETE")
	r.Handle(diagnosticsChannel, a.sse).Methods("GET")

	return a
}

func (a *api) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		a.log.Debug("request", "method", req.Method, "path", req.URL.Path, "remote", req.RemoteAddr)
		next.ServeHTTP(w, req)
	})
}

// publisher is an io.Writer that sends each JSON record it receives to
// the event stream.
type publisher func(string)

func (p publisher) Write(b []byte) (int, error) {
	p(strings.TrimSpace(string(b)))
	return len(b), nil
}

func (a *api) translate(w http.ResponseWriter, req *http.Request) {
	id := uuid.NewString()
	log := slog.New(logger.Tee(
		a.log.Handler(),
		logger.NewJSONHandler(publisher(a.publish), a.level),
	)).With("request", id)

	var out bytes.Buffer
	m, err := a.t.start(&out, log)
	if err == nil {
		err = feed(m, "request", gcode.NewLineReader(req.Body))
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("X-Request-Id", id)

	var unknown *gcode.UnknownCommandError
	switch {
	case errors.As(err, &unknown):
		log.Error("translation stopped", "err", err)
		w.WriteHeader(http.StatusUnprocessableEntity)
	case err != nil:
		log.Error("translate", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Write(out.Bytes())
}

func (a *api) config(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(a.t.cfg)
	if err != nil {
		a.log.Error("encode", "err", err)
	}
}

func (a *api) putMesh(w http.ResponseWriter, req *http.Request) {
	points, err := meshlevel.ReadProbes(req.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	mesh, err := meshlevel.NewMesh(points)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a.t.setMesh(mesh)
	a.log.Info("mesh updated", "points", len(points))
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) deleteMesh(w http.ResponseWriter, req *http.Request) {
	a.t.setMesh(nil)
	a.log.Info("mesh removed")
	w.WriteHeader(http.StatusNoContent)
}
