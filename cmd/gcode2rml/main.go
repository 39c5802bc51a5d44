// Command gcode2rml translates G-code into RML-1 for Roland mills.
//
// Usage:
//
//	gcode2rml [flags] [file ...]
//
// Files are translated in order as one program; with no files, standard
// input is read. Output goes to standard output unless -o, -port or
// -spjs (or the equivalent configuration) selects another destination.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/mastercactapus/gcode2rml/config"
	"github.com/mastercactapus/gcode2rml/gcode"
	"github.com/mastercactapus/gcode2rml/logger"
	"github.com/mastercactapus/gcode2rml/machine"
	"github.com/mastercactapus/gcode2rml/spjs"
)

const (
	exitOK = iota
	exitTranslate
	exitSetup
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gcode2rml", flag.ContinueOnError)
	fs.SetOutput(stderr)
	confName := fs.String("config", config.FileName, "Configuration file to use.")
	outName := fs.String("o", "", "Write output to a file ('-' for stdout).")
	port := fs.String("port", "", "Serial port path (or name if using SPJS).")
	spjsURL := fs.String("spjs", "", "Websocket URL of the SPJS server to use.")
	meshFile := fs.String("mesh", "", "Probe grid (JSON) for Z leveling.")
	serve := fs.Bool("serve", false, "Run the HTTP translation service.")
	addr := fs.String("addr", "", "Address to bind the HTTP service to.")
	mkconf := fs.Bool("mkconf", false, "Write the effective configuration to the config file and exit.")
	conf := fs.Bool("conf", false, "Print the effective configuration and exit.")
	verbose := fs.Bool("v", false, "Log debug diagnostics.")
	jsonLog := fs.Bool("json-log", false, "Log as JSON.")
	if err := fs.Parse(args); err != nil {
		return exitSetup
	}

	level := new(slog.LevelVar)
	if *verbose {
		level.Set(slog.LevelDebug)
	}
	log := logger.New(stderr, logger.Options{JSON: *jsonLog, Level: level})

	cfg, err := config.Load(*confName)
	if err != nil {
		log.Error("load config", "err", err)
		return exitSetup
	}
	set := func(dst *string, val string) {
		if val != "" {
			*dst = val
		}
	}
	set(&cfg.Serial.Port, *port)
	set(&cfg.SPJS.URL, *spjsURL)
	set(&cfg.Mesh.File, *meshFile)
	set(&cfg.Addr, *addr)

	switch {
	case *mkconf:
		if err := writeConfig(*confName, cfg); err != nil {
			log.Error("write config", "err", err)
			return exitSetup
		}
		return exitOK
	case *conf:
		if err := cfg.WriteYAML(stdout); err != nil {
			log.Error("write config", "err", err)
			return exitSetup
		}
		return exitOK
	}

	t, err := newTranslator(cfg)
	if err != nil {
		log.Error("load mesh", "err", err)
		return exitSetup
	}

	if *serve {
		log.Info("listening", "addr", cfg.Addr)
		err := http.ListenAndServe(cfg.Addr, newAPI(t, log, level))
		log.Error("serve", "err", err)
		return exitSetup
	}

	inputs, err := openInputs(fs.Args(), stdin)
	if err != nil {
		log.Error("open input", "err", err)
		return exitSetup
	}
	defer func() {
		for _, in := range inputs {
			in.Close()
		}
	}()

	out, err := openOutput(ctx, cfg, *outName, stdout, log)
	if err != nil {
		log.Error("open output", "err", err)
		return exitSetup
	}

	code := translate(t, inputs, out, log)
	if err := out.Close(); err != nil {
		log.Error("close output", "err", err)
		code = exitTranslate
	}
	return code
}

func writeConfig(name string, cfg *config.Config) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := cfg.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type input struct {
	io.ReadCloser
	name string
}

func openInputs(names []string, stdin io.Reader) ([]input, error) {
	if len(names) == 0 {
		return []input{{ReadCloser: io.NopCloser(stdin), name: "stdin"}}, nil
	}

	inputs := make([]input, 0, len(names))
	for _, name := range names {
		f, err := os.Open(name)
		if err != nil {
			for _, in := range inputs {
				in.Close()
			}
			return nil, err
		}
		inputs = append(inputs, input{ReadCloser: f, name: name})
	}
	return inputs, nil
}

func openOutput(ctx context.Context, cfg *config.Config, name string, stdout io.Writer, log *slog.Logger) (machine.Adapter, error) {
	switch {
	case name == "-":
		return nopCloser{stdout}, nil
	case name != "":
		return os.Create(name)
	case cfg.SPJS.URL != "":
		if cfg.Serial.Port == "" {
			return nil, errors.New("SPJS output needs a port name")
		}
		c := spjs.NewClient(cfg.SPJS.URL, log)
		return machine.NewSPJSAdapter(c, machine.SPJSConfig{
			Port:   cfg.Serial.Port,
			Baud:   cfg.Serial.Baud,
			Buffer: cfg.SPJS.Buffer,
		}, log), nil
	case cfg.Serial.Port != "":
		return machine.OpenSerial(ctx, machine.SerialConfig{
			Port: cfg.Serial.Port,
			Baud: cfg.Serial.Baud,
		}, log)
	}

	return nopCloser{stdout}, nil
}

// translate runs all inputs through one machine and returns the exit code.
func translate(t *translator, inputs []input, out io.Writer, log *slog.Logger) int {
	w := bufio.NewWriter(out)
	m, err := t.start(w, log)
	if err == nil {
		for _, in := range inputs {
			if err = feed(m, in.name, gcode.NewLineReader(in)); err != nil {
				break
			}
		}
	}
	if ferr := w.Flush(); err == nil {
		err = ferr
	}

	var unknown *gcode.UnknownCommandError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &unknown):
		log.Error("translation stopped", "err", err)
	default:
		log.Error("translate", "err", err)
	}
	return exitTranslate
}
