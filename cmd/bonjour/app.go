package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/mash-protocol/bonjour-go/pkg/bonjour"
	"github.com/mash-protocol/bonjour-go/pkg/config"
	"github.com/mash-protocol/bonjour-go/pkg/dnssd"
	"github.com/mash-protocol/bonjour-go/pkg/eventloop"
	mashlog "github.com/mash-protocol/bonjour-go/pkg/log"
)

// app wires a client to an event loop and the configured loggers.
type app struct {
	cfg    *config.Config
	out    io.Writer
	logger *slog.Logger
	loop   *eventloop.Loop
	client *bonjour.Client
	trace  *mashlog.FileLogger
}

// newApp builds the client on lib. Results are printed to out.
func newApp(cfg *config.Config, lib dnssd.Library, out io.Writer) (*app, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	a := &app{
		cfg:    cfg,
		out:    out,
		logger: logger,
		loop:   eventloop.New(logger),
	}

	var tracers []mashlog.Logger
	if cfg.TraceLog != "" {
		fl, err := mashlog.NewFileLogger(cfg.TraceLog)
		if err != nil {
			return nil, fmt.Errorf("open trace log: %w", err)
		}
		a.trace = fl
		tracers = append(tracers, fl)
	}
	if level <= slog.LevelDebug {
		tracers = append(tracers, mashlog.NewSlogAdapter(logger))
	}

	clientConfig := bonjour.Config{
		Domain:            cfg.Domain,
		BrowseErrorPolicy: policy,
		OnError:           a.onError,
		Logger:            logger,
	}
	if m := mashlog.NewMultiLogger(tracers...); m.Len() > 0 {
		clientConfig.TraceLogger = m
	}

	a.client = bonjour.New(lib, a.loop, clientConfig)
	return a, nil
}

// run posts start to the loop and dispatches until ctx is cancelled or
// start fails. The client is drained by the loop's shutdown hooks.
func (a *app) run(ctx context.Context, start func(cancel context.CancelFunc) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var startErr error
	a.loop.Post(func() {
		if err := start(cancel); err != nil {
			startErr = err
			cancel()
		}
	})

	if err := a.loop.Run(ctx); err != nil {
		return err
	}
	return startErr
}

// close flushes the trace file.
func (a *app) close() {
	if a.trace == nil {
		return
	}
	if err := a.trace.Close(); err != nil {
		log.Printf("Error closing trace log: %v", err)
		return
	}
	a.logger.Debug("trace log closed", "path", a.cfg.TraceLog, "events", a.trace.Count())
}

func (a *app) onError(err error) {
	fmt.Fprintf(a.out, "! %v\n", err)
}
