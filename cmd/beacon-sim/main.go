// Command beacon-sim runs a beacon session against a simulated handset.
//
// It wires the orchestrator to a simulated handset, sensing engine and
// advertiser, serves the websocket bridge, and offers an interactive console
// to answer prompts and emit beacons.
//
// Usage:
//
//	beacon-sim [flags]
//
// Flags:
//
//	-config string      Configuration file path (YAML)
//	-listen string      Bridge listen address (overrides config)
//	-log-level string   Log level: debug, info, warn, error (overrides config)
//	-interactive        Run the interactive console (default true)
//	-reset              Clear persisted session state on startup
//
// Examples:
//
//	# Start with defaults and the console
//	beacon-sim
//
//	# Start headless with a recorded event log
//	beacon-sim -config sim.yaml -interactive=false
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/beaconsense/beacon-go/cmd/beacon-sim/interactive"
	"github.com/beaconsense/beacon-go/internal/testharness/mock"
	"github.com/beaconsense/beacon-go/pkg/bridge"
	"github.com/beaconsense/beacon-go/pkg/log"
	"github.com/beaconsense/beacon-go/pkg/orchestrator"
	"github.com/beaconsense/beacon-go/pkg/persistence"
)

const version = "0.3.0"

var (
	configFile      = flag.String("config", "", "Configuration file path (YAML)")
	listen          = flag.String("listen", "", "Bridge listen address (overrides config)")
	logLevel        = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	interactiveMode = flag.Bool("interactive", true, "Run the interactive console")
	reset           = flag.Bool("reset", false, "Clear persisted session state on startup")
)

// console is the log destination. It starts on stderr and moves to the
// readline writer once the console runs.
type console struct {
	mu sync.Mutex
	w  io.Writer
}

func (c *console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.Write(p)
}

func (c *console) set(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.w = w
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return err
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	out := &console{w: os.Stderr}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Event capture
	loggers := []log.Logger{log.NewSlogAdapter(logger)}
	if cfg.EventLog != "" {
		fl, err := log.NewFileLogger(cfg.EventLog)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer fl.Close()
		loggers = append(loggers, fl)
		logger.Info("recording events", "path", fl.Path())
	}

	// Persistence
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	handset := mock.NewHandset(cfg.HandsetState())
	engine := mock.NewEngine(cfg.AutoBind)
	adv := mock.NewAdvertiser(cfg.AutoConfirmBroadcast)

	ocfg := orchestrator.DefaultConfig()
	ocfg.Logger = logger
	ocfg.EventLogger = log.NewMultiLogger(loggers...)
	ocfg.PromptTimeout = cfg.PromptTimeout
	ocfg.RestoreMonitoring = cfg.RestoreMonitoring
	if store != nil {
		ocfg.Store = store
	}
	if cfg.ScanPeriod > 0 {
		ocfg.ForegroundScanPeriod = cfg.ScanPeriod
	}
	if cfg.BetweenScanPeriod > 0 {
		ocfg.ForegroundBetweenScanPeriod = cfg.BetweenScanPeriod
	}

	orch, err := orchestrator.New(engine, adv, ocfg)
	if err != nil {
		return fmt.Errorf("create orchestrator: %w", err)
	}
	defer orch.Close()

	handset.SetHandlers(mock.HandsetHandlers{OnRadioChange: orch.NotifyRadioState})
	if err := orch.Attach(orchestrator.Host{Probe: handset, Requester: handset}); err != nil {
		return fmt.Errorf("attach handset: %w", err)
	}
	logger.Info("session started", "session_id", orch.SessionID(), "radio", cfg.Radio,
		"permission", cfg.Permission, "location_service", cfg.LocationService)

	scfg := bridge.DefaultServerConfig()
	scfg.Addr = cfg.Listen
	scfg.Version = version
	scfg.Logger = logger
	srv := bridge.NewServer(orch, scfg)
	serverDone := make(chan struct{})
	if cfg.Listen != "" {
		go func() {
			defer close(serverDone)
			if err := srv.Run(ctx); err != nil {
				logger.Error("bridge stopped", "err", err)
				cancel()
			}
		}()
		logger.Info("bridge listening", "addr", cfg.Listen)
	} else {
		close(serverDone)
	}

	if *interactiveMode {
		sim, err := interactive.New(interactive.Env{
			Orchestrator: orch,
			Dispatcher:   srv.Dispatcher(),
			Handset:      handset,
			Engine:       engine,
			Advertiser:   adv,
			Regions:      cfg.Regions,
		})
		if err != nil {
			return err
		}
		// Keep log lines from interfering with the prompt
		out.set(sim.Stderr())
		go sim.Run(ctx, cancel)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig.String())
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	cancel()
	<-serverDone
	out.set(os.Stderr)
	return nil
}

// sessionStore is implemented by both persistence stores.
type sessionStore interface {
	orchestrator.Store
	Clear() error
}

// openStore opens the configured session store, or returns nil when none is
// configured. The returned close function is always non-nil.
func openStore(ctx context.Context, cfg Config, logger *slog.Logger) (sessionStore, func(), error) {
	var (
		store sessionStore
		done  = func() {}
	)

	switch {
	case cfg.Database != "":
		db, err := persistence.Open(ctx, cfg.Database, logger)
		if err != nil {
			return nil, done, fmt.Errorf("open database: %w", err)
		}
		store = db
		done = func() {
			if err := db.Close(); err != nil {
				logger.Warn("closing database failed", "err", err)
			}
		}
		logger.Info("using database", "path", cfg.Database)
	case cfg.StateFile != "":
		store = persistence.NewFileStore(cfg.StateFile)
		logger.Info("using state file", "path", cfg.StateFile)
	default:
		return nil, done, nil
	}

	if *reset {
		logger.Info("resetting persisted state")
		if err := store.Clear(); err != nil {
			logger.Warn("failed to clear state", "err", err)
		}
	}
	return store, done, nil
}
