package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"github.com/xtding233/dynamicmob/internal/config"
	"github.com/xtding233/dynamicmob/internal/logging"
	"github.com/xtding233/dynamicmob/internal/roll"
	"github.com/xtding233/dynamicmob/internal/telemetry"
)

type settings struct {
	ConfigDir     string        `env:"DYNAMICMOB_CONFIG_DIR" envDefault:"config"`
	WatchInterval time.Duration `env:"DYNAMICMOB_WATCH_INTERVAL" envDefault:"2s"`
	LogLevel      string        `env:"DYNAMICMOB_LOG_LEVEL" envDefault:"info"`
	LogFormat     string        `env:"DYNAMICMOB_LOG_FORMAT" envDefault:"console"`
	Seed          uint64        `env:"DYNAMICMOB_SEED"`
	OTelEndpoint  string        `env:"DYNAMICMOB_OTEL_ENDPOINT"`
	TraceSample   float64       `env:"DYNAMICMOB_TRACE_SAMPLE" envDefault:"1"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "dynamicmob:", err)
		os.Exit(1)
	}
}

func run() error {
	var s settings
	if err := env.Parse(&s); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	log, err := logging.New(s.LogLevel, s.LogFormat)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, telemetry.Config{
		Service:     "dynamicmob",
		Endpoint:    s.OTelEndpoint,
		SampleRatio: s.TraceSample,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			log.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	loader := config.NewLoader(s.ConfigDir)
	store := config.NewStore(loader, log.Named("config"))
	if _, err := store.Reload(); err != nil {
		return fmt.Errorf("initial config load: %w", err)
	}

	if s.WatchInterval > 0 {
		w := config.NewFileWatcher(loader.Paths().All(), s.WatchInterval, func(path string) {
			log.Info("config file changed", zap.String("path", path))
			_, _ = store.Reload()
		})
		w.Start()
		defer w.Stop()
	}

	rng := roll.DefaultRNG()
	if s.Seed != 0 {
		rng = roll.NewSeededRNG(s.Seed)
	}

	c := &console{store: store, rng: rng, log: log, out: os.Stdout}
	log.Info("dynamicmob ready",
		zap.String("config", s.ConfigDir),
		zap.String("version", store.Current().Version),
	)
	return c.serve(ctx, os.Stdin)
}
