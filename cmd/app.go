package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/askyr/relay-rooms/config"
	"github.com/askyr/relay-rooms/crypto"
	"github.com/askyr/relay-rooms/metrics"
	"github.com/askyr/relay-rooms/relay"
	httpServer "github.com/askyr/relay-rooms/server/http"
	"github.com/askyr/relay-rooms/service"
	store "github.com/askyr/relay-rooms/storage/memory"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	fs := pflag.NewFlagSet("main", pflag.ContinueOnError)

	var (
		listenAddr = fs.StringP("listen-addr", "a", "", "listen address (overrides LISTEN_ADDR)")
		logLevel   = fs.StringP("log-level", "l", "debug", "log level")
	)
	if err := fs.Parse(os.Args[1:]); err != nil {
		logger.Fatal().Err(err).Msg("failed to parse command line arguments")
	}

	lvl, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse loglevel")
	}
	logger = logger.Level(lvl)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}

	secret, err := crypto.GenerateSecret()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to generate process secret")
	}

	mtr := metrics.New()
	registry := store.NewRegistry()
	svc := service.NewService(service.Config{
		Secret:   secret,
		BaseURL:  cfg.BaseURL,
		Registry: registry,
		Relay:    relay.New(registry, mtr, &logger),
		Metrics:  mtr,
		Logger:   &logger,
	})
	srv := httpServer.NewServer(httpServer.Config{
		Logger:         &logger,
		RoomService:    svc,
		ListenAddr:     cfg.ListenAddr,
		MetricsHandler: mtr.Handler(),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var (
		wg   = &sync.WaitGroup{}
		errc = make(chan error, 1)
	)
	wg.Add(1)
	go srv.Run(ctx, wg, errc)

	select {
	case err = <-errc:
		logger.Error().Err(err).Msg("unexpected server error, shutting down")
	case <-ctx.Done():
		logger.Warn().Msg("interrupted")
	}
	cancel()
	wg.Wait()
}
