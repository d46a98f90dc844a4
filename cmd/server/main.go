package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"esbresolver/internal/platform/config"
	"esbresolver/internal/platform/logger"
)

const shutdownTimeout = 10 * time.Second

// main loads configuration, wires the resolver and policy components and
// runs the ops server, the change consumer and the background loops until
// SIGINT or SIGTERM.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log, logSink, err := logger.NewForPath(cfg.LogFile)
	if err != nil {
		logger.New().Error("cannot open log file", "path", cfg.LogFile, "error", err)
		os.Exit(1)
	}
	defer logSink.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("initializing esb resolver",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"discover_sites", cfg.Directory.DiscoverSites,
		"tester_mode", cfg.Policy.TesterMode,
	)

	a, err := build(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		_ = logSink.Close()
		os.Exit(1) //nolint:gocritic // log sink closed explicitly above
	}
	defer a.close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	for _, run := range a.background {
		g.Go(func() error { return run(gctx) })
	}

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		a.close()
		_ = logSink.Close()
		os.Exit(1) //nolint:gocritic // resources closed explicitly above
	}
	log.Info("server stopped")
}
