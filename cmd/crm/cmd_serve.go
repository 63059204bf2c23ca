package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mock-crm/internal/config"
	"mock-crm/internal/httpserver"
	"mock-crm/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the mock CRM HTTP API. The listen port comes from --port or the PORT
environment variable (default 5000); HTTP_ADDR overrides both.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5000, "port to listen on")
	serveCmd.Flags().String("addr", "", "full listen address, overrides --port")
	mustBind(v, "port", config.KeyPort)
	mustBind(v, "addr", config.KeyHTTPAddr)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = log.Sync() }()

	svc, err := buildService(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	srv, err := httpserver.New(cfg.HTTPAddr, log.Named("http"), httpserver.Deps{CustomerSvc: svc}, cfg.CORSOrigins)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", zap.String("addr", srv.Addr()), zap.String("schema", string(cfg.Schema)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", zap.Error(err))
			return err
		}
		log.Info("server stopped")
		return nil
	})
	return g.Wait()
}
