package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-extras/cobraflags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shopcraft/ecommerce-api/app/metrics"
	"github.com/shopcraft/ecommerce-api/app/server"
)

func newServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  serveCommand,
	}
	cobraflags.RegisterMap(serveCmd, newCommonFlags())
	return serveCmd
}

func serveCommand(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler, err := server.NewHandler(server.Deps{
		DB:         e.db,
		Logger:     e.log,
		Metrics:    metrics.New(reg),
		BcryptCost: e.cfg.Auth.BcryptCost,
		RateLimit:  e.cfg.RateLimit,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         e.cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  e.cfg.Server.ReadTimeout,
		WriteTimeout: e.cfg.Server.WriteTimeout,
		ErrorLog:     zap.NewStdLog(e.log.Named("http")),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		e.log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	e.log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), e.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	e.log.Info("Server stopped")
	return nil
}
