package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/pathwise/pathwise/internal/api"
	"github.com/pathwise/pathwise/internal/engine"
)

// shutdownGrace bounds how long in-flight requests may run after a
// termination signal.
const shutdownGrace = 10 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	var listenAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Serves the scenario CRUD, validation, optimization, and calculation
endpoints plus Prometheus metrics on /metrics. The server drains
in-flight requests on SIGINT/SIGTERM before exiting.`,
		Example: `  # Start with defaults (listens on :8080)
  pathwise serve

  # Start with a configuration file
  pathwise serve --config config.yaml --listen :9000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, listenAddr)
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (overrides configuration)")

	return cmd
}

func runServe(cmd *cobra.Command, listenAddr string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.Server.ListenAddr = listenAddr
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	eng := newEngine(cfg, engine.NewMetrics(reg))

	mux := http.NewServeMux()
	api.NewHandler(st, eng, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           requestTimeout(mux, cfg.Engine.CalculationTimeout()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("listen_addr", srv.Addr).Msg("server started")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestTimeout bounds every request with the engine calculation
// timeout so a stuck calculation cannot pin a connection forever.
func requestTimeout(next http.Handler, timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
