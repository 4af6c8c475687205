package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quorumhq/quorum/internal/config"
	"github.com/quorumhq/quorum/internal/logging"
	"github.com/quorumhq/quorum/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the research API server",
	Long: `Serve exposes the research pipeline over HTTP.

POST /api/research with {"question": "..."} runs one full research pass:
decomposition, concurrent engine fan-out, and synthesis. The server shuts
down gracefully on SIGINT/SIGTERM, waiting for in-flight research requests
up to the configured timeout.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	logger := logging.NewLogger(os.Stderr, cfg.Logging.Level)

	pipeline, err := buildPipeline(cfg, logger)
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}

	srv, err := server.New(server.Config{
		Addr:     cfg.Server.Addr,
		Pipeline: pipeline,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", "grace_period", cfg.Server.ShutdownTimeout().String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
