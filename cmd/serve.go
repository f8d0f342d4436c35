package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/courseforge/courseforge/internal/agents"
	"github.com/courseforge/courseforge/internal/content"
	"github.com/courseforge/courseforge/internal/llm"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/server"
	"github.com/courseforge/courseforge/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP generation service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8000", "Listen address")
	serveCmd.Flags().String("mode", "production", "Logger mode (development or production)")
}

// runServe wires the service together and blocks until SIGINT/SIGTERM.
func runServe(cmd *cobra.Command) error {
	// A missing .env file is fine; explicit env vars win either way.
	_ = godotenv.Load()

	mode, _ := cmd.Flags().GetString("mode")
	if mode == "" {
		mode = "production"
	}
	log, err := logger.New(mode)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		return fmt.Errorf("configure LLM provider: %w", err)
	}

	svc := content.New(provider, agents.NewRegistry(), log)
	handler := server.NewHandler(svc, st.EventRepo(), log)
	router := server.NewRouter(handler, log)

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = ":8000"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", addr),
			zap.String("provider", provider.ModelID()),
			zap.String("db", dbPath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case s := <-sig:
		log.Info("shutting down", zap.String("signal", s.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
