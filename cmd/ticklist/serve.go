// Serve command: run the ticklist API server over a SQLite store.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ticklist/internal/api"
	"github.com/mesh-intelligence/ticklist/internal/sqlite"
	"github.com/mesh-intelligence/ticklist/pkg/types"
)

var flagListenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ticklist API server",
	Long: `Run the HTTP API server over a SQLite store.

The store lives in the data directory; see --data-dir for the resolution
order. Clients connect over REST and receive live change notifications
on /todos/watch.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagListenAddr, "listen", "", "address to listen on (default: localhost:8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		ListenAddr: resolveListenAddr(),
		DataDir:    dataDir,
		ServerURL:  resolveServerURL(),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.NewServer(store),
	}

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("listening", "addr", cfg.ListenAddr, "data_dir", cfg.DataDir)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "err", err)
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-signals
	slog.Info("shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("graceful shutdown failed, closing", "err", err)
		_ = httpServer.Close()
	}
	wg.Wait()
	return nil
}

// resolveListenAddr returns the listen address following the precedence:
// --listen flag > config.yaml listen_addr > default.
func resolveListenAddr() string {
	if flagListenAddr != "" {
		return flagListenAddr
	}
	if configListenAddr != "" {
		return configListenAddr
	}
	return types.DefaultListenAddr
}
