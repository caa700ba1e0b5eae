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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/emilroby/nsefi-harvester/internal/api"
	"github.com/emilroby/nsefi-harvester/internal/clock/ist"
	"github.com/emilroby/nsefi-harvester/internal/logging"
	"github.com/emilroby/nsefi-harvester/internal/snapshot/local"
)

// newServeCmd creates and configures the 'serve' subcommand: the read-only
// snapshot accessor the dashboard consumes. It never triggers harvests.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves the read-only snapshot accessor",
		Long: `Starts the HTTP accessor exposing stored month snapshots to the
dashboard, plus health and metrics endpoints. Snapshot files may change
between reads while a publish run is active; reads always observe a
complete document because snapshot writes are atomic.`,
		RunE: runServeCommand,
	}
	cmd.Flags().String("addr", "", "listen address (overrides api.addr)")
	return cmd
}

func runServeCommand(cmd *cobra.Command, _ []string) error {
	v := viper.GetViper()

	store, err := local.New(local.Config{
		Dir:    v.GetString("snapshot.dir"),
		Prefix: v.GetString("snapshot.prefix"),
	}, ist.New())
	if err != nil {
		return fmt.Errorf("init snapshot store: %w", err)
	}

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("read addr flag: %w", err)
	}
	if addr == "" {
		addr = v.GetString("api.addr")
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(store, logging.L).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	logging.L.Info("Accessor listening", zap.String("addr", addr))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("accessor server: %w", err)
		}
	case <-ctx.Done():
		logging.L.Info("Shutting down accessor")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown accessor: %w", err)
		}
	}
	return nil
}
