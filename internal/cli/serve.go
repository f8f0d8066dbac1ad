package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chaatgpt/till/internal/app"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const (
	idempotencyPurgeInterval = time.Hour
	// persistTimeout bounds the final ledger and auto-save writes
	persistTimeout = 5 * time.Second
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default APP_PORT)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the till HTTP API",
	Long: `Run the till HTTP API. On SIGINT or SIGTERM the server drains for up
to SHUTDOWN_TIMEOUT seconds, then re-saves the EOD ledger and writes the
auto-save bills export.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	cfg := a.Config

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	port, _ := cmd.Flags().GetString("port")
	if port == "" {
		port = cfg.App.Port
	}
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go purgeIdempotencyKeys(ctx, a)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.Shutdown(context.Background())
			return err
		}
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	drain(srv, a, cfg.Till.ShutdownTimeout)
	log.Println("Server exited")
	return nil
}

// drain stops srv within timeout and then saves the till state. The final
// writes get their own deadline so a slow drain cannot starve them.
func drain(srv *http.Server, a *app.App, timeout time.Duration) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	persistCtx, cancelPersist := context.WithTimeout(context.Background(), persistTimeout)
	defer cancelPersist()
	a.Shutdown(persistCtx)
}

func purgeIdempotencyKeys(ctx context.Context, a *app.App) {
	ticker := time.NewTicker(idempotencyPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.PurgeIdempotencyKeys(ctx)
		case <-ctx.Done():
			return
		}
	}
}
