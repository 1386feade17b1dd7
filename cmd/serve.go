// cmd/serve.go
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/workbench/controller"
	logger "github.com/dev-mohitbeniwal/workbench/logging"
	"github.com/dev-mohitbeniwal/workbench/router"
)

func newServeCommand() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if port == "" {
				port = a.cfg.Server.Port
			}

			gin.SetMode(gin.ReleaseMode)
			handler := router.SetupRouter(controller.InitializeControllers(a.services), router.Options{
				Metrics:           a.services.Metrics,
				Limiter:           a.limiter,
				RateLimitRequests: a.cfg.RateLimit.Requests,
				RateLimitDuration: a.cfg.RateLimit.Duration,
			})

			server := &http.Server{
				Addr:    fmt.Sprintf(":%s", port),
				Handler: handler,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting server", zap.String("port", port))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			logger.Info("Shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}

			logger.Info("Server exiting")
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Listen port (defaults to server.port)")
	return cmd
}
