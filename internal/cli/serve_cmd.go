package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/canaleta14-ai/gmao/internal/api"
	"github.com/canaleta14-ai/gmao/internal/config"
	"github.com/canaleta14-ai/gmao/internal/trigger"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var noCron bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP trigger surface and the scheduled generation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			if cfg == nil {
				return errors.New("serve requires a loaded configuration")
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if noCron {
				cfg.Scheduler.Enabled = false
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, app, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	cmd.Flags().BoolVar(&noCron, "no-cron", false, "disable the scheduled automatic generation")

	return cmd
}

// serve blocks until ctx is cancelled or the listener fails, then shuts
// the schedule and the server down within the configured timeout.
func serve(ctx context.Context, app *App, cfg *config.Config) error {
	logger := app.logger()

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := api.NewHandler(app.Generation, app.Orders, app.Plans)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(handler, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var sched *trigger.CronTrigger
	if cfg.Scheduler.Enabled {
		var err error
		sched, err = trigger.NewCronTrigger(cfg.Scheduler.Cron, app.Generation, cfg.Lock.TTL, logger)
		if err != nil {
			return err
		}
		sched.Start()
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited")
	return runErr
}
