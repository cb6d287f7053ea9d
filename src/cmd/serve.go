package cmd

import (
	"consolidator/src/api"
	"consolidator/src/api/controllers"
	"consolidator/src/api/handlers"
	"consolidator/src/scheduler"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the latest consolidated holdings over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, ctx, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			controller := controllers.NewController(a.cfg.Input.DataDir, a.extraction, a.export, a.runs)
			httpServer := api.NewHTTPServer(api.NewServer(handlers.NewHandler(controller, a.logger)), a.cfg.Service.Port)

			if a.cfg.Scheduler.Cron != "" {
				task, err := scheduler.NewScheduledTask(ctx, a.cfg.Scheduler.Cron, func(ctx context.Context) error {
					_, err := controller.RunExtraction(ctx, "")
					return err
				})
				if err != nil {
					return err
				}
				defer task.Cancel()
				a.logger.WithField("next", task.Next()).Info("Scheduled extractions enabled")
			}

			errC := make(chan error, 1)
			go func() {
				a.logger.WithField("port", a.cfg.Service.Port).Info("Starting server")
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errC <- err
				}
				close(errC)
			}()

			select {
			case err := <-errC:
				return err
			case <-ctx.Done():
			}

			a.logger.Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}
}
