package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/handlers"
	"github.com/diegoclair/advice-rotation-bot/internal/notifier"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve slash commands and deliver due notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.Config.ValidateSlack(); err != nil {
				return err
			}
			return serve(cmd.Context(), rootOpts)
		},
	}
}

func serve(ctx context.Context, rootOpts *RootOptions) error {
	a, err := newApp(rootOpts.Config)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := a.services.Queue.Reconcile(ctx); err != nil {
		a.log.WithError(err).Warn("Startup reconcile failed")
	}

	limiter := rate.NewLimiter(rate.Limit(a.cfg.DeliveryRatePerSec), 1)
	dispatcher := notifier.NewDispatcher(a.repos.Notification(), a.slack, a.cfg.SlackChannelID, limiter, a.metrics, a.log, nil)
	if err := dispatcher.Start(a.cfg.DispatchSpec); err != nil {
		return err
	}
	defer dispatcher.Stop()

	handler := handlers.New(a.services.Rotation, a.services.Queue, a.services.Settings, a.cfg.SlackSigningSecret, a.log)

	server := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           handlers.NewRouter(handler, a.registry, a.cfg.CalendarToken),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.log.WithField("port", a.cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	a.log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
