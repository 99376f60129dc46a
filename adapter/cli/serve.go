package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/felixgeelhaar/tribunal/adapter/api"
)

var serveAddr string

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve platform callbacks over HTTP",
	Long: `Serve starts the callback API. Unless OUTBOX_PROCESSOR_ENABLED is false
the outbox processor runs alongside it and relays scheduling signals.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		return runServer(cmd.Context(), a)
	},
}

func runServer(ctx context.Context, a *App) error {
	cfg := api.DefaultServerConfig()
	cfg.Addr = a.Config.HTTPAddr
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	cfg.RateLimitRPS = a.Config.RateLimitRPS

	server := api.NewServer(cfg, api.Dependencies{
		Dispatcher: a.Dispatcher,
		Health:     a.Health,
		Metrics:    a.Metrics.Handler(),
		Logger:     a.Logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if a.Config.OutboxProcessorEnabled {
		g.Go(func() error {
			return a.OutboxProcessor.Run(gctx)
		})
	} else {
		a.Logger.Info("outbox processor disabled")
	}

	return g.Wait()
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
