package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rescueline/dispatch-cli/internal/dispatch"
	"github.com/rescueline/dispatch-cli/internal/livestatus"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dispatch API server",
	Long: `Start the HTTP API with the live status simulator running in
the background. Emergencies created over the API are held in memory
for the life of the process.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("serve"); err != nil {
		return err
	}

	env, err := initEnv()
	if err != nil {
		return err
	}

	store := livestatus.NewStore()
	sim := livestatus.NewSimulator(store, env.roster, newRand(cfg.Simulator.Seed))

	coordinator := dispatch.NewCoordinator(env.engine, env.planner, env.classifier, store, env.traffic)
	handler := dispatch.NewServer(coordinator, env.engine, store).Router(
		cfg.Server.AllowedOrigins,
		cfg.Server.RateLimitRPS,
		cfg.Server.RateLimitBurst,
	)

	port := servePort
	if port == 0 {
		port = cfg.Server.Port
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := sim.Run(ctx, time.Duration(cfg.Simulator.RefreshSecs)*time.Second)
		if eris.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
