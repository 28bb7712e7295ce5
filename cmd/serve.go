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

	"github.com/sells-group/nss-cli/internal/api"
	"github.com/sells-group/nss-cli/internal/config"
	"github.com/sells-group/nss-cli/internal/store"
)

var servePort int

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-only model API",
	Long: `Serves scenarios, regions, projections, heatmaps and GeoJSON maps over
HTTP. When store.database_url is set, saved runs are served under /api/runs.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		env, err := initModel(ctx, cfg)
		if err != nil {
			return err
		}

		st, err := openOptionalStore(ctx, cfg)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close() //nolint:errcheck
		}

		handler := api.NewRouter(
			api.NewHandlers(env.Projector, env.Modeler, env.Scorer, env.Boundaries, st),
			cfg.Server.AllowedOrigins,
		)
		return serve(ctx, cfg.Server.Port, handler)
	},
}

// openOptionalStore opens the run store only when one is configured.
func openOptionalStore(ctx context.Context, c *config.Config) (store.Store, error) {
	if c.Store.DatabaseURL == "" {
		zap.L().Info("no store configured, run routes disabled")
		return nil, nil
	}
	return initStore(ctx, c)
}

func serve(ctx context.Context, port int, handler http.Handler) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server", zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}
	return nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
