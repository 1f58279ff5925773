package cli

import (
	"context"
	"fmt"
	"net/http"

	"quiz-portal/internal/config"
	"quiz-portal/internal/infra/postgres"
	transport "quiz-portal/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
)

// NewBackendCmd starts the bundled reference backend, an upstream-compatible
// stand-in for local development.
func NewBackendCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "backend",
		Short: "Start the Postgres-backed reference backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackend(cmd.Context(), *configPath, *port)
		},
	}
}

func runBackend(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = "9090"
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	handler := transport.NewBackendHandler(postgres.NewStore(pool))

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Handle("/api/", transport.NewBackendRouter(handler))

	return serveHTTP(ctx, finalPort, mux, "reference backend")
}
