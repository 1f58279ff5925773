package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz-portal/internal/app"
	"quiz-portal/internal/backend"
	"quiz-portal/internal/config"
	"quiz-portal/internal/domain"
	fileinfra "quiz-portal/internal/infra/file"
	"quiz-portal/internal/infra/memory"
	redisinfra "quiz-portal/internal/infra/redis"
	transport "quiz-portal/internal/transport/http"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewServeCmd builds the CLI subcommand to start the proxy server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the quiz portal proxy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath, *port)
		},
	}
}

func runServe(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "3000"
	}

	backendURL := cfg.Backend.URL
	if backendURL == "" {
		backendURL = "http://localhost:9090"
	}
	gateway := backend.NewClient(backendURL, config.Duration(cfg.Backend.Timeout, 10*time.Second))

	// Quiz copies are transient: cache them with a TTL, in Redis when
	// configured, in process memory otherwise.
	quizTTL := config.Duration(cfg.Quiz.TTL, 10*time.Minute)
	var quizzes app.QuizFetcher = memory.NewQuizCache(gatewayFetcher{gateway}, quizTTL)
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		quizzes = redisinfra.NewQuizCache(client, gatewayFetcher{gateway}, quizTTL)
	}

	catalog := app.NewCatalogService(gateway, quizzes)

	var results app.ResultStore = memory.NewResultStore()
	var identity app.Identity = memory.StaticIdentity{}
	if cfg.Results.Path != "" {
		results = fileinfra.NewResultStore(cfg.Results.Path)
	}
	if cfg.Identity.Path != "" {
		identity = fileinfra.NewIdentity(cfg.Identity.Path)
	}

	proxy := transport.NewProxyHandler(catalog, gateway)
	sessions := transport.NewSessionHandler(catalog, app.SessionDeps{
		Results:   results,
		Identity:  identity,
		Publisher: catalog,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Handle("/api/", transport.NewProxyRouter(proxy))
	mux.HandleFunc("/ws/session", sessions.ServeWS)

	return serveHTTP(ctx, finalPort, mux, "quiz portal")
}

type gatewayFetcher struct{ gw *backend.Client }

func (f gatewayFetcher) FetchQuiz(ctx context.Context, id int) (domain.Quiz, error) {
	return f.gw.GetQuiz(ctx, id)
}

func serveHTTP(ctx context.Context, port string, handler http.Handler, name string) error {
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting %s on :%s", name, port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
