// README: Entry point; loads config, wires the itinerary planner, optional cache and expense ledger, serves HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"voyage/internal/config"
	httptransport "voyage/internal/http"
	"voyage/internal/infra"
	"voyage/internal/logger"
	"voyage/internal/metrics"
	"voyage/internal/modules/expense"
	"voyage/internal/modules/itinerary"
	"voyage/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("voyage-api")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.NewWithWriter(os.Stdout, "voyage-api", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("voyage-api stopped")
	}
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	m := metrics.New(prometheus.DefaultRegisterer)

	client, release, err := infra.NewLLMClient(ctx, cfg.LLM, log)
	if err != nil {
		return err
	}
	defer release()

	var cache service.ItineraryCache
	if cfg.Redis.Addr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr, log)
		if err != nil {
			return err
		}
		defer rdb.Close()
		cache = itinerary.NewCacheStore(rdb, cfg.Cache.TTL)
	} else {
		log.Info().Msg("VOYAGE_REDIS_ADDR not set, itinerary cache disabled")
	}

	var expenses *expense.Service
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN, log)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := infra.Migrate(ctx, pool, log); err != nil {
			return err
		}
		expenses = expense.NewService(expense.NewStore(pool), m, log)
	} else {
		log.Info().Msg("VOYAGE_DB_DSN not set, expense routes disabled")
	}

	planner := service.NewItineraryPlanner(client, cache, m, log)
	analyzer := service.NewRequirementAnalyzer(client, log)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Planner:         planner,
		Analyzer:        analyzer,
		Expenses:        expenses,
		GenerateTimeout: cfg.HTTP.GenerateTimeout,
		Gatherer:        prometheus.DefaultGatherer,
		Log:             log,
	})
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.HTTP.Addr).
			Bool("llm_configured", planner.Configured()).
			Str("provider", planner.Provider()).
			Msg("voyage-api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
