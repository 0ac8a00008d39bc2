package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvector "github.com/pgvector/pgvector-go/pgx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/actuallystonmai/recipe-recommendation-service/internal/cache"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/config"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/corpus"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/dataset"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/engine"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/handler"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/logging"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/metrics"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/repository"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/router"
	"github.com/actuallystonmai/recipe-recommendation-service/internal/service"
	"github.com/actuallystonmai/recipe-recommendation-service/migrations"
	"github.com/actuallystonmai/recipe-recommendation-service/seeds"
)

const (
	cmdSeed        = "seed"
	cmdMigrateDown = "migrate-down"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if err := checkCommand(cmd, cfg.CorpusSource); err != nil {
		logger.Fatal().Err(err).Msg("invalid command")
	}

	// ------------ Redis (optional) ---------------
	var recCache *cache.Cache
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to parse redis url")
		}
		client := redis.NewClient(opt)
		defer client.Close()

		recCache = cache.NewCache(client, cfg.CacheTTL)
		if err := recCache.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, requests will not be cached")
		} else {
			logger.Info().Msg("connected to Redis")
		}
	}

	// ------------ Corpus ---------------
	store := corpus.NewStore()
	var src corpus.Source

	switch cfg.CorpusSource {
	case config.SourceCSV:
		src = dataset.NewFileSource(cfg.DatasetPath)
	case config.SourcePostgres:
		pool, err := connectPostgres(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		if err := waitForDB(ctx, pool, logger); err != nil {
			logger.Fatal().Err(err).Msg("database not ready")
		}
		logger.Info().Msg("connected to PostgreSQL")
		repo := repository.NewRepository(pool)

		if cmd == cmdMigrateDown {
			if err := migrate(ctx, pool, migrations.Down, logger); err != nil {
				logger.Fatal().Err(err).Msg("failed to migrate down")
			}
			return
		}
		if err := migrate(ctx, pool, migrations.Up, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to migrate up")
		}

		seeded, err := checkSeed(ctx, repo, cfg.DatasetPath, cmd == cmdSeed, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to check seed")
		}
		if seeded && recCache != nil {
			if err := recCache.Clear(ctx); err != nil {
				logger.Warn().Err(err).Msg("failed to clear recommendation cache")
			}
		}
		src = repo
	}

	go func() {
		start := time.Now()
		if err := store.Load(ctx, src); err != nil {
			logger.Error().Err(err).Str("source", cfg.CorpusSource).Msg("corpus load failed")
			return
		}
		metrics.CorpusSize.Set(float64(store.Len()))
		logger.Info().
			Int("recipes", store.Len()).
			Bool("vector_enabled", store.Vectorizer() != nil).
			Dur("took", time.Since(start)).
			Msg("corpus loaded")
	}()

	// ---------------- Server --------------------
	eng := engine.New(engine.Config{Limit: cfg.ResultLimit, MinScore: cfg.MinScore}, logger)
	svc := service.NewService(store, eng, recCache, logger)
	h := handler.NewHandler(svc, logger)

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.Setup(h, router.Options{
			AllowedOrigins: cfg.AllowedOrigins(),
			Timeout:        cfg.RequestTimeout,
			RateLimit:      cfg.RateLimit,
			Logger:         logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func connectPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize) //nolint:gosec // validated positive
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}
	return pgxpool.NewWithConfig(ctx, poolConfig)
}

//nolint:gocritic // zerolog.Logger is passed by value
func waitForDB(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		logger.Info().Msgf("waiting for database... (%d/30)", i+1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return fmt.Errorf("database connection timeout after 30s")
}

// migrate runs one embedded schema script as a single simple-protocol batch.
//
//nolint:gocritic // zerolog.Logger is passed by value
func migrate(ctx context.Context, pool *pgxpool.Pool, script string, logger zerolog.Logger) error {
	sql, err := migrations.Read(script)
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("apply %s: %w", script, err)
	}
	logger.Info().Str("script", script).Msg("migration applied")
	return nil
}

// checkSeed loads the dataset into an empty database, or always when force
// is set. It reports whether the corpus was rewritten.
//
//nolint:gocritic // zerolog.Logger is passed by value
func checkSeed(ctx context.Context, repo *repository.Repository, path string, force bool, logger zerolog.Logger) (bool, error) {
	count, err := repo.CountRecipes(ctx)
	if err != nil {
		return false, fmt.Errorf("check recipes count: %w", err)
	}
	if count > 0 && !force {
		logger.Info().Int("recipes", count).Msg("database already seeded, skipping")
		return false, nil
	}
	if _, err := os.Stat(path); err != nil {
		if count == 0 && !force {
			logger.Warn().Str("path", path).Msg("dataset not found, starting with an empty corpus")
			return false, nil
		}
		return false, fmt.Errorf("dataset %s: %w", path, err)
	}
	return true, seeds.Setup(ctx, repo, path, logger)
}

// checkCommand rejects unknown commands and database commands outside the
// postgres corpus source, where they would otherwise be ignored.
func checkCommand(cmd, source string) error {
	switch cmd {
	case "":
		return nil
	case cmdSeed, cmdMigrateDown:
		if source != config.SourcePostgres {
			return fmt.Errorf("command %q needs corpus_source %q, got %q", cmd, config.SourcePostgres, source)
		}
		return nil
	}
	return fmt.Errorf("unknown command %q, want %q or %q", cmd, cmdSeed, cmdMigrateDown)
}
