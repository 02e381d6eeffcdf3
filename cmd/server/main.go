// Package main is the entry point for the casino wagering engine.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"casino-engine/internal/config"
	"casino-engine/internal/game"
	"casino-engine/internal/game/cups"
	"casino-engine/internal/game/slot"
	"casino-engine/internal/game/wheel"
	"casino-engine/internal/handler"
	"casino-engine/internal/model"
	"casino-engine/internal/pkg/db"
	"casino-engine/internal/pkg/lock"
	"casino-engine/internal/pkg/metrics"
	"casino-engine/internal/recovery"
	"casino-engine/internal/repository"
	"casino-engine/internal/server"
	"casino-engine/internal/service"
)

// promoSeeder is implemented by both promo catalogs.
type promoSeeder interface {
	service.PromoCatalog
	Upsert(ctx context.Context, p *model.PromoCode) error
}

func main() {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(&cfg.Log)
	log.Info().
		Str("storage", cfg.Storage.Driver).
		Str("promo_guard", cfg.Promo.Guard).
		Str("win_law", cfg.Game.WinLaw).
		Msg("Configuration loaded successfully")

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	health := map[string]server.HealthCheck{}

	// Initialize storage
	var (
		accounts     service.AccountStore
		transactions service.TransactionLog
		catalog      promoSeeder
		guard        service.RedemptionGuard
	)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		dbPool, err := db.NewPool(ctx, &cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer dbPool.Close()

		if err := db.Migrate(ctx, dbPool.Pool); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}

		accounts = repository.NewAccountRepository(dbPool.Pool)
		transactions = repository.NewTransactionRepository(dbPool.Pool)
		promoRepo := repository.NewPromoRepository(dbPool.Pool)
		catalog = promoRepo
		if cfg.Promo.Guard == config.GuardPostgres {
			guard = promoRepo
		}
		health["postgres"] = dbPool.HealthCheck
	default:
		log.Warn().Msg("Using in-memory storage; balances are lost on restart")
		accounts = repository.NewMemoryAccountStore()
		transactions = repository.NewMemoryTransactionLog()
		catalog = repository.NewMemoryPromoCatalog()
	}

	switch cfg.Promo.Guard {
	case config.GuardRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
		}
		guard = repository.NewRedisRedemptionGuard(client, "promo")
		health["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	case config.GuardMemory:
		guard = repository.NewMemoryRedemptionGuard()
	}

	for _, seed := range cfg.Promo.Codes {
		p := &model.PromoCode{Code: seed.Code, Reward: seed.Reward, UsesLeft: seed.Uses, Active: seed.Active}
		if err := catalog.Upsert(ctx, p); err != nil {
			log.Fatal().Err(err).Str("code", seed.Code).Msg("Failed to seed promo code")
		}
	}

	// Open the recovery journal outside the primary database
	journal, err := recovery.OpenSQLite(cfg.Recovery.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Recovery.Path).Msg("Failed to open recovery journal")
	}
	defer journal.Close()

	// Initialize game registry and outcome engine
	registry, err := game.NewRegistry(slot.New(), wheel.New(), cups.New())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to register games")
	}
	law, err := game.ParseWinLaw(cfg.Game.WinLaw)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid win law")
	}
	engine := game.NewEngine(registry, law, game.DefaultSource(), cfg.Game.MaxBet)

	log.Info().
		Int("game_count", registry.Count()).
		Str("win_law", law.Name()).
		Int64("max_bet", cfg.Game.MaxBet).
		Msg("Games registered")

	// Initialize services
	deps := service.Deps{
		Accounts:     accounts,
		Transactions: transactions,
		Journal:      journal,
		Locks:        lock.NewAccountLock(),
		Retry: service.RetryPolicy{
			MaxRetries:      cfg.Settle.MaxRetries,
			InitialInterval: cfg.Settle.InitialInterval,
			MaxInterval:     cfg.Settle.MaxInterval,
		},
		Metrics:     m,
		LockTimeout: cfg.Settle.LockTimeout,
	}

	coordinator := service.NewCoordinator(deps, engine)
	accountService := service.NewAccountService(deps, service.AccountOptions{
		DefaultLuck:  cfg.Accounts.DefaultLuck,
		WelcomeBonus: cfg.Accounts.WelcomeBonus,
	})
	promoService := service.NewPromoService(deps, catalog, guard)
	recoveryService := service.NewRecoveryService(deps)

	// Settle anything left owed by a previous run before taking traffic
	if n, err := recoveryService.Replay(ctx); err != nil {
		log.Error().Err(err).Int("resolved", n).Msg("Startup recovery replay incomplete")
	}
	go recoveryService.Run(ctx, cfg.Recovery.ReplayInterval)

	srv := server.New(server.Handlers{
		Account: handler.NewAccountHandler(accountService),
		Wager:   handler.NewWagerHandler(coordinator),
		Promo:   handler.NewPromoHandler(promoService),
	}, server.Options{
		AdminToken:   cfg.Admin.Token,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Metrics:      m,
		Health:       health,
	})

	go func() {
		log.Info().Str("addr", cfg.Server.Addr()).Msg("HTTP server is starting...")
		if err := srv.Listen(cfg.Server.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info().Msg("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down HTTP server")
	}
	log.Info().Msg("Server stopped gracefully")
}

func setupLogger(cfg *config.LogConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
