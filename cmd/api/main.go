// @title                      Mavera Back-Office API
// @version                    1.0
// @description                Staff authentication, role-based access and booking quotes for the Mavera venue back office.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mavera/backoffice/internal/api"
	"github.com/mavera/backoffice/internal/core/ports"
	"github.com/mavera/backoffice/internal/core/service"
	"github.com/mavera/backoffice/internal/infrastructure/config"
	"github.com/mavera/backoffice/internal/infrastructure/db/memory"
	mongodb "github.com/mavera/backoffice/internal/infrastructure/db/mongo"
	redisdb "github.com/mavera/backoffice/internal/infrastructure/db/redis"
	"github.com/mavera/backoffice/internal/infrastructure/queue"
	"github.com/mavera/backoffice/internal/infrastructure/seed"
	"github.com/mavera/backoffice/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type backend struct {
	creds    ports.CredentialRepository
	sessions ports.SessionStore
	audit    ports.AuditRepository

	mongoClient *mongo.Client
	mongoDB     *mongo.Database
	redis       *goredis.Client
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "mavera-backoffice",
		Env:     cfg.Env,
	})

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET not set, using an ephemeral secret; sessions will not survive a restart")
	}

	vat, err := decimal.NewFromString(cfg.VATRate)
	if err != nil || vat.IsNegative() {
		log.Fatal().Str("vat_rate", cfg.VATRate).Msg("invalid VAT_RATE")
	}

	b, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Backend).Msg("failed to open storage backend")
	}
	defer b.close()

	if cfg.SeedDemoAccounts {
		n, err := seed.Accounts(ctx, b.creds, seed.DemoAccounts(), 0, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed demo accounts")
		}
		log.Info().Int("created", n).Msg("demo accounts ready")
	}

	auditSvc := service.NewAuditService(b.audit, log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditSvc, log)
	dispatcher.Start(ctx)

	authSvc := service.NewAuthService(b.creds, b.sessions, dispatcher, cfg.JWTSecret, cfg.SessionTTL, log)
	bookingSvc := service.NewBookingService(vat, log)

	e := api.NewRouter(api.Deps{
		Auth:      authSvc,
		Bookings:  bookingSvc,
		Audit:     auditSvc,
		Recorder:  dispatcher,
		JWTSecret: cfg.JWTSecret,
		Mongo:     b.mongoDB,
		Redis:     b.redis,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend).Msg("starting HTTP server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("audit queue did not drain")
	}

	log.Info().Msg("stopped")
}

// openBackend and close run after logger.Init, so they take the process
// logger instead of a parameter.
func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	log := logger.Get()
	if cfg.Backend == config.BackendMemory {
		log.Warn().Msg("memory backend selected; accounts, sessions and audit events are lost on restart")
		return &backend{
			creds:    memory.NewCredentialRepository(),
			sessions: memory.NewSessionStore(),
			audit:    memory.NewAuditRepository(0),
		}, nil
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	b := &backend{mongoClient: client, mongoDB: db}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		b.close()
		return nil, err
	}
	b.redis = rdb

	creds := mongodb.NewCredentialRepository(db)
	audit := mongodb.NewAuditRepository(db)
	if err := creds.EnsureIndexes(ctx); err != nil {
		b.close()
		return nil, err
	}
	if err := audit.EnsureIndexes(ctx); err != nil {
		b.close()
		return nil, err
	}

	b.creds = creds
	b.audit = audit
	b.sessions = redisdb.NewSessionStore(rdb)
	log.Info().Str("mongo_db", cfg.Mongo.Database).Str("redis_addr", cfg.Redis.Addr).Msg("persistent backend connected")
	return b, nil
}

func (b *backend) close() {
	log := logger.Get()
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}
	if err := mongodb.Disconnect(b.mongoClient, shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
}
