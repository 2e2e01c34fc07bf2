package app

import (
	"fmt"
	"net/http"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"society-ledger/internal/config"
	"society-ledger/internal/db"
	"society-ledger/internal/domain/comms"
	"society-ledger/internal/domain/finance"
	"society-ledger/internal/domain/membership"
	"society-ledger/internal/domain/report"
	"society-ledger/internal/domain/session"
	"society-ledger/internal/domain/society"
	"society-ledger/internal/repository/memory"
	pgstore "society-ledger/internal/repository/postgres"
	"society-ledger/internal/repository/redisstore"
	"society-ledger/internal/transport/httpserver"
	"society-ledger/internal/transport/httpserver/handler"
	"society-ledger/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	redis      *redis.Client
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg}

	store, err := a.buildStore(cfg, log)
	if err != nil {
		return nil, err
	}

	sessions, err := a.buildSessions(cfg, log)
	if err != nil {
		return nil, err
	}

	membershipSvc := membership.NewService(store, sessions)
	financeSvc := finance.NewService(store)
	commsSvc := comms.NewService(store)
	reportSvc := report.NewService(store)

	handlers := handler.New(membershipSvc, financeSvc, commsSvc, reportSvc, log)
	router := httpserver.NewRouter(handlers, sessions, log)
	a.httpServer = httpserver.New(cfg, router)

	return a, nil
}

func (a *App) buildStore(cfg config.Config, log logger.Logger) (society.Store, error) {
	switch cfg.Store {
	case config.StorePostgres:
		dbConn, err := db.NewPostgres(cfg.DB, log)
		if err != nil {
			return nil, err
		}
		if err := pgstore.Migrate(dbConn); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		a.db = dbConn
		return pgstore.NewStore(dbConn), nil
	default:
		log.Info("store: using in-memory backend")
		return memory.NewStore(), nil
	}
}

func (a *App) buildSessions(cfg config.Config, log logger.Logger) (session.Store, error) {
	switch cfg.Sessions.Backend {
	case config.SessionsRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.redis = client
		log.Info("sessions: using redis backend", "addr", cfg.Redis.Addr)
		return redisstore.NewSessionStore(client, cfg.Sessions.TTL), nil
	default:
		log.Info("sessions: using in-memory backend")
		return memory.NewSessionStore(), nil
	}
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			return err
		}
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
