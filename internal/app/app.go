// Package app wires configuration into the stores, services and HTTP
// engine shared by the binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/khaoulaLakhdim/orders-management/internal/core/auth"
	"github.com/khaoulaLakhdim/orders-management/internal/core/cache"
	"github.com/khaoulaLakhdim/orders-management/internal/core/config"
	"github.com/khaoulaLakhdim/orders-management/internal/core/database"
	"github.com/khaoulaLakhdim/orders-management/internal/core/logger"
	"github.com/khaoulaLakhdim/orders-management/internal/repo"
	"github.com/khaoulaLakhdim/orders-management/internal/seed"
	"github.com/khaoulaLakhdim/orders-management/internal/service"
	"github.com/khaoulaLakhdim/orders-management/internal/transport/http/router"
)

func OpenDB(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		Logger:             logger.Gorm(l, cfg.DB.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DB.Driver, err)
	}
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}
	return db, nil
}

type Repos struct {
	Users   *repo.UserRepo
	Clients *repo.ClientRepo
	Orders  *repo.OrderRepo
}

func NewRepos(db *gorm.DB) Repos {
	return Repos{Users: repo.NewUserRepo(db), Clients: repo.NewClientRepo(db), Orders: repo.NewOrderRepo(db)}
}

func NewSeeder(cfg *config.Config, r Repos, l *zap.Logger) *seed.Seeder {
	return seed.New(r.Users, r.Clients, r.Orders, seed.Options{
		TargetOrders: cfg.Seed.TargetOrders,
		Password:     cfg.Seed.DefaultPassword,
	}, l)
}

// App is the assembled API service.
type App struct {
	DB     *gorm.DB
	Redis  *redis.Client // nil without redis.addr
	Seeder *seed.Seeder
	Engine *gin.Engine
}

func New(cfg *config.Config, l *zap.Logger) (*App, error) {
	db, err := OpenDB(cfg, l)
	if err != nil {
		return nil, err
	}
	a := &App{DB: db}

	var (
		clientCache *cache.Cache
		deny        auth.Denylist = auth.NopDenylist{}
	)
	if cfg.Redis.Enabled() {
		a.Redis = cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := a.Redis.Ping(ctx).Err()
		cancel()
		if err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		clientCache = cache.New(a.Redis, "orders:", time.Duration(cfg.Redis.CacheTTLSec)*time.Second)
		deny = auth.NewRedisDenylist(a.Redis)
		l.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	}

	r := NewRepos(db)
	a.Seeder = NewSeeder(cfg, r, l)
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	a.Engine = router.NewAPIEngine(router.Deps{
		HTTP:    cfg.App.HTTP,
		Log:     l,
		Clients: service.NewClientService(r.Clients, clientCache, l),
		Orders:  service.NewOrderService(r.Orders, l),
		Auth:    service.NewAuthService(r.Users, jwter, deny, l),
		Seeder:  a.Seeder,
		Ping:    func(ctx context.Context) error { return database.Ping(ctx, db) },
	})
	return a, nil
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	_ = database.Close(a.DB)
}
