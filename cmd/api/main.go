package main

import (
	"context"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/khaoulaLakhdim/orders-management/internal/app"
	"github.com/khaoulaLakhdim/orders-management/internal/core/config"
	"github.com/khaoulaLakhdim/orders-management/internal/core/logger"
	"github.com/khaoulaLakhdim/orders-management/internal/core/server"
)

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad("")
	log, cleanup := logger.New(logger.FromConfig(cfg.Log))
	defer cleanup()
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer a.Close()
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.Seed.OnStartup {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		res, err := a.Seeder.Run(ctx)
		cancel()
		if err != nil {
			log.Fatal("seeding failed", zap.Error(err))
		}
		log.Info("seeding done", zap.Int("users", res.Users), zap.Int("clients", res.Clients), zap.Int("orders", res.Orders))
	}

	h := cfg.App.HTTP
	srv := server.BuildServer(
		server.Addr(h.Host, h.Port), a.Engine,
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
	)
	base := server.HumanURL(h.Host, h.Port)
	log.Info("orders api starting",
		zap.String("addr", srv.Addr),
		zap.String("health", base+"/health"),
		zap.String("api", base+h.Prefix),
	)
	if err := server.Run(srv, log, 10*time.Second); err != nil {
		log.Error("orders api stopped with error", zap.Error(err))
		return
	}
	log.Info("orders api stopped gracefully")
}
