package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/auth"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/config"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/database"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/logger"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/router"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/store"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Init(cfg.Database)
	if err != nil {
		zlog.Fatal("init database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatal("migrate database", zap.Error(err))
	}

	if cfg.Seed.DemoUser {
		if err := database.SeedDemoUser(db, cfg.Auth.BcryptCost); err != nil {
			zlog.Fatal("seed demo user", zap.Error(err))
		}
	}
	if cfg.Seed.Accounts {
		if err := database.SeedAccounts(db); err != nil {
			zlog.Fatal("seed accounts", zap.Error(err))
		}
	}

	backends := router.BackendsFromConfig(cfg)

	ctx := context.Background()

	var stores *store.Stores
	if backends.AnyRemote() {
		p, err := database.InitRemote(ctx, cfg.Remote)
		if err != nil {
			zlog.Fatal("init remote database", zap.Error(err))
		}
		defer p.Close()
		stores, err = store.Compose(backends, db, p)
		if err != nil {
			zlog.Fatal("compose stores", zap.Error(err))
		}
	} else {
		stores, err = store.Compose(backends, db, nil)
		if err != nil {
			zlog.Fatal("compose stores", zap.Error(err))
		}
	}

	svc := auth.NewService(stores.Users, stores.Sessions, auth.Policy{
		BcryptCost:             cfg.Auth.BcryptCost,
		SessionTTL:             cfg.Auth.SessionTTL(),
		SingleDevice:           cfg.Auth.SingleDevice,
		RevokeOnPasswordChange: cfg.Auth.RevokeOnPasswordChange,
	})

	// Sweep expired sessions in the background.
	if cfg.Auth.CleanupMinutes > 0 {
		interval := time.Duration(cfg.Auth.CleanupMinutes) * time.Minute
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for range ticker.C {
				n, err := svc.CleanupExpired(context.Background())
				if err != nil {
					zlog.Warn("session cleanup", zap.Error(err))
					continue
				}
				if n > 0 {
					zlog.Info("session cleanup", zap.Int64("removed", n))
				}
			}
		}()
	}

	r := router.Setup(cfg, zlog, db, stores, svc)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	zlog.Info("server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zlog.Fatal("run server", zap.Error(err))
	}
}
