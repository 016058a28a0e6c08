package main

import (
	"errors"
	"flag"
	"os"
	_ "time/tzdata"

	"datasync/internal/config"
	"datasync/internal/handler"
	"datasync/internal/logger"
	"datasync/internal/middleware"
	"datasync/internal/model"
	"datasync/internal/service"
	"datasync/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)
	if cfg.Auth.JWTSecret == "" {
		logger.Error("jwt secret not configured")
		os.Exit(1)
	}

	db, err := cfg.OpenGormDB(logger.Gorm(cfg.Log))
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(model.Entities()...); err != nil {
			logger.Error("db migrate failed", "err", err)
			os.Exit(1)
		}
	}

	users := store.NewUserStore(db)
	plans := store.NewPlanStore(db)
	statsSvc := service.NewStatsService(plans, store.NewSnapshotStore(db), store.NewDailyStatusStore(db),
		store.NewEventStore(db), users, cfg.Stats.Timezone)

	catalogSync, err := service.NewCatalogSync(cfg)
	switch {
	case err == nil:
		statsSvc.SetExporter(catalogSync)
		logger.Info("catalog sync enabled", "table", cfg.MOI.DailyStatusTableID)
	case errors.Is(err, service.ErrMissingCredential):
		logger.Info("catalog sync disabled", "reason", err)
	default:
		logger.Warn("catalog sync init failed", "err", err)
	}

	secret := []byte(cfg.Auth.JWTSecret)
	ttl := cfg.TokenTTL()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-New-Token"},
		AllowCredentials: true,
	}))

	handler.Register(r, middleware.JWTAuth(secret, ttl), handler.Handlers{
		Auth:  handler.NewAuthHandler(service.NewAuthService(users), secret, ttl),
		User:  handler.NewUserHandler(service.NewUserService(users)),
		Plan:  handler.NewPlanHandler(service.NewPlanService(plans, users, cfg.Stats.Timezone)),
		Stats: handler.NewStatsHandler(statsSvc),
	})

	logger.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Error("server failed", "err", err)
	}
}
