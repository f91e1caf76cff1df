package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vendorisk/assessment-server/config"
	"github.com/vendorisk/assessment-server/routes"
	"github.com/vendorisk/assessment-server/store"
	"github.com/vendorisk/assessment-server/templates"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg := config.Load()

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		slog.Error("database startup failed", "error", err)
		os.Exit(1)
	}
	slog.Info("database ready")

	if err := store.New(db).SeedDefaultTemplates(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}

	r := gin.Default()
	if err := r.SetTrustedProxies(nil); err != nil {
		slog.Error("trusted proxies", "error", err)
		os.Exit(1)
	}

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.SetHTMLTemplate(templates.Load())
	routes.SetupRoutes(r, db, cfg)

	slog.Info("server listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
