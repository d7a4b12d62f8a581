package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"simlm/adapters/postgres"
	"simlm/adapters/stats/ols"
	"simlm/internal/config"
	"simlm/internal/sim"
	"simlm/ports"
	"simlm/ui"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)

	var ledger ports.RunLedger
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		if err := postgres.Migrate(context.Background(), db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		ledger = postgres.NewRunRepository(db)
	}

	srv := ui.NewServer(sim.NewEngine(), ols.NewFitter(), ledger)
	if err := srv.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
