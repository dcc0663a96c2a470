package main

import (
	"context"
	"log"

	"breathcoach-be/internal/bootstrap"
	"breathcoach-be/internal/config"
	"breathcoach-be/internal/server"
	"breathcoach-be/internal/tracer"
	"breathcoach-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Phrase Catalog DB (optional)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	} else {
		log.Println("No DB_CONNECTION_STRING set, using compiled-in phrase banks")
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Warmup Service...")
		if err := container.WarmupService.Consume(context.Background()); err != nil {
			log.Printf("Background Warmup Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
