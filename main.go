package main

import (
	"context"
	"log"
	"os"
	"time"

	"Recluta/config"
	pgconfig "Recluta/config/postgres"
	recruit_constants "Recluta/constants/recruit"
	"Recluta/middleware"
	"Recluta/routes"
	"Recluta/services/platform"
	redis_service "Recluta/services/redis"
	"Recluta/services/roster"
	"Recluta/services/wizard"
	"Recluta/services/worker"
	"Recluta/sync"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := pgconfig.ConnectGORM()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	log.Println("GORM Connected")

	if os.Getenv("MIGRATE_POSTGRES") == "true" {
		log.Println("Migrating PostgreSQL database...")
		if err := pgconfig.MigrateDatabase(gormDB); err != nil {
			log.Printf("Warning: Database migration failed: %v", err)
		} else {
			log.Println("Database migrated successfully")
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}
	defer sqlDB.Close()

	redisClient, err := config.Connect_redis()
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redis_service.CloseRedis(redisClient)

	// Core wiring: stores -> engine -> coordinator.
	background := worker.New(recruit_constants.WorkerQueueSize, recruit_constants.WorkerCount)
	defer background.Shutdown()

	messenger := platform.LogMessenger{}
	syncManager := sync.NewSyncManager(gormDB)
	engine := roster.NewEngine(redisClient, background, messenger, syncManager)

	sessionTTL := recruit_constants.SessionTTLSeconds * time.Second
	sessions := wizard.NewSessionStore(sessionTTL)
	prompts := wizard.NewPromptStore(sessionTTL)
	coordinator := wizard.NewCoordinator(sessions, prompts, engine)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	wizard.StartSweeper(sweepCtx, recruit_constants.SessionSweepSeconds*time.Second, sessions, prompts)

	r := gin.New()
	middleware.SetUpMiddleware(r)
	routes.SetupRoutes(r, redisClient, engine, coordinator, background, messenger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
