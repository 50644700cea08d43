package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/senyabanana/etender-service/internal/db"
	"github.com/senyabanana/etender-service/internal/handlers"
	"github.com/senyabanana/etender-service/internal/repository"
	"github.com/senyabanana/etender-service/internal/router"
	"github.com/senyabanana/etender-service/internal/router/config"
	"github.com/senyabanana/etender-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	logger := log.New(os.Stdout, "INFO: ", log.LstdFlags)

	tenderRepo := repository.NewPostgresTenderRepository(dbPool)
	bidRepo := repository.NewPostgresBidRepository(dbPool)

	tenderService := services.NewTenderService(tenderRepo, dbPool)
	bidService := services.NewBidService(bidRepo, tenderRepo, dbPool)
	awardService := services.NewAwardService(tenderRepo, bidRepo)
	notificationService := services.NewNotificationService(tenderRepo, bidRepo)

	tenderHandler := handlers.NewTenderHandler(tenderService, awardService, logger, 5*time.Second)
	bidHandler := handlers.NewBidHandler(bidService, logger, 5*time.Second)
	notificationHandler := handlers.NewNotificationHandler(notificationService, logger, 5*time.Second)

	routes := router.InitRoutes(tenderHandler, bidHandler, notificationHandler)

	log.Printf("server is listening on %s...", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
