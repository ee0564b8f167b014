package main

import (
	"context"
	"log"
	"net/http"

	"github.com/arrivaldo/code-challenge-backend/config"
	"github.com/arrivaldo/code-challenge-backend/db"
	dbmongo "github.com/arrivaldo/code-challenge-backend/db/mongo"
	dbpostgres "github.com/arrivaldo/code-challenge-backend/db/postgres"
	"github.com/arrivaldo/code-challenge-backend/handlers"
	"github.com/arrivaldo/code-challenge-backend/repository"
	"github.com/arrivaldo/code-challenge-backend/routes"
	"github.com/arrivaldo/code-challenge-backend/service"
	"github.com/arrivaldo/code-challenge-backend/utils"
)

func main() {
	// Load config from .env or system environment
	cfg := config.LoadConfig()

	var store repository.RecordStore
	var conn db.DB

	switch db.StoreType(cfg.StoreType) {
	case db.File:
		store = repository.NewFileRecordStore(cfg.DataFile)

	case db.Postgres:
		db.RunMigrations(cfg.PostgresURL)

		pg := dbpostgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			panic(err)
		}
		conn = pg
		store = repository.NewPostgresRecordStore(pg.Conn)

	case db.Mongo:
		mg := dbmongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			panic(err)
		}
		conn = mg
		store = repository.NewMongoRecordStore(mg.Client, cfg.MongoDBName)

	default:
		panic("STORE_TYPE not supported")
	}
	if conn != nil {
		defer conn.Disconnect()
	}

	// Blob storage is optional; uploads and picture cleanup are disabled
	// without it.
	var blobDeleter service.BlobDeleter
	var blobUploader handlers.BlobUploader
	if cfg.R2Bucket != "" {
		blobs, err := utils.NewR2Storage(context.Background(), cfg)
		if err != nil {
			log.Fatalf("could not initialize media storage: %v", err)
		}
		blobDeleter = blobs
		blobUploader = blobs
	} else {
		log.Println("R2 not configured, uploads disabled")
	}

	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	accounts := service.NewAccountService(store, hasher, blobDeleter, utils.UUIDGenerator{})

	// Handlers
	userHandler := &handlers.UserHandler{Service: accounts}
	adminHandler := &handlers.AdminHandler{Service: accounts}
	uploadHandler := &handlers.UploadHandler{Blobs: blobUploader}

	// Access-control hook for the admin routes; no credential check is
	// wired here yet.
	adminGate := func(next http.Handler) http.Handler { return next }

	mux := http.NewServeMux()
	routes.SetupRoutes(mux, userHandler, adminHandler, uploadHandler, adminGate)

	log.Printf("Server running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		panic(err)
	}
}
