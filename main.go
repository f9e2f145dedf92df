package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/internal/api"
	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/internal/config"
	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/internal/database"
	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/internal/migrations"
	"github.com/IsuruPrabhathGenx/PharmacyMS-sub001/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	seed.LoadItems(db, cfg.CatalogPath)

	handler := api.New(db, cfg.Secret)

	log.Printf("pharmacy server starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
