package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/saalim-km/inventory-mgmt/internal/api"
	"github.com/saalim-km/inventory-mgmt/internal/config"
	"github.com/saalim-km/inventory-mgmt/internal/database"
	"github.com/saalim-km/inventory-mgmt/internal/migrations"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	if dir := filepath.Dir(cfg.DatabaseDSN); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("create data dir: %v", err)
		}
	}

	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)

	handler := api.New(db, cfg)

	log.Printf("inventory server starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
