package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/blessedbot/blessbackend/config"
	"github.com/blessedbot/blessbackend/database"
	"github.com/blessedbot/blessbackend/handlers"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{filepath.Dir(cfg.DatabasePath), cfg.TempDirectory}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	store := database.NewStore(cfg.DatabasePath, cfg.BusyTimeoutMS)
	if err := store.EnsureSchema(); err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Using temp directory: %s", cfg.TempDirectory)
	log.Printf("Restore mode: %s", cfg.RestoreMode)

	r := handlers.NewRouter(cfg, store)

	serverAddr := ":" + cfg.Port
	fmt.Printf("Server starting on http://localhost:%s\n", cfg.Port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
