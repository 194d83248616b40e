package main

import (
	"log"
	"net/http"
	"time"

	"blog/config"
	"blog/database"
	"blog/handlers"
)

func main() {
	cfg := config.Load()
	handlers.Init(cfg)

	if err := database.InitDB(cfg.DBPath); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer database.DB.Close()

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           handlers.NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	log.Printf("blog listening on %s", cfg.AppPort)
	log.Fatal(srv.ListenAndServe())
}
