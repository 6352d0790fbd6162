package main

import (
	"log"

	"licentia/internal/config"
	"licentia/internal/infra/db"
	httpinfra "licentia/internal/infra/http"
)

func main() {
	cfg := config.FromEnv()

	store, err := db.NewStore(cfg)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}

	srv := httpinfra.NewServer(cfg, store)
	if key := srv.PublicKeyHex(); key != "" {
		log.Printf("authority public key (embed in consumers): %s", key)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
