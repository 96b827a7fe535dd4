package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/config"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/http/handlers"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/mail"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/repos"
	"github.com/MattStellino/JnRGamesWebsite-sub000/web"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("[env] no .env loaded: %v", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	deps := handlers.NewDeps(db, cfg, mail.NewNotifier(cfg))

	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		created, err := deps.Auth.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			log.Fatalf("bootstrap admin: %v", err)
		}
		if created {
			log.Printf("[auth] created admin %q", cfg.AdminUsername)
		}
	}

	app := handlers.NewApp(deps, web.Engine())

	log.Fatal(app.Listen(":" + cfg.Port))
}
