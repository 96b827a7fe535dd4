package config

import (
	"errors"
	"log"
	"os"
)

const devSecret = "jnr-dev-secret-change-me"

type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	AuthSecret  string
	LogFile     string
	CSVDir      string

	AdminUsername string
	AdminPassword string

	MailgunDomain  string
	MailgunAPIKey  string
	MailgunSender  string
	QuoteRecipient string

	ImageLookup bool
}

func Load() (Config, error) {
	cfg := Config{
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AuthSecret:     os.Getenv("NEXTAUTH_SECRET"),
		LogFile:        os.Getenv("LOG_FILE"),
		CSVDir:         getEnv("CSV_DIR", "./data"),
		AdminUsername:  os.Getenv("ADMIN_USERNAME"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		MailgunDomain:  os.Getenv("MAILGUN_DOMAIN"),
		MailgunAPIKey:  os.Getenv("MAILGUN_API_KEY"),
		MailgunSender:  getEnv("MAILGUN_SENDER", "J&R Games <no-reply@jnrgames.com>"),
		QuoteRecipient: os.Getenv("QUOTE_RECIPIENT"),
	}
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is not set")
	}
	if cfg.AuthSecret == "" {
		if cfg.IsProduction() {
			return cfg, errors.New("NEXTAUTH_SECRET is required in production")
		}
		cfg.AuthSecret = devSecret
	}
	cfg.ImageLookup = os.Getenv("RAWG_API_KEY") != "" ||
		(os.Getenv("TWITCH_CLIENT_ID") != "" && os.Getenv("TWITCH_CLIENT_SECRET") != "")

	log.Printf("[config] APP_ENV=%s PORT=%s CSV_DIR=%s LOG_FILE=%s mail=%t image_lookup=%t",
		cfg.Env, cfg.Port, cfg.CSVDir, cfg.LogFile, cfg.MailEnabled(), cfg.ImageLookup)
	return cfg, nil
}

func (c Config) IsProduction() bool { return c.Env == "production" }

// MailEnabled reports whether quote requests are forwarded by mail.
func (c Config) MailEnabled() bool {
	return c.MailgunDomain != "" && c.MailgunAPIKey != "" && c.QuoteRecipient != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
