package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/config"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadSecretRequiredInProduction(t *testing.T) {
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("APP_ENV", "production")
	t.Setenv("NEXTAUTH_SECRET", "")
	_, err := config.Load()
	require.Error(t, err)

	t.Setenv("NEXTAUTH_SECRET", "s3cret")
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "s3cret", cfg.AuthSecret)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", ":memory:")
	t.Setenv("APP_ENV", "")
	t.Setenv("NEXTAUTH_SECRET", "")
	t.Setenv("PORT", "")
	t.Setenv("MAILGUN_DOMAIN", "")
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "development", cfg.Env)
	require.NotEmpty(t, cfg.AuthSecret)
	require.False(t, cfg.MailEnabled())
}
