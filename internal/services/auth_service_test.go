package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/repos"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/services"
)

func TestAuthRoundTrip(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	auth := services.NewAuthService(repos.NewAdminRepo(db), "test-secret")

	created, err := auth.EnsureAdmin(ctx, "owner", "Str0ngPass")
	require.NoError(t, err)
	require.True(t, created)
	created, err = auth.EnsureAdmin(ctx, "owner", "Other0Pass")
	require.NoError(t, err)
	require.False(t, created)

	_, _, err = auth.Login(ctx, "owner", "Other0Pass")
	require.ErrorIs(t, err, services.ErrBadCreds)
	_, _, err = auth.Login(ctx, "nobody", "Str0ngPass")
	require.ErrorIs(t, err, services.ErrBadCreds)

	tok, a, err := auth.Login(ctx, "OWNER", "Str0ngPass")
	require.NoError(t, err)
	require.Equal(t, "owner", a.Username)

	cur, err := auth.CurrentAdmin(ctx, tok)
	require.NoError(t, err)
	require.Equal(t, a.ID, cur.ID)

	other := services.NewAuthService(repos.NewAdminRepo(db), "another-secret")
	_, err = other.CurrentAdmin(ctx, tok)
	require.ErrorIs(t, err, services.ErrInvalidToken)
	_, err = auth.CurrentAdmin(ctx, "garbage")
	require.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestAuthNonPositiveTTLUsesDefault(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	auth := services.NewAuthService(repos.NewAdminRepo(db), "test-secret")
	a, err := auth.CreateAdmin(ctx, "clerk", "Str0ngPass")
	require.NoError(t, err)

	auth.TTL = -time.Minute
	tok, err := auth.Issue(a)
	require.NoError(t, err)
	_, err = auth.CurrentAdmin(ctx, tok)
	require.NoError(t, err)
}

func TestCreateAdminRules(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	auth := services.NewAuthService(repos.NewAdminRepo(db), "test-secret")
	var verr *services.ValidationError

	_, err := auth.CreateAdmin(ctx, "x", "Str0ngPass")
	require.ErrorAs(t, err, &verr)
	_, err = auth.CreateAdmin(ctx, "clerk", "weakpass")
	require.ErrorAs(t, err, &verr)

	first, err := auth.CreateAdmin(ctx, "clerk", "Str0ngPass")
	require.NoError(t, err)
	again, err := auth.CreateAdmin(ctx, "clerk", "N3wPassword")
	require.NoError(t, err)
	require.Equal(t, first.ID, again.ID)

	_, _, err = auth.Login(ctx, "clerk", "N3wPassword")
	require.NoError(t, err)
}
