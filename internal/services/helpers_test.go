package services_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fixture creates a console under a type and returns ids for the named
// seeded category and the console.
func fixture(t *testing.T, db *sqlx.DB, category, consoleType, console string) (int64, int64) {
	t.Helper()
	ctx := context.Background()
	cons := repos.NewConsoleRepo(db)
	typ, err := cons.FindOrCreateType(ctx, consoleType)
	require.NoError(t, err)
	co, err := cons.FindOrCreateConsole(ctx, console, typ.ID)
	require.NoError(t, err)
	cat, err := repos.NewCategoryRepo(db).FindOrCreate(ctx, category)
	require.NoError(t, err)
	return cat.ID, co.ID
}

func addItem(t *testing.T, db *sqlx.DB, it domain.Item) domain.Item {
	t.Helper()
	require.NoError(t, repos.NewItemRepo(db).Create(context.Background(), &it))
	return it
}

func ptr(v float64) *float64 { return &v }
