package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/repos"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/services"
)

func TestDeleteDuplicateGames(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	gamesID, dsID := fixture(t, db, domain.CategoryGames, domain.ConsoleTypeNintendo, "Nintendo DS")
	_, gbaID := fixture(t, db, domain.CategoryGames, domain.ConsoleTypeNintendo, "Game Boy Advance")

	full := addItem(t, db, domain.Item{Name: "Pokemon Diamond", Price: 30, GoodPrice: ptr(20), AcceptablePrice: ptr(10), CategoryID: gamesID, ConsoleID: dsID})
	thin := addItem(t, db, domain.Item{Name: "pokemon diamond ", Price: 25, CategoryID: gamesID, ConsoleID: dsID})
	// same name on another console is not a duplicate
	addItem(t, db, domain.Item{Name: "Pokemon Diamond", Price: 5, CategoryID: gamesID, ConsoleID: gbaID})
	// equally complete duplicates are left alone
	addItem(t, db, domain.Item{Name: "Mario Kart DS", Price: 20, CategoryID: gamesID, ConsoleID: dsID})
	addItem(t, db, domain.Item{Name: "Mario Kart DS", Price: 22, CategoryID: gamesID, ConsoleID: dsID})

	svc := services.NewMaintenanceService(db)
	dry, err := svc.DeleteDuplicateGames(ctx, true)
	require.NoError(t, err)
	require.True(t, dry.DryRun)
	require.Equal(t, 1, dry.Groups)
	require.Zero(t, dry.Deleted)
	require.Len(t, dry.Items, 1)
	require.Equal(t, thin.ID, dry.Items[0].ID)
	require.Equal(t, 1, dry.Items[0].Tiers)

	_, err = repos.NewItemRepo(db).Get(ctx, thin.ID)
	require.NoError(t, err)

	res, err := svc.DeleteDuplicateGames(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 1, res.Deleted)
	_, err = repos.NewItemRepo(db).Get(ctx, thin.ID)
	require.ErrorIs(t, err, repos.ErrNotFound)
	_, err = repos.NewItemRepo(db).Get(ctx, full.ID)
	require.NoError(t, err)

	res, err = svc.DeleteDuplicateGames(ctx, false)
	require.NoError(t, err)
	require.Zero(t, res.Groups)
}

func TestDeleteOtherConsoleGames(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	gamesID, otherID := fixture(t, db, domain.CategoryGames, domain.ConsoleTypeOther, "Other")
	_, wiiID := fixture(t, db, domain.CategoryGames, domain.ConsoleTypeNintendo, "Wii")
	consolesID, _ := fixture(t, db, domain.CategoryConsoles, domain.ConsoleTypeOther, "Other")

	addItem(t, db, domain.Item{Name: "Mystery Game", Price: 3, CategoryID: gamesID, ConsoleID: otherID})
	keep := addItem(t, db, domain.Item{Name: "Wii Play", Price: 4, CategoryID: gamesID, ConsoleID: wiiID})
	hw := addItem(t, db, domain.Item{Name: "Odd Console", Price: 40, CategoryID: consolesID, ConsoleID: otherID})

	res, err := services.NewMaintenanceService(db).DeleteOtherConsoleGames(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, res.Deleted)
	require.Equal(t, "Mystery Game", res.Items[0].Name)

	items := repos.NewItemRepo(db)
	_, err = items.Get(ctx, keep.ID)
	require.NoError(t, err)
	_, err = items.Get(ctx, hw.ID)
	require.NoError(t, err)
}

func TestMigrateHandhelds(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	consolesID, coID := fixture(t, db, domain.CategoryConsoles, domain.ConsoleTypeNintendo, "Nintendo DS")
	_, ps2ID := fixture(t, db, domain.CategoryConsoles, domain.ConsoleTypePlayStation, "PlayStation 2")

	lite := addItem(t, db, domain.Item{
		Name: "Nintendo DS Lite - Cobalt", Price: 80, CompleteConsolePrice: ptr(80), ConsoleOnlyPrice: ptr(50),
		CategoryID: consolesID, ConsoleID: coID,
	})
	addItem(t, db, domain.Item{Name: "PlayStation 2 Slim", Price: 60, CompleteConsolePrice: ptr(60), CategoryID: consolesID, ConsoleID: ps2ID})

	res, err := services.NewMaintenanceService(db).MigrateHandhelds(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, res.Moved)
	require.Equal(t, "Nintendo DS Lite", res.Items[0].Console)

	got, err := repos.NewItemRepo(db).Get(ctx, lite.ID)
	require.NoError(t, err)
	require.Equal(t, domain.CategoryHandhelds, got.CategoryName)
	require.Equal(t, domain.ConsoleTypeOther, got.ConsoleTypeName)
	require.Equal(t, 80.0, got.Price)
	require.Equal(t, 80.0, *got.GoodPrice)
	require.Equal(t, 50.0, *got.AcceptablePrice)
	require.Nil(t, got.CompleteConsolePrice)
	require.Equal(t, lite.CreatedAt, got.CreatedAt)

	res, err = services.NewMaintenanceService(db).MigrateHandhelds(ctx)
	require.NoError(t, err)
	require.Zero(t, res.Moved)
}

func TestAddGames(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	svc := services.NewMaintenanceService(db)

	res, err := svc.AddGames(ctx, []services.NewGame{
		{Name: "Banjo-Kazooie", Console: "Nintendo 64", CompleteInBox: ptr(70), DiscOnly: ptr(25)},
		{Name: "Banjo-Kazooie", Console: "Nintendo 64", CompleteInBox: ptr(75)},
		{Name: "", Console: "Nintendo 64", CompleteInBox: ptr(5)},
		{Name: "Priceless", Console: "Xbox", ConsoleType: "Xbox"},
		{Name: "Halo 2", Console: "Xbox", ConsoleType: "Xbox", BoxAndGame: ptr(8)},
	})
	require.NoError(t, err)
	require.Equal(t, 2, res.Added)
	require.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 2)

	games, err := repos.NewItemRepo(db).ListByCategoryName(ctx, domain.CategoryGames)
	require.NoError(t, err)
	require.Len(t, games, 2)
	require.Equal(t, "Banjo-Kazooie", games[0].Name)
	require.Equal(t, 70.0, games[0].Price)
	require.Equal(t, 25.0, *games[0].AcceptablePrice)
	require.Equal(t, domain.ConsoleTypeNintendo, games[0].ConsoleTypeName)
	require.Equal(t, 8.0, games[1].Price)
}
