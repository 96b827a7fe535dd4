// Command jnradmin runs catalog batch jobs against DATABASE_URL.
//
//	jnradmin import -file items.csv [-update] [-clear]
//	jnradmin replace [-dir ./data]
//	jnradmin dedupe [-dry-run]
//	jnradmin delete-other-console-games
//	jnradmin migrate-handhelds
//	jnradmin create-admin -username owner -password ...
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/config"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/ingest"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/repos"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/services"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: jnradmin <import|replace|dedupe|delete-other-console-games|migrate-handhelds|create-admin> [flags]")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	db, err := repos.OpenDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]
	var out any
	switch cmd {
	case "import":
		out, err = runImport(ctx, db, args)
	case "replace":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", cfg.CSVDir, "directory holding the three price sheets")
		_ = fs.Parse(args)
		out, err = ingest.NewReplacer(db).ReplaceDir(ctx, *dir)
	case "dedupe":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dry := fs.Bool("dry-run", false, "only report what would be deleted")
		_ = fs.Parse(args)
		out, err = services.NewMaintenanceService(db).DeleteDuplicateGames(ctx, *dry)
	case "delete-other-console-games":
		out, err = services.NewMaintenanceService(db).DeleteOtherConsoleGames(ctx)
	case "migrate-handhelds":
		out, err = services.NewMaintenanceService(db).MigrateHandhelds(ctx)
	case "create-admin":
		out, err = runCreateAdmin(ctx, db, cfg, args)
	default:
		usage()
	}
	if err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

func runImport(ctx context.Context, db *sqlx.DB, args []string) (any, error) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "CSV file to import")
	update := fs.Bool("update", false, "update existing items instead of skipping them")
	wipe := fs.Bool("clear", false, "delete all items before importing")
	_ = fs.Parse(args)
	if *file == "" {
		return nil, fmt.Errorf("-file is required")
	}
	f, err := os.Open(*file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.NewImporter(db).Import(ctx, f, ingest.ImportOptions{UpdateExisting: *update, ClearExisting: *wipe})
}

func runCreateAdmin(ctx context.Context, db *sqlx.DB, cfg config.Config, args []string) (any, error) {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
	username := fs.String("username", "", "admin username")
	password := fs.String("password", "", "admin password")
	_ = fs.Parse(args)
	a, err := services.NewAuthService(repos.NewAdminRepo(db), cfg.AuthSecret).CreateAdmin(ctx, *username, *password)
	if err != nil {
		return nil, err
	}
	return map[string]any{"id": a.ID, "username": a.Username}, nil
}
