package repos

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gosimple/slug"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

// TimeLayout is fixed width so stored timestamps sort lexically.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

func Now() string { return time.Now().UTC().Format(TimeLayout) }

// OpenDB opens the pool named by a DATABASE_URL. postgres:// URLs use pgx,
// everything else is treated as a SQLite path or DSN.
func OpenDB(dsn string) (*sqlx.DB, error) {
	driver, source := driverFor(dsn)
	db, err := sqlx.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// one writer, and :memory: databases live per connection
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedTaxonomy(db); err != nil {
		return nil, err
	}
	return db, nil
}

func driverFor(dsn string) (string, string) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "pgx", dsn
	case strings.HasPrefix(dsn, "sqlite://"):
		dsn = strings.TrimPrefix(dsn, "sqlite://")
	case strings.HasPrefix(dsn, "sqlite:"):
		dsn = strings.TrimPrefix(dsn, "sqlite:")
	}
	if !strings.Contains(dsn, "_pragma=foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)"
	}
	return "sqlite", dsn
}

func schema(driver string) []string {
	pk := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if driver == "pgx" {
		pk = "BIGSERIAL PRIMARY KEY"
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS categories(
  id ` + pk + `,
  name TEXT NOT NULL UNIQUE,
  slug TEXT NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS console_types(
  id ` + pk + `,
  name TEXT NOT NULL UNIQUE
)`,
		`CREATE TABLE IF NOT EXISTS consoles(
  id ` + pk + `,
  name TEXT NOT NULL UNIQUE,
  slug TEXT NOT NULL,
  console_type_id BIGINT NOT NULL REFERENCES console_types(id) ON DELETE RESTRICT
)`,
		`CREATE INDEX IF NOT EXISTS idx_consoles_type ON consoles(console_type_id)`,
		`CREATE TABLE IF NOT EXISTS items(
  id ` + pk + `,
  name TEXT NOT NULL,
  description TEXT,
  price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
  acceptable_price DOUBLE PRECISION,
  good_price DOUBLE PRECISION,
  console_only_price DOUBLE PRECISION,
  console_with_controller DOUBLE PRECISION,
  complete_console_price DOUBLE PRECISION,
  image_url TEXT,
  barcode TEXT,
  category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
  console_id BIGINT NOT NULL REFERENCES consoles(id) ON DELETE RESTRICT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_items_category ON items(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_items_console  ON items(console_id)`,
		`CREATE INDEX IF NOT EXISTS idx_items_created  ON items(created_at, name)`,
		`CREATE INDEX IF NOT EXISTS idx_items_barcode  ON items(barcode)`,
		`CREATE INDEX IF NOT EXISTS idx_items_name     ON items(LOWER(name))`,
		`CREATE TABLE IF NOT EXISTS admins(
  id ` + pk + `,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at TEXT
)`,
		`CREATE TABLE IF NOT EXISTS sell_lists(
  session_id TEXT PRIMARY KEY,
  updated_at TEXT
)`,
		`CREATE TABLE IF NOT EXISTS sell_list_items(
  session_id TEXT NOT NULL REFERENCES sell_lists(session_id) ON DELETE CASCADE,
  item_id BIGINT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
  condition TEXT NOT NULL,
  price DOUBLE PRECISION NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  PRIMARY KEY (session_id, item_id, condition)
)`,
		`CREATE TABLE IF NOT EXISTS quotes(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  message TEXT NOT NULL DEFAULT '',
  total DOUBLE PRECISION NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'new',
  created_at TEXT NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_created ON quotes(created_at)`,
		// quote lines keep a name copy; catalog items may be replaced later
		`CREATE TABLE IF NOT EXISTS quote_items(
  quote_id TEXT NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
  item_id BIGINT NOT NULL,
  name TEXT NOT NULL,
  condition TEXT NOT NULL,
  qty INTEGER NOT NULL,
  price DOUBLE PRECISION NOT NULL,
  PRIMARY KEY (quote_id, item_id, condition)
)`,
	}
}

func ensureSchema(db *sqlx.DB) error {
	if db.DriverName() == "sqlite" {
		if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
			return fmt.Errorf("enable foreign keys: %w", err)
		}
	}
	for _, stmt := range schema(db.DriverName()) {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}
	return nil
}

// seedTaxonomy makes sure the fixed categories and console families exist.
// Safe to run on every startup.
func seedTaxonomy(db *sqlx.DB) error {
	cats := []string{
		domain.CategoryConsoles, domain.CategoryGames, domain.CategoryControllers,
		domain.CategoryAccessories, domain.CategoryHandhelds,
	}
	types := []string{
		domain.ConsoleTypeNintendo, domain.ConsoleTypePlayStation,
		domain.ConsoleTypeXbox, domain.ConsoleTypeOther,
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, name := range cats {
		if _, err := tx.Exec(tx.Rebind(`INSERT INTO categories(name, slug) VALUES(?, ?) ON CONFLICT(name) DO NOTHING`),
			name, slug.Make(name)); err != nil {
			return fmt.Errorf("seed category %s: %w", name, err)
		}
	}
	for _, name := range types {
		if _, err := tx.Exec(tx.Rebind(`INSERT INTO console_types(name) VALUES(?) ON CONFLICT(name) DO NOTHING`), name); err != nil {
			return fmt.Errorf("seed console type %s: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Println("[seed] base categories and console types ensured")
	return nil
}

// InTx runs fn inside a transaction, committing only when fn succeeds.
func InTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
