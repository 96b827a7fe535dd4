package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/jmoiron/sqlx"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
)

// ConsoleRepo covers console families (types) and the consoles under them.
type ConsoleRepo struct{ db sqlx.ExtContext }

func NewConsoleRepo(db sqlx.ExtContext) *ConsoleRepo { return &ConsoleRepo{db: db} }

// ---------- console types ----------

func (r *ConsoleRepo) ListTypes(ctx context.Context) ([]domain.ConsoleType, error) {
	out := []domain.ConsoleType{}
	err := sqlx.SelectContext(ctx, r.db, &out, `SELECT id, name FROM console_types ORDER BY name`)
	return out, err
}

func (r *ConsoleRepo) GetType(ctx context.Context, id int64) (domain.ConsoleType, error) {
	var t domain.ConsoleType
	err := sqlx.GetContext(ctx, r.db, &t, r.db.Rebind(`SELECT id, name FROM console_types WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrNotFound
	}
	return t, err
}

func (r *ConsoleRepo) TypeByName(ctx context.Context, name string) (domain.ConsoleType, error) {
	var t domain.ConsoleType
	err := sqlx.GetContext(ctx, r.db, &t, r.db.Rebind(`SELECT id, name FROM console_types WHERE name = ?`), name)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrNotFound
	}
	return t, err
}

func (r *ConsoleRepo) CreateType(ctx context.Context, name string) (domain.ConsoleType, error) {
	t := domain.ConsoleType{Name: name}
	err := sqlx.GetContext(ctx, r.db, &t.ID,
		r.db.Rebind(`INSERT INTO console_types(name) VALUES(?) RETURNING id`), name)
	if err != nil {
		return t, fmt.Errorf("insert console type: %w", err)
	}
	return t, nil
}

func (r *ConsoleRepo) FindOrCreateType(ctx context.Context, name string) (domain.ConsoleType, error) {
	t, err := r.TypeByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return r.CreateType(ctx, name)
	}
	return t, err
}

func (r *ConsoleRepo) DeleteAllTypes(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM console_types`)
	return err
}

// ---------- consoles ----------

const consoleCols = `id, name, slug, console_type_id`

func (r *ConsoleRepo) ListConsoles(ctx context.Context) ([]domain.Console, error) {
	out := []domain.Console{}
	err := sqlx.SelectContext(ctx, r.db, &out, `SELECT `+consoleCols+` FROM consoles ORDER BY name`)
	return out, err
}

func (r *ConsoleRepo) ConsolesByType(ctx context.Context, typeID int64) ([]domain.Console, error) {
	out := []domain.Console{}
	err := sqlx.SelectContext(ctx, r.db, &out,
		r.db.Rebind(`SELECT `+consoleCols+` FROM consoles WHERE console_type_id = ? ORDER BY name`), typeID)
	return out, err
}

func (r *ConsoleRepo) GetConsole(ctx context.Context, id int64) (domain.Console, error) {
	var c domain.Console
	err := sqlx.GetContext(ctx, r.db, &c, r.db.Rebind(`SELECT `+consoleCols+` FROM consoles WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	return c, err
}

func (r *ConsoleRepo) ConsoleByName(ctx context.Context, name string) (domain.Console, error) {
	var c domain.Console
	err := sqlx.GetContext(ctx, r.db, &c, r.db.Rebind(`SELECT `+consoleCols+` FROM consoles WHERE name = ?`), name)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	return c, err
}

func (r *ConsoleRepo) CreateConsole(ctx context.Context, name string, typeID int64) (domain.Console, error) {
	c := domain.Console{Name: name, Slug: slug.Make(name), ConsoleTypeID: typeID}
	err := sqlx.GetContext(ctx, r.db, &c.ID,
		r.db.Rebind(`INSERT INTO consoles(name, slug, console_type_id) VALUES(?, ?, ?) RETURNING id`),
		c.Name, c.Slug, c.ConsoleTypeID)
	if err != nil {
		return c, fmt.Errorf("insert console: %w", err)
	}
	return c, nil
}

// FindOrCreateConsole looks consoles up by name only; an existing console
// keeps the type it was created with.
func (r *ConsoleRepo) FindOrCreateConsole(ctx context.Context, name string, typeID int64) (domain.Console, error) {
	c, err := r.ConsoleByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return r.CreateConsole(ctx, name, typeID)
	}
	return c, err
}

func (r *ConsoleRepo) DeleteAllConsoles(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM consoles`)
	return err
}
