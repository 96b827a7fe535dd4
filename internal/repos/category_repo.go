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

type CategoryRepo struct{ db sqlx.ExtContext }

func NewCategoryRepo(db sqlx.ExtContext) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := sqlx.SelectContext(ctx, r.db, &out, `
  SELECT id, name, slug
  FROM categories
  ORDER BY name
`)
	return out, err
}

func (r *CategoryRepo) Get(ctx context.Context, id int64) (domain.Category, error) {
	return r.one(ctx, `SELECT id, name, slug FROM categories WHERE id = ?`, id)
}

func (r *CategoryRepo) BySlug(ctx context.Context, s string) (domain.Category, error) {
	return r.one(ctx, `SELECT id, name, slug FROM categories WHERE slug = ? ORDER BY id LIMIT 1`, s)
}

func (r *CategoryRepo) ByName(ctx context.Context, name string) (domain.Category, error) {
	return r.one(ctx, `SELECT id, name, slug FROM categories WHERE name = ?`, name)
}

func (r *CategoryRepo) one(ctx context.Context, q string, args ...any) (domain.Category, error) {
	var c domain.Category
	err := sqlx.GetContext(ctx, r.db, &c, r.db.Rebind(q), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	return c, err
}

func (r *CategoryRepo) Create(ctx context.Context, name string) (domain.Category, error) {
	c := domain.Category{Name: name, Slug: slug.Make(name)}
	err := sqlx.GetContext(ctx, r.db, &c.ID,
		r.db.Rebind(`INSERT INTO categories(name, slug) VALUES(?, ?) RETURNING id`), c.Name, c.Slug)
	if err != nil {
		return c, fmt.Errorf("insert category: %w", err)
	}
	return c, nil
}

// FindOrCreate returns the category with the exact name, creating it if needed.
func (r *CategoryRepo) FindOrCreate(ctx context.Context, name string) (domain.Category, error) {
	c, err := r.ByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return r.Create(ctx, name)
	}
	return c, err
}

func (r *CategoryRepo) Update(ctx context.Context, id int64, name string) (domain.Category, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE categories SET name = ?, slug = ? WHERE id = ?`),
		name, slug.Make(name), id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Category{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes the category and, explicitly, its items.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM items WHERE category_id = ?`), id); err != nil {
		return fmt.Errorf("delete category items: %w", err)
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM categories WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories`)
	return err
}
