package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
)

type AdminRepo struct{ DB sqlx.ExtContext }

func NewAdminRepo(db sqlx.ExtContext) *AdminRepo { return &AdminRepo{DB: db} }

func (r *AdminRepo) ByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var a domain.Admin
	err := sqlx.GetContext(ctx, r.DB, &a,
		r.DB.Rebind(`SELECT id,username,password_hash FROM admins WHERE LOWER(username)=LOWER(?)`), username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepo) ByID(ctx context.Context, id int64) (*domain.Admin, error) {
	var a domain.Admin
	err := sqlx.GetContext(ctx, r.DB, &a, r.DB.Rebind(`SELECT id,username,password_hash FROM admins WHERE id=?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepo) Create(ctx context.Context, username, hash string) (*domain.Admin, error) {
	a := domain.Admin{Username: username, Hash: hash}
	err := sqlx.GetContext(ctx, r.DB, &a.ID,
		r.DB.Rebind(`INSERT INTO admins(username,password_hash,created_at) VALUES(?,?,?) RETURNING id`),
		username, hash, Now())
	if err != nil {
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return &a, nil
}

// SetPassword replaces the stored hash of an existing admin.
func (r *AdminRepo) SetPassword(ctx context.Context, id int64, hash string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`UPDATE admins SET password_hash=? WHERE id=?`), hash, id)
	return err
}
