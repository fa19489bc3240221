package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("admin not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type Admin struct {
	ID           int64
	Email        string
	PasswordHash string
}

func (s *Store) FindByEmail(ctx context.Context, email string) (Admin, error) {
	var out Admin
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash
    FROM admins
    WHERE email = $1
  `, email).Scan(&out.ID, &out.Email, &out.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Admin{}, ErrNotFound
	}
	return out, err
}

func (s *Store) UpdateLastLogin(ctx context.Context, adminID int64) error {
	_, err := s.DB.Exec(ctx, "UPDATE admins SET last_login = now() WHERE id = $1", adminID)
	return err
}

func (s *Store) Upsert(ctx context.Context, email, passwordHash string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO admins (email, password_hash)
    VALUES ($1, $2)
    ON CONFLICT (email) DO NOTHING
  `, email, passwordHash)
	return err
}
