package template

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("template not set")

// Store persists the singleton certificate template as serialized JSON.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

// GetRaw returns the serialized template, or ErrNotFound when none exists.
func (s *Store) GetRaw(ctx context.Context) ([]byte, error) {
	var raw []byte
	err := s.DB.QueryRow(ctx, "SELECT data FROM pdf_templates WHERE id = 1").Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrNotFound
	}
	return raw, nil
}

// Get returns the parsed block tree. A stored but malformed template parses
// to an empty tree.
func (s *Store) Get(ctx context.Context) ([]Block, error) {
	raw, err := s.GetRaw(ctx)
	if err != nil {
		return nil, err
	}
	return ParseBlocks(raw), nil
}

func (s *Store) Put(ctx context.Context, blocks []Block) error {
	raw, err := json.Marshal(blocks)
	if err != nil {
		return err
	}
	return s.PutRaw(ctx, raw)
}

func (s *Store) PutRaw(ctx context.Context, raw []byte) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO pdf_templates (id, data)
    VALUES (1, $1)
    ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
  `, raw)
	return err
}

// EnsureDefault installs the stock template when none has been saved yet.
func (s *Store) EnsureDefault(ctx context.Context) error {
	_, err := s.GetRaw(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	return s.Put(ctx, DefaultBlocks())
}
