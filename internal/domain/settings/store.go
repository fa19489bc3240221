package settings

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists the singleton settings row as a JSON document. Last write
// wins; administrative edits are not coordinated here.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) Get(ctx context.Context) (Settings, error) {
	var raw []byte
	err := s.DB.QueryRow(ctx, "SELECT data FROM org_settings WHERE id = 1").Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return Settings{DateFormat: DefaultDateFormat}, nil
	}
	if err != nil {
		return Settings{}, err
	}
	var out Settings
	if err := json.Unmarshal(raw, &out); err != nil {
		return Settings{}, err
	}
	if out.DateFormat == "" {
		out.DateFormat = DefaultDateFormat
	}
	return out, nil
}

// EnsureDefault installs the stock settings document when none exists yet.
// An existing row is left untouched.
func (s *Store) EnsureDefault(ctx context.Context) error {
	raw, err := json.Marshal(Settings{DateFormat: DefaultDateFormat})
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO org_settings (id, data)
    VALUES (1, $1)
    ON CONFLICT (id) DO NOTHING
  `, raw)
	return err
}

func (s *Store) Update(ctx context.Context, payload Settings) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO org_settings (id, data)
    VALUES (1, $1)
    ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
  `, raw)
	return err
}
