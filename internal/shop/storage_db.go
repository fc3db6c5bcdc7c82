package shop

import (
	"context"
	"database/sql"
	"time"
)

const dbQueryTimeout = 3 * time.Second

// PostgresStorage keeps the record in a single shop_state row keyed by
// StorageKey. Last write wins, same as the file backend.
type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) Load(ctx context.Context) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, dbQueryTimeout)
	defer cancel()

	var raw []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT doc
		FROM shop_state
		WHERE key = $1
	`, StorageKey).Scan(&raw)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (s *PostgresStorage) Save(ctx context.Context, raw []byte) error {
	ctx, cancel := context.WithTimeout(ctx, dbQueryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shop_state (key, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET doc = EXCLUDED.doc, updated_at = now()
	`, StorageKey, raw)
	return err
}
