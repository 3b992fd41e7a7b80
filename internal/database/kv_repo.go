package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/domain/contract"
)

type kvRepo struct {
	db     dbConn
	driver string
}

func newKVRepo(db dbConn, driver string) contract.KVStore {
	return &kvRepo{db: db, driver: driver}
}

func (r *kvRepo) Get(ctx context.Context, key string) (string, bool, error) {
	query := `
		SELECT value
		FROM kv_store
		WHERE name = ?
	`

	var value string
	err := r.db.QueryRowContext(ctx, rebind(r.driver, query), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	return value, true, nil
}

func (r *kvRepo) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (name, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, rebind(r.driver, query), key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	return nil
}
