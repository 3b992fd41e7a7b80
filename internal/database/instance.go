package database

import (
	"context"
	"fmt"

	"github.com/diegoclair/advice-rotation-bot/internal/domain/contract"
)

// instance implements DataManager interface
type instance struct {
	db               *DB
	kvRepo           contract.KVStore
	notificationRepo contract.NotificationRepo
}

// NewInstance creates a new database instance with all repositories
func NewInstance(db *DB) contract.DataManager {
	instance := repoInstancesWithConn(db.conn, db.driver)
	instance.db = db
	return instance
}

// repoInstancesWithConn creates repository instances with custom dbConn
func repoInstancesWithConn(conn dbConn, driver string) *instance {
	return &instance{
		kvRepo:           newKVRepo(conn, driver),
		notificationRepo: newNotificationRepo(conn, driver),
	}
}

// KV returns the key-value store
func (i *instance) KV() contract.KVStore {
	return i.kvRepo
}

// Notification returns the pending notification repository
func (i *instance) Notification() contract.NotificationRepo {
	return i.notificationRepo
}

// WithTransaction executes a function within a database transaction
func (i *instance) WithTransaction(ctx context.Context, fn func(dm contract.DataManager) error) error {
	if i.db == nil {
		return fmt.Errorf("nested transactions are not supported")
	}

	tx, err := i.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txInstance := repoInstancesWithConn(tx, i.db.driver)
	err = fn(txInstance)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %v, original error: %w", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}
