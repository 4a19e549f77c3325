// Package sqlstore implements the storage interfaces on a relational database through
// gorm. Postgres is the production target; tests run against in-memory sqlite.
package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chris/daily-prize-pools/pkg/storage"
)

// Store implements storage.Storage with one table per record type. Multi-record writes
// run inside a database transaction and pool mutations are guarded by a version column.
type Store struct {
	db *gorm.DB
}

var _ storage.Storage = (*Store)(nil)

// Open connects with the given dialector, for example postgres.Open(dsn).
func Open(dialector gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return New(db), nil
}

// New wraps an existing connection. The connection should translate driver errors
// (gorm.Config.TranslateError) so that unique violations surface as gorm.ErrDuplicatedKey.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates every table the store uses.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&poolRow{},
		&purchaseRow{},
		&poolTxRow{},
		&distributionRow{},
		&ticketRow{},
		&drawRow{},
		&scanCursorRow{},
		&matchRow{},
		&settlementRow{},
	)
}

// DB exposes the underlying connection, mainly for seeding in tests and tools.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
