package kv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kiarashop/storefront/pkg/config"
	"github.com/kiarashop/storefront/pkg/logger"
)

// partitionRecord is the single table backing the sqlite store.
type partitionRecord struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     []byte `gorm:"column:value"`
	UpdatedAt time.Time
}

func (partitionRecord) TableName() string {
	return "partitions"
}

// SQLiteStore persists partitions in an embedded sqlite database.
type SQLiteStore struct {
	conn *gorm.DB
}

// NewSQLite opens (and migrates) the sqlite-backed store at the configured path.
func NewSQLite(ctx context.Context, cfg config.StoreConfig, logg *logger.Logger) (*SQLiteStore, error) {
	if cfg.SQLitePath == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite store: %w", err)
	}

	if err := conn.WithContext(ctx).AutoMigrate(&partitionRecord{}); err != nil {
		return nil, fmt.Errorf("migrating sqlite store: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "sqlite partition store ready")
	}

	return &SQLiteStore{conn: conn}, nil
}

// Get returns the blob stored at key.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var record partitionRecord
	err := s.conn.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record.Value, nil
}

// Set upserts the blob stored at key.
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	record := partitionRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).Error
}

// Delete removes the key; deleting an absent key is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	return s.conn.WithContext(ctx).Delete(&partitionRecord{}, "key = ?", key).Error
}

// Close shuts down the pooled connections.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
