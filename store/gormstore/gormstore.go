// Package gormstore backs the bot's key-value store with a SQLite database
// via GORM. Suited to single-node deployments where running Redis is not
// worth the operational overhead. Expiry is enforced on read; a background
// sweeper purges expired rows so the file does not grow unbounded.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Record struct {
	Key       string `gorm:"primaryKey;size:256"`
	Value     string
	ExpiresAt *time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (Record) TableName() string { return "kv_records" }

type Store struct {
	db    *gorm.DB
	nowFn func() time.Time
}

func Open(cfg Config) (*Store, error) {
	path, err := ResolveDSN(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite dsn: %w", err)
	}

	gdb, err := gorm.Open(sqlite.Open(sqliteDSN(path, cfg.SQLite)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Pool.MaxOpenConns)
	}
	if cfg.Pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Pool.MaxIdleConns)
	}
	if cfg.Pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.Pool.ConnMaxLifetime)
	}

	if err := gdb.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate kv_records: %w", err)
	}

	return &Store{db: gdb, nowFn: time.Now}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var rec Record
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("sqlite get %s: %w", key, err)
	}
	if rec.ExpiresAt != nil && !s.nowFn().Before(*rec.ExpiresAt) {
		// Lazy expiry; the sweeper handles rows nobody reads.
		_ = s.db.WithContext(ctx).Delete(&Record{}, "key = ?", key).Error
		return "", false, nil
	}
	return rec.Value, true, nil
}

func (s *Store) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	rec := Record{Key: key, Value: value, UpdatedAt: s.nowFn()}
	if ttl > 0 {
		expires := s.nowFn().Add(ttl)
		rec.ExpiresAt = &expires
	}
	err := s.db.WithContext(ctx).Save(&rec).Error
	if err != nil {
		return fmt.Errorf("sqlite put %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&Record{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("sqlite delete %s: %w", key, err)
	}
	return nil
}

// Sweep deletes every expired row and reports how many were removed.
func (s *Store) Sweep(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&Record{}, "expires_at IS NOT NULL AND expires_at <= ?", s.nowFn())
	if res.Error != nil {
		return 0, fmt.Errorf("sqlite sweep: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// StartSweeper runs Sweep on the configured interval until ctx is canceled.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_, _ = s.Sweep(ctx)
			}
		}
	}()
}
