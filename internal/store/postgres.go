package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is the row shape backing the postgres store.
type KVEntry struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// Postgres keeps store entries in a keyed table. Expiry is enforced on
// read; a periodic sweep is unnecessary because every reader skips and
// removes lapsed rows.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	entry := KVEntry{Key: key, Value: value, ExpiresAt: time.Now().Add(ttl)}
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at"}),
		}).
		Create(&entry).Error
}

func (p *Postgres) Get(ctx context.Context, key string) (string, error) {
	var entry KVEntry
	err := p.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if time.Now().After(entry.ExpiresAt) {
		_ = p.db.WithContext(ctx).Delete(&KVEntry{}, "key = ?", key).Error
		return "", ErrNotFound
	}
	return entry.Value, nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	return p.db.WithContext(ctx).Delete(&KVEntry{}, "key = ?", key).Error
}

func (p *Postgres) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry KVEntry
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&entry, "key = ?", key).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			count = 1
		case err != nil:
			return err
		case time.Now().After(entry.ExpiresAt):
			count = 1
		default:
			parsed, parseErr := strconv.ParseInt(entry.Value, 10, 64)
			if parseErr != nil {
				parsed = 0
			}
			count = parsed + 1
			// Keep the original window expiry.
			return tx.Model(&KVEntry{}).Where("key = ?", key).
				Update("value", strconv.FormatInt(count, 10)).Error
		}

		fresh := KVEntry{Key: key, Value: "1", ExpiresAt: time.Now().Add(ttl)}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at"}),
		}).Create(&fresh).Error
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
