package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sangkips/retail-pos/internal/infrastructure/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps documents as rows of the documents table. It works with
// any gorm dialect; postgres and mysql are wired.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var record database.DocumentRecord
	err := s.db.WithContext(ctx).Where(&database.DocumentRecord{Key: key}).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: failed to read %s: %w", key, err)
	}
	return []byte(record.Body), nil
}

func (s *GormStore) Put(ctx context.Context, key string, body []byte) error {
	record := database.DocumentRecord{Key: key, Body: string(body), UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("store: failed to write %s: %w", key, err)
	}
	return nil
}
