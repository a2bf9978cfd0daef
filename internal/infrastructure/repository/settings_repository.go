package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/repository"
	"github.com/sangkips/retail-pos/internal/infrastructure/store"
)

type settingsRepository struct {
	blobs store.BlobStore
	key   string
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(blobs store.BlobStore, key string) repository.SettingsRepository {
	return &settingsRepository{blobs: blobs, key: key}
}

// Load returns the stored settings or the defaults when none are stored.
func (r *settingsRepository) Load(ctx context.Context) (*entity.Settings, error) {
	body, err := r.blobs.Get(ctx, r.key)
	if errors.Is(err, store.ErrBlobNotFound) {
		return entity.DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}

	settings := entity.DefaultSettings()
	if err := json.Unmarshal(body, settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	settings.Normalize()
	return settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *entity.Settings) error {
	body, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return r.blobs.Put(ctx, r.key, body)
}
