package repository

import (
	"context"

	"github.com/sangkips/retail-pos/internal/domain/entity"
)

// DocumentRepository loads and saves the whole store document. Save replaces
// the stored document; the last writer wins.
type DocumentRepository interface {
	Load(ctx context.Context) (*entity.Document, error)
	Save(ctx context.Context, doc *entity.Document) error
}

// SettingsRepository loads and saves the store settings document.
type SettingsRepository interface {
	Load(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
}
