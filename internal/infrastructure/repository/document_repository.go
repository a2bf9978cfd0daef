package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/repository"
	"github.com/sangkips/retail-pos/internal/infrastructure/store"
)

type documentRepository struct {
	blobs store.BlobStore
	key   string
	seed  func() *entity.Document
}

// NewDocumentRepository creates a document repository over blobs. When no
// document exists yet, seed provides the initial one.
func NewDocumentRepository(blobs store.BlobStore, key string, seed func() *entity.Document) repository.DocumentRepository {
	if seed == nil {
		seed = SeedDocument
	}
	return &documentRepository{blobs: blobs, key: key, seed: seed}
}

// Load returns the stored document, seeding and saving a default one when the
// store is empty.
func (r *documentRepository) Load(ctx context.Context) (*entity.Document, error) {
	body, err := r.blobs.Get(ctx, r.key)
	if errors.Is(err, store.ErrBlobNotFound) {
		doc := r.seed()
		doc.EnsureCollections()
		if err := r.Save(ctx, doc); err != nil {
			return nil, err
		}
		log.Info().Str("key", r.key).Msg("Seeded default store document")
		return doc, nil
	}
	if err != nil {
		return nil, err
	}

	var doc entity.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", r.key, err)
	}
	doc.EnsureCollections()
	return &doc, nil
}

func (r *documentRepository) Save(ctx context.Context, doc *entity.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", r.key, err)
	}
	return r.blobs.Put(ctx, r.key, body)
}
