package service

import (
	"context"
	"sync"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/repository"
	"github.com/sangkips/retail-pos/pkg/apperror"
)

// Documents serializes access to the store document within this process.
// Every service that reads or writes collections goes through it so that
// two requests never interleave a load and a save.
type Documents struct {
	mu   sync.Mutex
	repo repository.DocumentRepository
}

func NewDocuments(repo repository.DocumentRepository) *Documents {
	return &Documents{repo: repo}
}

// View loads the document and passes it to fn. Changes made by fn are discarded.
func (d *Documents) View(ctx context.Context, fn func(doc *entity.Document) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	doc, err := d.repo.Load(ctx)
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update loads the document, applies fn and saves the result once. Nothing is
// saved when fn fails.
func (d *Documents) Update(ctx context.Context, fn func(doc *entity.Document) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	doc, err := d.repo.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	if err := d.repo.Save(ctx, doc); err != nil {
		return apperror.NewPersistenceError(err)
	}
	return nil
}

// Replace overwrites the whole document.
func (d *Documents) Replace(ctx context.Context, doc *entity.Document) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	doc.EnsureCollections()
	if err := d.repo.Save(ctx, doc); err != nil {
		return apperror.NewPersistenceError(err)
	}
	return nil
}
