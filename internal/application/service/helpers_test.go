package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/infrastructure/repository"
	"github.com/sangkips/retail-pos/internal/infrastructure/store"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)

func fixedClock() time.Time { return fixedNow }

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// newTestDocuments returns Documents over an in-memory store seeded with the
// default catalog.
func newTestDocuments(t *testing.T) *Documents {
	t.Helper()
	repo := repository.NewDocumentRepository(store.NewMemoryStore(), "database", repository.SeedDocument)
	return NewDocuments(repo)
}

func loadDocument(t *testing.T, docs *Documents) *entity.Document {
	t.Helper()
	var out *entity.Document
	require.NoError(t, docs.View(context.Background(), func(doc *entity.Document) error {
		out = doc
		return nil
	}))
	return out
}

func findProduct(t *testing.T, docs *Documents, id string) entity.Product {
	t.Helper()
	p, ok := loadDocument(t, docs).FindProduct(id)
	require.True(t, ok, "product %s", id)
	return *p
}

func findMember(t *testing.T, docs *Documents, id string) entity.Member {
	t.Helper()
	m, ok := loadDocument(t, docs).FindMember(id)
	require.True(t, ok, "member %s", id)
	return *m
}

func assertAppCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code, appErr.Message)
}

func assertDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "want %d, got %s", want, got)
}

// recordingSink remembers rendered receipts and can be made to fail.
type recordingSink struct {
	mu       sync.Mutex
	err      error
	receipts []*entity.Receipt
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Render(_ context.Context, r *entity.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts = append(s.receipts, r)
	return s.err
}

// failingRepository loads the seed document but refuses every save.
type failingRepository struct{}

func (failingRepository) Load(context.Context) (*entity.Document, error) {
	return repository.SeedDocument(), nil
}

func (failingRepository) Save(context.Context, *entity.Document) error {
	return errors.New("disk full")
}
