package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/pkg/apperror"
)

// BackupService exports and restores the whole store document.
type BackupService struct {
	docs  *Documents
	clock Clock
}

// NewBackupService creates a new backup service
func NewBackupService(docs *Documents, clock Clock) *BackupService {
	return &BackupService{docs: docs, clock: clock}
}

// Backup is a pretty-printed document and the file name to save it under.
type Backup struct {
	FileName string
	Data     []byte
}

// Export returns the current document as indented JSON.
func (s *BackupService) Export(ctx context.Context) (*Backup, error) {
	var data []byte
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		var err error
		data, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("backup: encode document: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("pos_backup_%s.json", s.clock.now().Format("2006-01-02"))
	return &Backup{FileName: name, Data: data}, nil
}

// Restore replaces the document with a previously exported one.
func (s *BackupService) Restore(ctx context.Context, data []byte) error {
	var doc entity.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return apperror.NewBadRequestError("Invalid backup file: " + err.Error())
	}
	if err := s.docs.Replace(ctx, &doc); err != nil {
		return err
	}
	log.Info().Int("products", len(doc.Products)).Int("sales", len(doc.Sales)).Msg("Backup restored")
	return nil
}
