package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/repository"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// SettingsSubscriber receives the store settings whenever they change.
type SettingsSubscriber interface {
	ApplySettings(settings entity.Settings)
}

// SettingsService owns the current store settings and pushes every change
// to its subscribers.
type SettingsService struct {
	settingsRepo repository.SettingsRepository

	mu          sync.RWMutex
	current     *entity.Settings
	subscribers []SettingsSubscriber
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Subscribe registers sub and immediately hands it the current settings if
// they are already loaded.
func (s *SettingsService) Subscribe(sub SettingsSubscriber) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, sub)
	current := s.current
	s.mu.Unlock()

	if current != nil {
		sub.ApplySettings(*current)
	}
}

// GetSettings returns the current settings, loading them on first use.
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.Settings, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current == nil {
		return s.Reload(ctx)
	}
	out := *current
	return &out, nil
}

// UpdateSettingsInput represents the input for updating settings
type UpdateSettingsInput struct {
	StoreName     string
	Address       string
	City          string
	Province      string
	Phone         string
	Footer        string
	PointsEnabled bool
	RpPerPoint    decimal.Decimal
	PointValue    decimal.Decimal
}

// UpdateSettings validates and stores new settings, then notifies subscribers.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.Settings, error) {
	if !input.RpPerPoint.IsPositive() {
		return nil, apperror.NewFieldError("rp_per_point", "must be greater than 0")
	}
	if !input.PointValue.IsPositive() {
		return nil, apperror.NewFieldError("point_value", "must be greater than 0")
	}

	settings := &entity.Settings{
		StoreName: input.StoreName,
		Address:   input.Address,
		City:      input.City,
		Province:  input.Province,
		Phone:     input.Phone,
		Footer:    input.Footer,
		Points: entity.PointsSettings{
			Enabled:    input.PointsEnabled,
			RpPerPoint: input.RpPerPoint,
			PointValue: input.PointValue,
		},
	}
	if err := validateStruct(settings); err != nil {
		return nil, err
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	s.publish(settings)

	out := *settings
	return &out, nil
}

// Reload re-reads the settings from the store and pushes them to subscribers.
func (s *SettingsService) Reload(ctx context.Context) (*entity.Settings, error) {
	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.publish(settings)

	log.Info().Str("store", settings.StoreName).Bool("points", settings.Points.Enabled).Msg("Settings loaded")
	out := *settings
	return &out, nil
}

func (s *SettingsService) publish(settings *entity.Settings) {
	s.mu.Lock()
	s.current = settings
	subs := append([]SettingsSubscriber(nil), s.subscribers...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.ApplySettings(*settings)
	}
}
