package services

import (
	"context"
	"errors"

	"elearning-app/internal/models"
	"elearning-app/internal/repository"
)

type SettingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) GetSMTP(ctx context.Context) (*models.SMTPSettings, error) {
	return s.repo.GetSMTP(ctx)
}

func (s *SettingsService) UpdateSMTP(ctx context.Context, settings *models.SMTPSettings) error {
	if err := validateStruct(settings); err != nil {
		return err
	}
	return s.repo.UpsertSMTP(ctx, settings)
}

// Commission defaults to zero until the admin sets one.
func (s *SettingsService) GetCommission(ctx context.Context) (*models.CommissionSettings, error) {
	settings, err := s.repo.GetCommission(ctx)
	if errors.Is(err, models.ErrNotFound) {
		return &models.CommissionSettings{Percent: 0}, nil
	}
	return settings, err
}

func (s *SettingsService) UpdateCommission(ctx context.Context, settings *models.CommissionSettings) error {
	if err := validateStruct(settings); err != nil {
		return err
	}
	return s.repo.UpsertCommission(ctx, settings)
}
