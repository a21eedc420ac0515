package service

import (
	"context"

	"edu_rewards/internal/common"
	"edu_rewards/internal/domain/model"
	"edu_rewards/internal/domain/repository"
)

// SettingsService manages the single admin settings record.
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

func (s *SettingsService) Get(ctx context.Context) (*model.AdminSettings, error) {
	return s.settingsRepo.Get(ctx)
}

func (s *SettingsService) Update(ctx context.Context, settings *model.AdminSettings) error {
	if settings.PlatformName == "" {
		return common.ErrBadRequest
	}
	if settings.MaxTokensPerDay < 0 || settings.AutoApproveThreshold < 0 {
		return common.ErrBadRequest
	}
	return s.settingsRepo.Save(ctx, settings)
}
