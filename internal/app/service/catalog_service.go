package service

import (
	"context"

	"edu_rewards/internal/domain/model"
	"edu_rewards/internal/domain/repository"
)

// CatalogService reads the reward catalog: activity type -> fixed token
// reward and category. Read-only reference data.
type CatalogService struct {
	activityRepo repository.ActivityRepository
}

func NewCatalogService(activityRepo repository.ActivityRepository) *CatalogService {
	return &CatalogService{activityRepo: activityRepo}
}

func (s *CatalogService) Lookup(ctx context.Context, activityID int) (*model.Activity, error) {
	return s.activityRepo.Find(ctx, activityID)
}

func (s *CatalogService) LookupBySlug(ctx context.Context, slug string) (*model.Activity, error) {
	return s.activityRepo.FindBySlug(ctx, slug)
}

func (s *CatalogService) List(ctx context.Context) ([]model.Activity, error) {
	return s.activityRepo.List(ctx)
}
