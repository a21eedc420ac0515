package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"edu_rewards/internal/common"
	"edu_rewards/internal/domain/model"
)

// SettingsRepository stores the single admin settings record.
type SettingsRepository interface {
	Get(ctx context.Context) (*model.AdminSettings, error)
	Save(ctx context.Context, s *model.AdminSettings) error
}

type pgSettingsRepository struct {
	db *sql.DB
}

func NewPgSettingsRepository(db *sql.DB) SettingsRepository {
	return &pgSettingsRepository{db: db}
}

func (r *pgSettingsRepository) Get(ctx context.Context) (*model.AdminSettings, error) {
	query := `SELECT platform_name, auto_approve_threshold, max_tokens_per_day, maintenance_mode, notifications_enabled
	          FROM admin_settings WHERE id = 1`
	s := &model.AdminSettings{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.PlatformName, &s.AutoApproveThreshold, &s.MaxTokensPerDay, &s.MaintenanceMode, &s.NotificationsEnabled,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSettingsRepository.Get: %w", err)
	}
	return s, nil
}

func (r *pgSettingsRepository) Save(ctx context.Context, s *model.AdminSettings) error {
	query := `INSERT INTO admin_settings (id, platform_name, auto_approve_threshold, max_tokens_per_day, maintenance_mode, notifications_enabled)
	          VALUES (1, $1, $2, $3, $4, $5)
	          ON CONFLICT (id) DO UPDATE SET
	            platform_name          = EXCLUDED.platform_name,
	            auto_approve_threshold = EXCLUDED.auto_approve_threshold,
	            max_tokens_per_day     = EXCLUDED.max_tokens_per_day,
	            maintenance_mode       = EXCLUDED.maintenance_mode,
	            notifications_enabled  = EXCLUDED.notifications_enabled`
	_, err := r.db.ExecContext(ctx, query,
		s.PlatformName, s.AutoApproveThreshold, s.MaxTokensPerDay, s.MaintenanceMode, s.NotificationsEnabled,
	)
	if err != nil {
		return fmt.Errorf("pgSettingsRepository.Save: %w", err)
	}
	return nil
}
