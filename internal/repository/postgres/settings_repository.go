package postgres

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
)

type SettingsRepository struct {
	base
}

// Get читает единственную строку настроек
func (r *SettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	query := `
		SELECT auto_approve, email_notifications, maintenance_mode
		FROM settings
		WHERE id = 1
	`

	var settings model.Settings
	err := r.QueryRow(ctx, query).Scan(
		&settings.AutoApprove,
		&settings.EmailNotifications,
		&settings.MaintenanceMode,
	)
	if err != nil {
		if IsNotFound(err) {
			return &model.Settings{EmailNotifications: true}, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &settings, nil
}

// Save сохраняет настройки
func (r *SettingsRepository) Save(ctx context.Context, settings *model.Settings) error {
	query := `
		INSERT INTO settings (id, auto_approve, email_notifications, maintenance_mode)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET auto_approve = EXCLUDED.auto_approve,
		    email_notifications = EXCLUDED.email_notifications,
		    maintenance_mode = EXCLUDED.maintenance_mode
	`

	_, err := r.ExecAffected(ctx, query, settings.AutoApprove, settings.EmailNotifications, settings.MaintenanceMode)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}
