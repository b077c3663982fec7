package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
	"github.com/Freeeeeet/meeting_rooms/internal/repository"
)

type AdminService struct {
	rooms        repository.RoomRepository
	reservations repository.ReservationRepository
	settings     repository.SettingsRepository
	logger       *zap.Logger
}

func NewAdminService(store repository.Store, logger *zap.Logger) *AdminService {
	return &AdminService{
		rooms:        store.Rooms(),
		reservations: store.Reservations(),
		settings:     store.Settings(),
		logger:       logger,
	}
}

// Settings получает текущие настройки
func (s *AdminService) Settings(ctx context.Context) (*model.Settings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings сохраняет настройки целиком
func (s *AdminService) UpdateSettings(ctx context.Context, settings *model.Settings) (*model.Settings, error) {
	if err := s.settings.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	s.logger.Info("Settings updated",
		zap.Bool("auto_approve", settings.AutoApprove),
		zap.Bool("email_notifications", settings.EmailNotifications),
		zap.Bool("maintenance_mode", settings.MaintenanceMode),
	)

	return settings, nil
}

// Stats считает сводку для панели администратора
func (s *AdminService) Stats(ctx context.Context) (*model.AdminStats, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	reservations, err := s.reservations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	stats := &model.AdminStats{TotalRooms: len(rooms)}
	for _, room := range rooms {
		if room.Available() {
			stats.AvailableRooms++
		}
	}

	for _, res := range reservations {
		switch res.Status {
		case model.ReservationStatusPending:
			stats.PendingReservations++
		case model.ReservationStatusConfirmed:
			stats.ConfirmedReservations++
		case model.ReservationStatusCancelled, model.ReservationStatusRejected:
			stats.CancelledReservations++
		}
	}

	return stats, nil
}
