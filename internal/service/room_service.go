package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
	"github.com/Freeeeeet/meeting_rooms/internal/repository"
)

type RoomService struct {
	rooms        repository.RoomRepository
	reservations repository.ReservationRepository
	bookingMu    *sync.Mutex
	logger       *zap.Logger
}

func NewRoomService(store repository.Store, bookingMu *sync.Mutex, logger *zap.Logger) *RoomService {
	return &RoomService{
		rooms:        store.Rooms(),
		reservations: store.Reservations(),
		bookingMu:    bookingMu,
		logger:       logger,
	}
}

func validateRoom(room *model.Room) error {
	if strings.TrimSpace(room.Name) == "" {
		return invalid("room name is required")
	}
	if room.Capacity <= 0 {
		return invalid("room capacity must be positive")
	}
	return nil
}

// List получает все комнаты
func (s *RoomService) List(ctx context.Context) ([]*model.Room, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// Get получает комнату по ID
func (s *RoomService) Get(ctx context.Context, id int64) (*model.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	if room == nil {
		return nil, notFound("room")
	}
	return room, nil
}

// Create создаёт комнату
func (s *RoomService) Create(ctx context.Context, room *model.Room) (*model.Room, error) {
	if err := validateRoom(room); err != nil {
		return nil, err
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.logger.Info("Room created",
		zap.Int64("room_id", room.ID),
		zap.String("name", room.Name),
		zap.Int("capacity", room.Capacity),
	)

	return room, nil
}

// Update накладывает patch на комнату
func (s *RoomService) Update(ctx context.Context, id int64, patch model.RoomPatch) (*model.Room, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := patch.Apply(*existing)
	if err := validateRoom(&updated); err != nil {
		return nil, err
	}

	if err := s.rooms.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("room")
		}
		return nil, fmt.Errorf("update room: %w", err)
	}

	s.logger.Info("Room updated", zap.Int64("room_id", id))

	return &updated, nil
}

// ToggleAvailability переключает доступность комнаты для бронирования
func (s *RoomService) ToggleAvailability(ctx context.Context, id int64) (*model.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	available := !room.Available()
	room, err = s.Update(ctx, id, model.RoomPatch{IsAvailable: &available})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Room availability toggled",
		zap.Int64("room_id", id),
		zap.Bool("is_available", available),
	)

	return room, nil
}

// Delete удаляет комнату, если у неё нет подтверждённых бронирований
func (s *RoomService) Delete(ctx context.Context, id int64) error {
	s.bookingMu.Lock()
	defer s.bookingMu.Unlock()

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	reservations, err := s.reservations.GetByRoomID(ctx, id)
	if err != nil {
		return fmt.Errorf("get room reservations: %w", err)
	}

	for _, res := range reservations {
		if res.Status == model.ReservationStatusConfirmed {
			return conflict("cannot delete room with active reservations")
		}
	}

	if err := s.rooms.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("room")
		}
		return fmt.Errorf("delete room: %w", err)
	}

	s.logger.Info("Room deleted", zap.Int64("room_id", id))

	return nil
}
