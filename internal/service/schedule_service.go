package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/meeting_rooms/internal/availability"
	"github.com/Freeeeeet/meeting_rooms/internal/model"
	"github.com/Freeeeeet/meeting_rooms/internal/repository"
)

type ScheduleService struct {
	rooms        repository.RoomRepository
	reservations repository.ReservationRepository
	location     *time.Location
}

func NewScheduleService(store repository.Store, location *time.Location) *ScheduleService {
	return &ScheduleService{
		rooms:        store.Rooms(),
		reservations: store.Reservations(),
		location:     location,
	}
}

// Location часовой пояс сетки слотов
func (s *ScheduleService) Location() *time.Location {
	return s.location
}

// blocking отбирает бронирования, которые занимают время комнаты.
// Отменённые и отклонённые бронирования время не занимают.
func blocking(reservations []*model.Reservation) []*model.Reservation {
	out := make([]*model.Reservation, 0, len(reservations))
	for _, res := range reservations {
		if !res.Status.IsTerminal() {
			out = append(out, res)
		}
	}
	return out
}

func (s *ScheduleService) roomReservations(ctx context.Context, roomID int64) ([]*model.Reservation, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	if room == nil {
		return nil, notFound("room")
	}

	reservations, err := s.reservations.GetByRoomID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("get room reservations: %w", err)
	}

	return blocking(reservations), nil
}

// RoomSchedule строит расписание комнаты на неделю, начиная с даты start
func (s *ScheduleService) RoomSchedule(ctx context.Context, roomID int64, start time.Time) ([]model.DaySchedule, error) {
	reservations, err := s.roomReservations(ctx, roomID)
	if err != nil {
		return nil, err
	}

	return availability.WeekSchedule(start.In(s.location), roomID, reservations), nil
}

// RoomDay строит расписание комнаты на один день
func (s *ScheduleService) RoomDay(ctx context.Context, roomID int64, day time.Time) (*model.DaySchedule, error) {
	reservations, err := s.roomReservations(ctx, roomID)
	if err != nil {
		return nil, err
	}

	schedule := availability.Day(day.In(s.location), roomID, reservations)
	return &schedule, nil
}
