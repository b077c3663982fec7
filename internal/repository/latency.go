package repository

import (
	"context"
	"time"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
)

// WithLatency оборачивает хранилище задержкой перед каждым вызовом.
// Используется для имитации сетевого бэкенда; задержка прерывается отменой ctx.
func WithLatency(store Store, delay time.Duration) Store {
	if delay <= 0 {
		return store
	}
	return &latencyStore{store: store, delay: delay}
}

type latencyStore struct {
	store Store
	delay time.Duration
}

func (s *latencyStore) wait(ctx context.Context) error {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *latencyStore) Rooms() RoomRepository {
	return latencyRooms{s, s.store.Rooms()}
}

func (s *latencyStore) Reservations() ReservationRepository {
	return latencyReservations{s, s.store.Reservations()}
}

func (s *latencyStore) Users() UserRepository {
	return latencyUsers{s, s.store.Users()}
}

func (s *latencyStore) Settings() SettingsRepository {
	return latencySettings{s, s.store.Settings()}
}

type latencyRooms struct {
	l    *latencyStore
	next RoomRepository
}

func (r latencyRooms) List(ctx context.Context) ([]*model.Room, error) {
	if err := r.l.wait(ctx); err != nil {
		return nil, err
	}
	return r.next.List(ctx)
}

func (r latencyRooms) GetByID(ctx context.Context, id int64) (*model.Room, error) {
	if err := r.l.wait(ctx); err != nil {
		return nil, err
	}
	return r.next.GetByID(ctx, id)
}

func (r latencyRooms) Create(ctx context.Context, room *model.Room) error {
	if err := r.l.wait(ctx); err != nil {
		return err
	}
	return r.next.Create(ctx, room)
}

func (r latencyRooms) Update(ctx context.Context, room *model.Room) error {
	if err := r.l.wait(ctx); err != nil {
		return err
	}
	return r.next.Update(ctx, room)
}

func (r latencyRooms) Delete(ctx context.Context, id int64) error {
	if err := r.l.wait(ctx); err != nil {
		return err
	}
	return r.next.Delete(ctx, id)
}

type latencyReservations struct {
	l    *latencyStore
	next ReservationRepository
}

func (r latencyReservations) List(ctx context.Context) ([]*model.Reservation, error) {
	if err := r.l.wait(ctx); err != nil {
		return nil, err
	}
	return r.next.List(ctx)
}

func (r latencyReservations) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	if err := r.l.wait(ctx); err != nil {
		return nil, err
	}
	return r.next.GetByID(ctx, id)
}

func (r latencyReservations) GetByRoomID(ctx context.Context, roomID int64) ([]*model.Reservation, error) {
	if err := r.l.wait(ctx); err != nil {
		return nil, err
	}
	return r.next.GetByRoomID(ctx, roomID)
}

func (r latencyReservations) GetByUserID(ctx context.Context, userID string) ([]*model.Reservation, error) {
	if err := r.l.wait(ctx); err != nil {
		return nil, err
	}
	return r.next.GetByUserID(ctx, userID)
}

func (r latencyReservations) GetByStatus(ctx context.Context, status model.ReservationStatus) ([]*model.Reservation, error) {
	if err := r.l.wait(ctx); err != nil {
		return nil, err
	}
	return r.next.GetByStatus(ctx, status)
}

func (r latencyReservations) Create(ctx context.Context, reservation *model.Reservation) error {
	if err := r.l.wait(ctx); err != nil {
		return err
	}
	return r.next.Create(ctx, reservation)
}

func (r latencyReservations) Update(ctx context.Context, reservation *model.Reservation) error {
	if err := r.l.wait(ctx); err != nil {
		return err
	}
	return r.next.Update(ctx, reservation)
}

func (r latencyReservations) UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus, adminNotes *string) error {
	if err := r.l.wait(ctx); err != nil {
		return err
	}
	return r.next.UpdateStatus(ctx, id, status, adminNotes)
}

func (r latencyReservations) Delete(ctx context.Context, id int64) error {
	if err := r.l.wait(ctx); err != nil {
		return err
	}
	return r.next.Delete(ctx, id)
}

type latencyUsers struct {
	l    *latencyStore
	next UserRepository
}

func (r latencyUsers) List(ctx context.Context) ([]*model.User, error) {
	if err := r.l.wait(ctx); err != nil {
		return nil, err
	}
	return r.next.List(ctx)
}

func (r latencyUsers) GetByID(ctx context.Context, id string) (*model.User, error) {
	if err := r.l.wait(ctx); err != nil {
		return nil, err
	}
	return r.next.GetByID(ctx, id)
}

func (r latencyUsers) Create(ctx context.Context, user *model.User) error {
	if err := r.l.wait(ctx); err != nil {
		return err
	}
	return r.next.Create(ctx, user)
}

func (r latencyUsers) Update(ctx context.Context, user *model.User) error {
	if err := r.l.wait(ctx); err != nil {
		return err
	}
	return r.next.Update(ctx, user)
}

func (r latencyUsers) Delete(ctx context.Context, id string) error {
	if err := r.l.wait(ctx); err != nil {
		return err
	}
	return r.next.Delete(ctx, id)
}

type latencySettings struct {
	l    *latencyStore
	next SettingsRepository
}

func (r latencySettings) Get(ctx context.Context) (*model.Settings, error) {
	if err := r.l.wait(ctx); err != nil {
		return nil, err
	}
	return r.next.Get(ctx)
}

func (r latencySettings) Save(ctx context.Context, settings *model.Settings) error {
	if err := r.l.wait(ctx); err != nil {
		return err
	}
	return r.next.Save(ctx, settings)
}
