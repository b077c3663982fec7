package repository

import (
	"context"
	"errors"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
)

// ErrNotFound возвращается при изменении или удалении отсутствующей записи.
// Методы чтения по ID в этом случае возвращают nil, nil.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate возвращается при создании записи с уже занятым ключом
var ErrDuplicate = errors.New("record already exists")

type RoomRepository interface {
	List(ctx context.Context) ([]*model.Room, error)
	GetByID(ctx context.Context, id int64) (*model.Room, error)
	Create(ctx context.Context, room *model.Room) error
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id int64) error
}

type ReservationRepository interface {
	List(ctx context.Context) ([]*model.Reservation, error)
	GetByID(ctx context.Context, id int64) (*model.Reservation, error)
	GetByRoomID(ctx context.Context, roomID int64) ([]*model.Reservation, error)
	GetByUserID(ctx context.Context, userID string) ([]*model.Reservation, error)
	GetByStatus(ctx context.Context, status model.ReservationStatus) ([]*model.Reservation, error)
	Create(ctx context.Context, reservation *model.Reservation) error
	Update(ctx context.Context, reservation *model.Reservation) error
	UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus, adminNotes *string) error
	Delete(ctx context.Context, id int64) error
}

type UserRepository interface {
	List(ctx context.Context) ([]*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	Save(ctx context.Context, settings *model.Settings) error
}

// Store объединяет коллекции приложения. Владелец хранилища передаёт его сервисам
// явно, реализации взаимозаменяемы (память, PostgreSQL).
type Store interface {
	Rooms() RoomRepository
	Reservations() ReservationRepository
	Users() UserRepository
	Settings() SettingsRepository
}
