package service

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/meeting_rooms/internal/repository"
)

// Options параметры, общие для всех сервисов
type Options struct {
	// Location часовой пояс рабочей сетки 08:00-20:00
	Location *time.Location
	// CurrentUserID пользователь, от имени которого работает приложение без аутентификации
	CurrentUserID string
	// Now источник текущего времени
	Now func() time.Time
}

// Services набор сервисов поверх одного хранилища
type Services struct {
	Rooms        *RoomService
	Reservations *ReservationService
	Users        *UserService
	Schedule     *ScheduleService
	Admin        *AdminService
}

// New собирает сервисы. Все операции, которые проверяют пересечения бронирований
// и затем пишут, выполняются под общим мьютексом.
func New(store repository.Store, opts Options, logger *zap.Logger) *Services {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	bookingMu := &sync.Mutex{}

	users := NewUserService(store, opts.CurrentUserID, bookingMu, logger)
	admin := NewAdminService(store, logger)

	return &Services{
		Rooms:        NewRoomService(store, bookingMu, logger),
		Reservations: NewReservationService(store, admin, users, bookingMu, opts, logger),
		Users:        users,
		Schedule:     NewScheduleService(store, opts.Location),
		Admin:        admin,
	}
}
