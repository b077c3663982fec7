// Package memory хранит данные приложения в памяти процесса.
//
// Все коллекции защищены одним RWMutex. Наружу отдаются только копии записей,
// поэтому вызывающий код не может изменить состояние хранилища в обход методов.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
	"github.com/Freeeeeet/meeting_rooms/internal/repository"
)

type Store struct {
	mu sync.RWMutex

	rooms        map[int64]*model.Room
	reservations map[int64]*model.Reservation
	users        map[string]*model.User
	settings     model.Settings

	// Монотонные счётчики: ID не переиспользуются после удаления
	lastRoomID        int64
	lastReservationID int64

	now func() time.Time
}

var _ repository.Store = (*Store)(nil)

// NewStore создаёт пустое хранилище
func NewStore() *Store {
	return &Store{
		rooms:        make(map[int64]*model.Room),
		reservations: make(map[int64]*model.Reservation),
		users:        make(map[string]*model.User),
		settings:     model.Settings{EmailNotifications: true},
		now:          time.Now,
	}
}

// WithClock подменяет источник времени для created_at
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Rooms() repository.RoomRepository               { return roomRepo{s} }
func (s *Store) Reservations() repository.ReservationRepository { return reservationRepo{s} }
func (s *Store) Users() repository.UserRepository               { return userRepo{s} }
func (s *Store) Settings() repository.SettingsRepository        { return settingsRepo{s} }

type roomRepo struct{ s *Store }

func (r roomRepo) List(ctx context.Context) ([]*model.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rooms := make([]*model.Room, 0, len(r.s.rooms))
	for _, room := range r.s.rooms {
		rooms = append(rooms, room.Clone())
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (r roomRepo) GetByID(ctx context.Context, id int64) (*model.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	room, ok := r.s.rooms[id]
	if !ok {
		return nil, nil
	}
	return room.Clone(), nil
}

func (r roomRepo) Create(ctx context.Context, room *model.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.lastRoomID++
	room.ID = r.s.lastRoomID
	r.s.rooms[room.ID] = room.Clone()
	return nil
}

func (r roomRepo) Update(ctx context.Context, room *model.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.rooms[room.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.rooms[room.ID] = room.Clone()
	return nil
}

func (r roomRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.rooms[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.rooms, id)
	// как ON DELETE CASCADE в postgres
	for resID, res := range r.s.reservations {
		if res.RoomID == id {
			delete(r.s.reservations, resID)
		}
	}
	return nil
}

type reservationRepo struct{ s *Store }

func cloneReservation(res *model.Reservation) *model.Reservation {
	c := *res
	if res.Attendees != nil {
		v := *res.Attendees
		c.Attendees = &v
	}
	return &c
}

// filter возвращает копии бронирований, подходящих под условие, в порядке ID
func (r reservationRepo) filter(ctx context.Context, keep func(*model.Reservation) bool) ([]*model.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.Reservation, 0)
	for _, res := range r.s.reservations {
		if keep(res) {
			out = append(out, cloneReservation(res))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r reservationRepo) List(ctx context.Context) ([]*model.Reservation, error) {
	return r.filter(ctx, func(*model.Reservation) bool { return true })
}

func (r reservationRepo) GetByRoomID(ctx context.Context, roomID int64) ([]*model.Reservation, error) {
	return r.filter(ctx, func(res *model.Reservation) bool { return res.RoomID == roomID })
}

func (r reservationRepo) GetByUserID(ctx context.Context, userID string) ([]*model.Reservation, error) {
	return r.filter(ctx, func(res *model.Reservation) bool { return res.UserID == userID })
}

func (r reservationRepo) GetByStatus(ctx context.Context, status model.ReservationStatus) ([]*model.Reservation, error) {
	return r.filter(ctx, func(res *model.Reservation) bool { return res.Status == status })
}

func (r reservationRepo) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res, ok := r.s.reservations[id]
	if !ok {
		return nil, nil
	}
	return cloneReservation(res), nil
}

func (r reservationRepo) Create(ctx context.Context, reservation *model.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.lastReservationID++
	reservation.ID = r.s.lastReservationID
	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = r.s.now()
	}
	r.s.reservations[reservation.ID] = cloneReservation(reservation)
	return nil
}

func (r reservationRepo) Update(ctx context.Context, reservation *model.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.reservations[reservation.ID]
	if !ok {
		return repository.ErrNotFound
	}
	updated := cloneReservation(reservation)
	updated.CreatedAt = existing.CreatedAt
	r.s.reservations[reservation.ID] = updated
	return nil
}

func (r reservationRepo) UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus, adminNotes *string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, ok := r.s.reservations[id]
	if !ok {
		return repository.ErrNotFound
	}
	res.Status = status
	if adminNotes != nil {
		res.AdminNotes = *adminNotes
	}
	return nil
}

func (r reservationRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reservations[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.reservations, id)
	return nil
}

type userRepo struct{ s *Store }

func (r userRepo) List(ctx context.Context) ([]*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		c := *u
		users = append(users, &c)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r userRepo) Create(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; ok {
		return repository.ErrDuplicate
	}
	c := *user
	r.s.users[user.ID] = &c
	return nil
}

func (r userRepo) Update(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	c := *user
	r.s.users[user.ID] = &c
	return nil
}

func (r userRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

type settingsRepo struct{ s *Store }

func (r settingsRepo) Get(ctx context.Context) (*model.Settings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	settings := r.s.settings
	return &settings, nil
}

func (r settingsRepo) Save(ctx context.Context, settings *model.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.settings = *settings
	return nil
}
