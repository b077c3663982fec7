package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/meeting_rooms/internal/availability"
	"github.com/Freeeeeet/meeting_rooms/internal/model"
	"github.com/Freeeeeet/meeting_rooms/internal/repository"
)

type ReservationService struct {
	rooms        repository.RoomRepository
	reservations repository.ReservationRepository
	admin        *AdminService
	users        *UserService
	bookingMu    *sync.Mutex
	location     *time.Location
	now          func() time.Time
	logger       *zap.Logger
}

func NewReservationService(
	store repository.Store,
	admin *AdminService,
	users *UserService,
	bookingMu *sync.Mutex,
	opts Options,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		rooms:        store.Rooms(),
		reservations: store.Reservations(),
		admin:        admin,
		users:        users,
		bookingMu:    bookingMu,
		location:     opts.Location,
		now:          opts.Now,
		logger:       logger,
	}
}

// ReservationFilter условия выборки; нулевые поля не учитываются
type ReservationFilter struct {
	UserID string
	RoomID int64
	Status model.ReservationStatus
}

// UserReservations бронирования пользователя, разложенные по вкладкам
type UserReservations struct {
	Upcoming  []*model.Reservation `json:"upcoming"`
	Past      []*model.Reservation `json:"past"`
	Cancelled []*model.Reservation `json:"cancelled"`
}

// Now текущее время по часам сервиса
func (s *ReservationService) Now() time.Time {
	return s.now()
}

// List получает бронирования по фильтру
func (s *ReservationService) List(ctx context.Context, filter ReservationFilter) ([]*model.Reservation, error) {
	var (
		reservations []*model.Reservation
		err          error
	)

	switch {
	case filter.RoomID != 0:
		reservations, err = s.reservations.GetByRoomID(ctx, filter.RoomID)
	case filter.UserID != "":
		reservations, err = s.reservations.GetByUserID(ctx, filter.UserID)
	case filter.Status != "":
		reservations, err = s.reservations.GetByStatus(ctx, filter.Status)
	default:
		reservations, err = s.reservations.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	out := reservations[:0]
	for _, res := range reservations {
		if filter.RoomID != 0 && res.RoomID != filter.RoomID {
			continue
		}
		if filter.UserID != "" && res.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && res.Status != filter.Status {
			continue
		}
		out = append(out, res)
	}

	return out, nil
}

// ListForRoom получает бронирования комнаты
func (s *ReservationService) ListForRoom(ctx context.Context, roomID int64) ([]*model.Reservation, error) {
	if _, err := s.getRoom(ctx, roomID); err != nil {
		return nil, err
	}
	return s.List(ctx, ReservationFilter{RoomID: roomID})
}

// Get получает бронирование по ID
func (s *ReservationService) Get(ctx context.Context, id int64) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	if res == nil {
		return nil, notFound("reservation")
	}
	return res, nil
}

func (s *ReservationService) getRoom(ctx context.Context, id int64) (*model.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	if room == nil {
		return nil, notFound("room")
	}
	return room, nil
}

// validate проверяет поля бронирования относительно комнаты и рабочего окна
func (s *ReservationService) validate(res *model.Reservation, room *model.Room) error {
	if strings.TrimSpace(res.Title) == "" {
		return invalid("reservation title is required")
	}
	if !res.EndTime.After(res.StartTime) {
		return invalid("end time must be after start time")
	}
	if !availability.WithinBusinessHours(res.StartTime.In(s.location), res.EndTime.In(s.location)) {
		return invalid(fmt.Sprintf("reservation must fall within business hours %02d:00-%02d:00",
			availability.FirstHour, availability.ClosingHour))
	}
	if res.Attendees != nil {
		if *res.Attendees <= 0 {
			return invalid("attendees must be positive")
		}
		if *res.Attendees > room.Capacity {
			return invalid(fmt.Sprintf("room capacity is %d", room.Capacity))
		}
	}
	return nil
}

// checkConflict ищет подтверждённое бронирование той же комнаты, пересекающее res.
// Вызывается под bookingMu.
func (s *ReservationService) checkConflict(ctx context.Context, res *model.Reservation) error {
	existing, err := s.reservations.GetByRoomID(ctx, res.RoomID)
	if err != nil {
		return fmt.Errorf("get room reservations: %w", err)
	}

	for _, other := range existing {
		if other.ID == res.ID || other.Status != model.ReservationStatusConfirmed {
			continue
		}
		if other.Overlaps(res.StartTime, res.EndTime) {
			return conflict(fmt.Sprintf("room is already booked by reservation #%d", other.ID))
		}
	}

	return nil
}

// Create создаёт бронирование. Начальный статус pending, либо confirmed при
// включённом автоодобрении; переданный статус игнорируется.
func (s *ReservationService) Create(ctx context.Context, res *model.Reservation) (*model.Reservation, error) {
	s.bookingMu.Lock()
	defer s.bookingMu.Unlock()

	if res.UserID == "" {
		res.UserID = s.users.CurrentUserID()
	}
	if _, err := s.users.Get(ctx, res.UserID); err != nil {
		return nil, err
	}

	room, err := s.getRoom(ctx, res.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.Available() {
		return nil, conflict("room is not available for booking")
	}

	if err := s.validate(res, room); err != nil {
		return nil, err
	}

	settings, err := s.admin.Settings(ctx)
	if err != nil {
		return nil, err
	}

	res.ID = 0
	res.Status = model.ReservationStatusPending
	if settings.AutoApprove {
		res.Status = model.ReservationStatusConfirmed
	}
	res.CreatedAt = s.now()

	if err := s.checkConflict(ctx, res); err != nil {
		return nil, err
	}

	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.logger.Info("Reservation created",
		zap.Int64("reservation_id", res.ID),
		zap.Int64("room_id", res.RoomID),
		zap.String("user_id", res.UserID),
		zap.Time("start_time", res.StartTime),
		zap.Time("end_time", res.EndTime),
		zap.String("status", string(res.Status)),
	)

	return res, nil
}

// Update накладывает patch на бронирование. Смена статуса проходит через
// допустимые переходы, смена времени или комнаты повторно проверяет пересечения.
func (s *ReservationService) Update(ctx context.Context, id int64, patch model.ReservationPatch) (*model.Reservation, error) {
	s.bookingMu.Lock()
	defer s.bookingMu.Unlock()

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil && *patch.Status != existing.Status {
		if !patch.Status.IsValid() {
			return nil, invalid(fmt.Sprintf("unknown status %q", *patch.Status))
		}
		if !existing.Status.CanTransitionTo(*patch.Status) {
			return nil, invalidTransition(fmt.Sprintf("cannot change status from %s to %s", existing.Status, *patch.Status))
		}
	}

	if patch.TouchesSchedule() && existing.Status.IsTerminal() {
		return nil, invalidTransition(fmt.Sprintf("cannot reschedule %s reservation", existing.Status))
	}

	updated := patch.Apply(*existing)

	if patch.TouchesSchedule() || patch.Title != nil || patch.Attendees != nil {
		room, err := s.getRoom(ctx, updated.RoomID)
		if err != nil {
			return nil, err
		}
		if err := s.validate(&updated, room); err != nil {
			return nil, err
		}
	}

	if updated.Status == model.ReservationStatusConfirmed &&
		(patch.TouchesSchedule() || existing.Status != model.ReservationStatusConfirmed) {
		if err := s.checkConflict(ctx, &updated); err != nil {
			return nil, err
		}
	}

	if err := s.reservations.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("reservation")
		}
		return nil, fmt.Errorf("update reservation: %w", err)
	}

	s.logger.Info("Reservation updated",
		zap.Int64("reservation_id", id),
		zap.String("status", string(updated.Status)),
	)

	return &updated, nil
}

// setStatus переводит бронирование в статус to. Вызывается под bookingMu.
func (s *ReservationService) setStatus(ctx context.Context, res *model.Reservation, to model.ReservationStatus, adminNotes *string) error {
	if err := s.reservations.UpdateStatus(ctx, res.ID, to, adminNotes); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("reservation")
		}
		return fmt.Errorf("update reservation status: %w", err)
	}

	res.Status = to
	if adminNotes != nil {
		res.AdminNotes = *adminNotes
	}
	return nil
}

// Cancel отменяет подтверждённое бронирование. Повторная отмена ничего не меняет.
func (s *ReservationService) Cancel(ctx context.Context, id int64) (*model.Reservation, error) {
	s.bookingMu.Lock()
	defer s.bookingMu.Unlock()

	res, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if res.Status == model.ReservationStatusCancelled {
		return res, nil
	}

	if !res.Status.CanTransitionTo(model.ReservationStatusCancelled) {
		return nil, invalidTransition(fmt.Sprintf("cannot cancel %s reservation", res.Status))
	}

	if err := s.setStatus(ctx, res, model.ReservationStatusCancelled, nil); err != nil {
		return nil, err
	}

	s.logger.Info("Reservation cancelled",
		zap.Int64("reservation_id", id),
		zap.String("user_id", res.UserID),
	)

	return res, nil
}

// Approve одобряет ожидающее бронирование, если время комнаты свободно
func (s *ReservationService) Approve(ctx context.Context, id int64, adminNotes *string) (*model.Reservation, error) {
	s.bookingMu.Lock()
	defer s.bookingMu.Unlock()

	res, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !res.Status.CanTransitionTo(model.ReservationStatusConfirmed) {
		return nil, invalidTransition(fmt.Sprintf("cannot approve %s reservation", res.Status))
	}

	if err := s.checkConflict(ctx, res); err != nil {
		return nil, err
	}

	if err := s.setStatus(ctx, res, model.ReservationStatusConfirmed, adminNotes); err != nil {
		return nil, err
	}

	s.logger.Info("Reservation approved", zap.Int64("reservation_id", id))

	return res, nil
}

// Reject отклоняет ожидающее бронирование
func (s *ReservationService) Reject(ctx context.Context, id int64, adminNotes *string) (*model.Reservation, error) {
	s.bookingMu.Lock()
	defer s.bookingMu.Unlock()

	res, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !res.Status.CanTransitionTo(model.ReservationStatusRejected) {
		return nil, invalidTransition(fmt.Sprintf("cannot reject %s reservation", res.Status))
	}

	if err := s.setStatus(ctx, res, model.ReservationStatusRejected, adminNotes); err != nil {
		return nil, err
	}

	s.logger.Info("Reservation rejected", zap.Int64("reservation_id", id))

	return res, nil
}

// Delete удаляет бронирование в любом статусе
func (s *ReservationService) Delete(ctx context.Context, id int64) error {
	s.bookingMu.Lock()
	defer s.bookingMu.Unlock()

	if err := s.reservations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("reservation")
		}
		return fmt.Errorf("delete reservation: %w", err)
	}

	s.logger.Info("Reservation deleted", zap.Int64("reservation_id", id))

	return nil
}

const expiredNotes = "expired without review"

// ExpirePending отклоняет ожидающие бронирования, время начала которых уже прошло.
// Возвращает количество отклонённых.
func (s *ReservationService) ExpirePending(ctx context.Context) (int, error) {
	s.bookingMu.Lock()
	defer s.bookingMu.Unlock()

	pending, err := s.reservations.GetByStatus(ctx, model.ReservationStatusPending)
	if err != nil {
		return 0, fmt.Errorf("get pending reservations: %w", err)
	}

	now := s.now()
	notes := expiredNotes
	expired := 0
	for _, res := range pending {
		if res.StartTime.After(now) {
			continue
		}
		if err := s.setStatus(ctx, res, model.ReservationStatusRejected, &notes); err != nil {
			return expired, err
		}
		expired++

		s.logger.Info("Pending reservation expired",
			zap.Int64("reservation_id", res.ID),
			zap.Time("start_time", res.StartTime),
		)
	}

	return expired, nil
}

// Pending получает ожидающие бронирования, новые первыми. limit <= 0 - без ограничения.
func (s *ReservationService) Pending(ctx context.Context, limit int) ([]*model.Reservation, error) {
	pending, err := s.reservations.GetByStatus(ctx, model.ReservationStatusPending)
	if err != nil {
		return nil, fmt.Errorf("get pending reservations: %w", err)
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].CreatedAt.After(pending[j].CreatedAt)
	})

	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}

	return pending, nil
}

// ForUser раскладывает бронирования пользователя на предстоящие, прошедшие и отменённые
func (s *ReservationService) ForUser(ctx context.Context, userID string) (*UserReservations, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, err
	}

	reservations, err := s.reservations.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user reservations: %w", err)
	}

	now := s.now()
	out := &UserReservations{
		Upcoming:  []*model.Reservation{},
		Past:      []*model.Reservation{},
		Cancelled: []*model.Reservation{},
	}

	for _, res := range reservations {
		switch {
		case res.Status.IsTerminal():
			out.Cancelled = append(out.Cancelled, res)
		case res.StartTime.After(now):
			out.Upcoming = append(out.Upcoming, res)
		default:
			out.Past = append(out.Past, res)
		}
	}

	sort.SliceStable(out.Upcoming, func(i, j int) bool {
		return out.Upcoming[i].StartTime.Before(out.Upcoming[j].StartTime)
	})
	sort.SliceStable(out.Past, func(i, j int) bool {
		return out.Past[i].StartTime.After(out.Past[j].StartTime)
	})

	return out, nil
}
