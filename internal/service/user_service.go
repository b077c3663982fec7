package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
	"github.com/Freeeeeet/meeting_rooms/internal/repository"
)

var validate = validator.New()

type UserService struct {
	users         repository.UserRepository
	reservations  repository.ReservationRepository
	bookingMu     *sync.Mutex
	currentUserID string
	logger        *zap.Logger
}

func NewUserService(store repository.Store, currentUserID string, bookingMu *sync.Mutex, logger *zap.Logger) *UserService {
	return &UserService{
		users:         store.Users(),
		reservations:  store.Reservations(),
		bookingMu:     bookingMu,
		currentUserID: currentUserID,
		logger:        logger,
	}
}

// CurrentUserID возвращает ID пользователя, от имени которого выполняются запросы
func (s *UserService) CurrentUserID() string {
	return s.currentUserID
}

// Current получает текущего пользователя
func (s *UserService) Current(ctx context.Context) (*model.User, error) {
	return s.Get(ctx, s.currentUserID)
}

// List получает всех пользователей
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get получает пользователя по ID
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, notFound("user")
	}
	return user, nil
}

func validateUser(user *model.User) error {
	if strings.TrimSpace(user.Name) == "" {
		return invalid("user name is required")
	}
	if err := validate.Var(user.Email, "required,email"); err != nil {
		return invalid("user email is invalid")
	}
	return nil
}

// Create создаёт пользователя. Пустой ID заменяется сгенерированным UUID.
func (s *UserService) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("user with this id already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID),
		zap.Bool("is_admin", user.IsAdmin),
	)

	return user, nil
}

// Update накладывает patch на пользователя
func (s *UserService) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := patch.Apply(*existing)
	if err := validateUser(&updated); err != nil {
		return nil, err
	}

	if err := s.users.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("user")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("User updated", zap.String("user_id", id))

	return &updated, nil
}

// Delete удаляет пользователя вместе с его отменёнными и отклонёнными бронированиями.
// Пока есть ожидающие или подтверждённые бронирования, удаление запрещено.
func (s *UserService) Delete(ctx context.Context, id string) error {
	s.bookingMu.Lock()
	defer s.bookingMu.Unlock()

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	reservations, err := s.reservations.GetByUserID(ctx, id)
	if err != nil {
		return fmt.Errorf("get user reservations: %w", err)
	}

	for _, res := range reservations {
		if !res.Status.IsTerminal() {
			return conflict("cannot delete user with active reservations")
		}
	}

	for _, res := range reservations {
		if err := s.reservations.Delete(ctx, res.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("delete user reservation: %w", err)
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("user")
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info("User deleted",
		zap.String("user_id", id),
		zap.Int("reservations_removed", len(reservations)),
	)

	return nil
}
