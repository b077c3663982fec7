package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
	"github.com/Freeeeeet/meeting_rooms/internal/repository"
)

type UserRepository struct {
	base
}

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

// List получает всех пользователей
func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT id, name, email, department, is_admin
		FROM users
		ORDER BY id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		var user model.User
		err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Department, &user.IsAdmin)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, name, email, department, is_admin
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.QueryRow(ctx, query, id).Scan(&user.ID, &user.Name, &user.Email, &user.Department, &user.IsAdmin)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

// Create создаёт нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, name, email, department, is_admin)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.ExecAffected(ctx, query, user.ID, user.Name, user.Email, user.Department, user.IsAdmin)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// Update перезаписывает поля пользователя
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, department = $3, is_admin = $4
		WHERE id = $5
	`

	if err := r.execOne(ctx, query, user.Name, user.Email, user.Department, user.IsAdmin, user.ID); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

// Delete удаляет пользователя
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if err := r.execOne(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
