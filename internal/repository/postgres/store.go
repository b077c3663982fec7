// Package postgres реализует repository.Store поверх PostgreSQL (pgx).
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/meeting_rooms/internal/repository"
)

type Store struct {
	pool *pgxpool.Pool
}

var _ repository.Store = (*Store)(nil)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Connect создаёт пул соединений и проверяет доступность базы
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

func (s *Store) Rooms() repository.RoomRepository {
	return &RoomRepository{base{s.pool}}
}

func (s *Store) Reservations() repository.ReservationRepository {
	return &ReservationRepository{base{s.pool}}
}

func (s *Store) Users() repository.UserRepository {
	return &UserRepository{base{s.pool}}
}

func (s *Store) Settings() repository.SettingsRepository {
	return &SettingsRepository{base{s.pool}}
}
