package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
)

type RoomRepository struct {
	base
}

const roomColumns = `id, name, capacity, location, features, image, is_available`

func scanRoom(row pgx.Row) (*model.Room, error) {
	var room model.Room
	err := row.Scan(
		&room.ID,
		&room.Name,
		&room.Capacity,
		&room.Location,
		&room.Features,
		&room.Image,
		&room.IsAvailable,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// List получает все комнаты
func (r *RoomRepository) List(ctx context.Context) ([]*model.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms ORDER BY id`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]*model.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

// GetByID получает комнату по ID
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*model.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	room, err := scanRoom(r.QueryRow(ctx, query, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room by id: %w", err)
	}

	return room, nil
}

// Create создаёт новую комнату
func (r *RoomRepository) Create(ctx context.Context, room *model.Room) error {
	query := `
		INSERT INTO rooms (name, capacity, location, features, image, is_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	features := room.Features
	if features == nil {
		features = []string{}
	}

	err := r.QueryRow(
		ctx, query,
		room.Name,
		room.Capacity,
		room.Location,
		features,
		room.Image,
		room.IsAvailable,
	).Scan(&room.ID)

	if err != nil {
		return fmt.Errorf("create room: %w", err)
	}

	return nil
}

// Update перезаписывает поля комнаты
func (r *RoomRepository) Update(ctx context.Context, room *model.Room) error {
	query := `
		UPDATE rooms
		SET name = $1, capacity = $2, location = $3, features = $4, image = $5, is_available = $6
		WHERE id = $7
	`

	features := room.Features
	if features == nil {
		features = []string{}
	}

	err := r.execOne(ctx, query,
		room.Name,
		room.Capacity,
		room.Location,
		features,
		room.Image,
		room.IsAvailable,
		room.ID,
	)
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}

	return nil
}

// Delete удаляет комнату (бронирования удалятся каскадом)
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	if err := r.execOne(ctx, `DELETE FROM rooms WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}
