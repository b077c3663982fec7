package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
)

type ReservationRepository struct {
	base
}

const reservationColumns = `id, room_id, user_id, title, description, start_time, end_time, attendees, status, created_at, admin_notes`

func scanReservation(row pgx.Row) (*model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(
		&res.ID,
		&res.RoomID,
		&res.UserID,
		&res.Title,
		&res.Description,
		&res.StartTime,
		&res.EndTime,
		&res.Attendees,
		&res.Status,
		&res.CreatedAt,
		&res.AdminNotes,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepository) list(ctx context.Context, op, where string, args ...interface{}) ([]*model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ` + where + ` ORDER BY id`

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	reservations := make([]*model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}

// List получает все бронирования
func (r *ReservationRepository) List(ctx context.Context) ([]*model.Reservation, error) {
	return r.list(ctx, "list reservations", "")
}

// GetByRoomID получает все бронирования комнаты
func (r *ReservationRepository) GetByRoomID(ctx context.Context, roomID int64) ([]*model.Reservation, error) {
	return r.list(ctx, "get reservations by room", "WHERE room_id = $1", roomID)
}

// GetByUserID получает все бронирования пользователя
func (r *ReservationRepository) GetByUserID(ctx context.Context, userID string) ([]*model.Reservation, error) {
	return r.list(ctx, "get reservations by user", "WHERE user_id = $1", userID)
}

// GetByStatus получает бронирования в указанном статусе
func (r *ReservationRepository) GetByStatus(ctx context.Context, status model.ReservationStatus) ([]*model.Reservation, error) {
	return r.list(ctx, "get reservations by status", "WHERE status = $1", status)
}

// GetByID получает бронирование по ID
func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(r.QueryRow(ctx, query, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation by id: %w", err)
	}

	return res, nil
}

// Create создаёт новое бронирование
func (r *ReservationRepository) Create(ctx context.Context, res *model.Reservation) error {
	query := `
		INSERT INTO reservations (room_id, user_id, title, description, start_time, end_time, attendees, status, admin_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		res.RoomID,
		res.UserID,
		res.Title,
		res.Description,
		res.StartTime,
		res.EndTime,
		res.Attendees,
		res.Status,
		res.AdminNotes,
	).Scan(&res.ID, &res.CreatedAt)

	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}

	return nil
}

// Update перезаписывает изменяемые поля бронирования
func (r *ReservationRepository) Update(ctx context.Context, res *model.Reservation) error {
	query := `
		UPDATE reservations
		SET room_id = $1, title = $2, description = $3, start_time = $4, end_time = $5,
		    attendees = $6, status = $7, admin_notes = $8
		WHERE id = $9
	`

	err := r.execOne(ctx, query,
		res.RoomID,
		res.Title,
		res.Description,
		res.StartTime,
		res.EndTime,
		res.Attendees,
		res.Status,
		res.AdminNotes,
		res.ID,
	)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}

	return nil
}

// UpdateStatus обновляет статус бронирования и, если заданы, заметки администратора
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus, adminNotes *string) error {
	query := `
		UPDATE reservations
		SET status = $1, admin_notes = COALESCE($2, admin_notes)
		WHERE id = $3
	`

	if err := r.execOne(ctx, query, status, adminNotes, id); err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}

	return nil
}

// Delete удаляет бронирование
func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	if err := r.execOne(ctx, `DELETE FROM reservations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	return nil
}
