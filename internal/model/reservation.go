package model

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"   // Ожидает одобрения администратора
	ReservationStatusConfirmed ReservationStatus = "confirmed" // Подтверждено
	ReservationStatusCancelled ReservationStatus = "cancelled" // Отменено владельцем или администратором
	ReservationStatusRejected  ReservationStatus = "rejected"  // Отклонено администратором
)

// reservationTransitions допустимые переходы между статусами
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:   {ReservationStatusConfirmed, ReservationStatusRejected},
	ReservationStatusConfirmed: {ReservationStatusCancelled},
}

// IsValid проверяет, что статус входит в известный набор
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled, ReservationStatusRejected:
		return true
	}
	return false
}

// IsTerminal возвращает true для статусов, из которых нет переходов
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusCancelled || s == ReservationStatusRejected
}

// CanTransitionTo проверяет допустимость перехода from -> to
func (s ReservationStatus) CanTransitionTo(to ReservationStatus) bool {
	for _, next := range reservationTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID          int64             `json:"id"`
	RoomID      int64             `json:"room_id"`
	UserID      string            `json:"user_id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     time.Time         `json:"end_time"`
	Attendees   *int              `json:"attendees,omitempty"` // nil - не указано
	Status      ReservationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	AdminNotes  string            `json:"admin_notes,omitempty"`
}

// Overlaps проверяет пересечение полуинтервалов [StartTime, EndTime)
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && start.Before(r.EndTime)
}

// Covers проверяет, что момент t попадает в [StartTime, EndTime)
func (r *Reservation) Covers(t time.Time) bool {
	return !r.StartTime.After(t) && r.EndTime.After(t)
}

// ReservationPatch частичное обновление бронирования; nil поля не меняются
type ReservationPatch struct {
	RoomID      *int64             `json:"room_id,omitempty"`
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	StartTime   *time.Time         `json:"start_time,omitempty"`
	EndTime     *time.Time         `json:"end_time,omitempty"`
	Attendees   *int               `json:"attendees,omitempty"`
	Status      *ReservationStatus `json:"status,omitempty"`
	AdminNotes  *string            `json:"admin_notes,omitempty"`
}

// Apply накладывает заданные поля на копию бронирования
func (p ReservationPatch) Apply(r Reservation) Reservation {
	if p.RoomID != nil {
		r.RoomID = *p.RoomID
	}
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.StartTime != nil {
		r.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		r.EndTime = *p.EndTime
	}
	if p.Attendees != nil {
		attendees := *p.Attendees
		r.Attendees = &attendees
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.AdminNotes != nil {
		r.AdminNotes = *p.AdminNotes
	}
	return r
}

// TouchesSchedule сообщает, меняет ли патч комнату или время
func (p ReservationPatch) TouchesSchedule() bool {
	return p.RoomID != nil || p.StartTime != nil || p.EndTime != nil
}
