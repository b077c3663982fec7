package httpapi

import (
	"time"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
)

type createRoomRequest struct {
	Name        string   `json:"name" validate:"required"`
	Capacity    int      `json:"capacity" validate:"required,gt=0"`
	Location    string   `json:"location"`
	Features    []string `json:"features"`
	Image       string   `json:"image" validate:"omitempty,url"`
	IsAvailable *bool    `json:"is_available"`
}

func (r createRoomRequest) toModel() *model.Room {
	return &model.Room{
		Name:        r.Name,
		Capacity:    r.Capacity,
		Location:    r.Location,
		Features:    r.Features,
		Image:       r.Image,
		IsAvailable: r.IsAvailable,
	}
}

type updateRoomRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=1"`
	Capacity    *int      `json:"capacity" validate:"omitempty,gt=0"`
	Location    *string   `json:"location"`
	Features    *[]string `json:"features"`
	Image       *string   `json:"image" validate:"omitempty,url"`
	IsAvailable *bool     `json:"is_available"`
}

func (r updateRoomRequest) toPatch() model.RoomPatch {
	return model.RoomPatch{
		Name:        r.Name,
		Capacity:    r.Capacity,
		Location:    r.Location,
		Features:    r.Features,
		Image:       r.Image,
		IsAvailable: r.IsAvailable,
	}
}

type createReservationRequest struct {
	RoomID      int64     `json:"room_id" validate:"required,gt=0"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Attendees   *int      `json:"attendees" validate:"omitempty,gt=0"`
}

func (r createReservationRequest) toModel() *model.Reservation {
	return &model.Reservation{
		RoomID:      r.RoomID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Attendees:   r.Attendees,
	}
}

type updateReservationRequest struct {
	RoomID      *int64     `json:"room_id" validate:"omitempty,gt=0"`
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Attendees   *int       `json:"attendees" validate:"omitempty,gt=0"`
	Status      *string    `json:"status" validate:"omitempty,oneof=pending confirmed cancelled rejected"`
	AdminNotes  *string    `json:"admin_notes"`
}

func (r updateReservationRequest) toPatch() model.ReservationPatch {
	patch := model.ReservationPatch{
		RoomID:      r.RoomID,
		Title:       r.Title,
		Description: r.Description,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Attendees:   r.Attendees,
		AdminNotes:  r.AdminNotes,
	}
	if r.Status != nil {
		status := model.ReservationStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

type reviewRequest struct {
	AdminNotes *string `json:"admin_notes"`
}

type createUserRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department"`
	IsAdmin    bool   `json:"is_admin"`
}

func (r createUserRequest) toModel() *model.User {
	return &model.User{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Department: r.Department,
		IsAdmin:    r.IsAdmin,
	}
}

type updateUserRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Department *string `json:"department"`
	IsAdmin    *bool   `json:"is_admin"`
}

func (r updateUserRequest) toPatch() model.UserPatch {
	return model.UserPatch{
		Name:       r.Name,
		Email:      r.Email,
		Department: r.Department,
		IsAdmin:    r.IsAdmin,
	}
}

type settingsRequest struct {
	AutoApprove        bool `json:"auto_approve"`
	EmailNotifications bool `json:"email_notifications"`
	MaintenanceMode    bool `json:"maintenance_mode"`
}
