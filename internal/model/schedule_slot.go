package model

import "time"

// TimeSlot часовой слот расписания комнаты
type TimeSlot struct {
	Time        time.Time    `json:"time"`
	Available   bool         `json:"available"`
	Reservation *Reservation `json:"reservation,omitempty"` // бронирование, занимающее слот
}

// DaySchedule слоты одного дня
type DaySchedule struct {
	Date      string     `json:"date"` // "YYYY-MM-DD"
	TimeSlots []TimeSlot `json:"time_slots"`
}

// Settings системные настройки администратора
type Settings struct {
	AutoApprove        bool `json:"auto_approve"`        // Создавать бронирования сразу подтверждёнными
	EmailNotifications bool `json:"email_notifications"` // Хранится, рассылка не выполняется
	MaintenanceMode    bool `json:"maintenance_mode"`    // Блокирует изменения вне админки
}

// AdminStats сводка для панели администратора
type AdminStats struct {
	TotalRooms            int `json:"total_rooms"`
	AvailableRooms        int `json:"available_rooms"`
	PendingReservations   int `json:"pending_reservations"`
	ConfirmedReservations int `json:"confirmed_reservations"`
	CancelledReservations int `json:"cancelled_reservations"` // cancelled + rejected
}
