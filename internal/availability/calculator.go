// Package availability строит почасовую сетку занятости комнаты.
//
// Функции пакета чистые: они не обращаются к хранилищу и не смотрят на статус
// бронирований. Отбор бронирований, которые должны блокировать слоты, делает
// вызывающий код.
package availability

import (
	"time"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
)

const (
	// FirstHour первый слот рабочего дня
	FirstHour = 8
	// LastHour последний слот рабочего дня (включительно)
	LastHour = 20
	// SlotsPerDay количество часовых слотов в дне
	SlotsPerDay = LastHour - FirstHour + 1
	// ClosingHour конец последнего слота
	ClosingHour = LastHour + 1
	// DaysPerWeek длина расписания, возвращаемого WeekSchedule
	DaysPerWeek = 7

	DateLayout = "2006-01-02"
)

// StartOfDay обнуляет время, оставляя дату в часовом поясе t
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDate разбирает "YYYY-MM-DD" в полночь указанного часового пояса
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// DaySlots возвращает слоты с FirstHour по LastHour для даты day.
// Слот занят, если у какого-либо бронирования комнаты roomID start <= slot < end.
func DaySlots(day time.Time, roomID int64, reservations []*model.Reservation) []model.TimeSlot {
	day = StartOfDay(day)
	slots := make([]model.TimeSlot, 0, SlotsPerDay)

	for hour := FirstHour; hour <= LastHour; hour++ {
		slotTime := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
		slot := model.TimeSlot{Time: slotTime, Available: true}

		for _, res := range reservations {
			if res.RoomID != roomID {
				continue
			}
			if res.Covers(slotTime) {
				slot.Available = false
				slot.Reservation = res
				break
			}
		}

		slots = append(slots, slot)
	}

	return slots
}

// Day строит расписание одного дня
func Day(day time.Time, roomID int64, reservations []*model.Reservation) model.DaySchedule {
	return model.DaySchedule{
		Date:      day.Format(DateLayout),
		TimeSlots: DaySlots(day, roomID, reservations),
	}
}

// WeekSchedule строит расписание на DaysPerWeek последовательных дней, начиная со start.
// Дни считаются независимо друг от друга.
func WeekSchedule(start time.Time, roomID int64, reservations []*model.Reservation) []model.DaySchedule {
	start = StartOfDay(start)
	week := make([]model.DaySchedule, 0, DaysPerWeek)

	for i := 0; i < DaysPerWeek; i++ {
		week = append(week, Day(start.AddDate(0, 0, i), roomID, reservations))
	}

	return week
}

// WithinBusinessHours проверяет, что [start, end) лежит внутри рабочего окна дня start.
// Окно заканчивается вместе с последним слотом, то есть в ClosingHour.
func WithinBusinessHours(start, end time.Time) bool {
	open := time.Date(start.Year(), start.Month(), start.Day(), FirstHour, 0, 0, 0, start.Location())
	closing := time.Date(start.Year(), start.Month(), start.Day(), ClosingHour, 0, 0, 0, start.Location())
	return !start.Before(open) && !end.After(closing)
}
