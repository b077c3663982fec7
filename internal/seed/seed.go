// Package seed заполняет пустое хранилище демонстрационными данными из YAML.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
	"github.com/Freeeeeet/meeting_rooms/internal/repository"
)

//go:embed seed.yaml
var defaultSeed []byte

// ClockTime время суток в формате "HH:MM"
type ClockTime struct {
	Hour   int
	Minute int
}

// UnmarshalYAML implements yaml.Unmarshaler for ClockTime.
func (c *ClockTime) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	c.Hour, c.Minute = t.Hour(), t.Minute()
	return nil
}

type Room struct {
	Name     string   `yaml:"name"`
	Capacity int      `yaml:"capacity"`
	Location string   `yaml:"location"`
	Features []string `yaml:"features"`
	Image    string   `yaml:"image"`
}

type User struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Department string `yaml:"department"`
	IsAdmin    bool   `yaml:"is_admin"`
}

// Reservation бронирование относительно даты загрузки
type Reservation struct {
	Room           string                  `yaml:"room"` // имя комнаты из rooms
	User           string                  `yaml:"user"`
	Title          string                  `yaml:"title"`
	Description    string                  `yaml:"description"`
	Day            int                     `yaml:"day"` // смещение в днях от сегодня
	Start          ClockTime               `yaml:"start"`
	End            ClockTime               `yaml:"end"`
	Attendees      *int                    `yaml:"attendees"`
	Status         model.ReservationStatus `yaml:"status"`
	CreatedDaysAgo int                     `yaml:"created_days_ago"`
}

type Data struct {
	Rooms        []Room        `yaml:"rooms"`
	Users        []User        `yaml:"users"`
	Reservations []Reservation `yaml:"reservations"`
}

// Load читает данные из файла path, при пустом path - встроенный набор
func Load(path string) (*Data, error) {
	raw := defaultSeed
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}
	return Parse(raw)
}

// Parse разбирает YAML и проверяет ссылки между записями
func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	rooms := make(map[string]bool, len(data.Rooms))
	for _, room := range data.Rooms {
		rooms[room.Name] = true
	}
	users := make(map[string]bool, len(data.Users))
	for _, user := range data.Users {
		users[user.ID] = true
	}

	for i, res := range data.Reservations {
		if !rooms[res.Room] {
			return nil, fmt.Errorf("seed reservation %d: unknown room %q", i, res.Room)
		}
		if !users[res.User] {
			return nil, fmt.Errorf("seed reservation %d: unknown user %q", i, res.User)
		}
		if res.Status == "" {
			data.Reservations[i].Status = model.ReservationStatusConfirmed
		} else if !res.Status.IsValid() {
			return nil, fmt.Errorf("seed reservation %d: unknown status %q", i, res.Status)
		}
	}

	return &data, nil
}

// Apply записывает данные в пустое хранилище. Если в любой из коллекций уже есть
// записи, хранилище не трогается.
// Даты бронирований отсчитываются от now в часовом поясе loc.
func Apply(ctx context.Context, store repository.Store, data *Data, now time.Time, loc *time.Location, logger *zap.Logger) error {
	empty, err := isEmpty(ctx, store)
	if err != nil {
		return err
	}
	if !empty {
		logger.Info("Store is not empty, skipping seed")
		return nil
	}

	roomIDs := make(map[string]int64, len(data.Rooms))
	for _, r := range data.Rooms {
		room := &model.Room{
			Name:     r.Name,
			Capacity: r.Capacity,
			Location: r.Location,
			Features: r.Features,
			Image:    r.Image,
		}
		if err := store.Rooms().Create(ctx, room); err != nil {
			return fmt.Errorf("seed room %q: %w", r.Name, err)
		}
		roomIDs[r.Name] = room.ID
	}

	for _, u := range data.Users {
		user := &model.User{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Department: u.Department,
			IsAdmin:    u.IsAdmin,
		}
		if err := store.Users().Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %q: %w", u.ID, err)
		}
	}

	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	for _, r := range data.Reservations {
		date := today.AddDate(0, 0, r.Day)
		res := &model.Reservation{
			RoomID:      roomIDs[r.Room],
			UserID:      r.User,
			Title:       r.Title,
			Description: r.Description,
			StartTime:   time.Date(date.Year(), date.Month(), date.Day(), r.Start.Hour, r.Start.Minute, 0, 0, loc),
			EndTime:     time.Date(date.Year(), date.Month(), date.Day(), r.End.Hour, r.End.Minute, 0, 0, loc),
			Attendees:   r.Attendees,
			Status:      r.Status,
			CreatedAt:   now.AddDate(0, 0, -r.CreatedDaysAgo),
		}
		if err := store.Reservations().Create(ctx, res); err != nil {
			return fmt.Errorf("seed reservation %q: %w", r.Title, err)
		}
	}

	logger.Info("Store seeded",
		zap.Int("rooms", len(data.Rooms)),
		zap.Int("users", len(data.Users)),
		zap.Int("reservations", len(data.Reservations)),
	)

	return nil
}

func isEmpty(ctx context.Context, store repository.Store) (bool, error) {
	rooms, err := store.Rooms().List(ctx)
	if err != nil {
		return false, fmt.Errorf("list rooms: %w", err)
	}
	users, err := store.Users().List(ctx)
	if err != nil {
		return false, fmt.Errorf("list users: %w", err)
	}
	reservations, err := store.Reservations().List(ctx)
	if err != nil {
		return false, fmt.Errorf("list reservations: %w", err)
	}
	return len(rooms) == 0 && len(users) == 0 && len(reservations) == 0, nil
}
