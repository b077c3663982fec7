package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
	"github.com/Freeeeeet/meeting_rooms/internal/repository/memory"
	"github.com/Freeeeeet/meeting_rooms/internal/service"
)

// day понедельник, от которого отсчитываются бронирования в тестах
var day = time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

type fixture struct {
	store *memory.Store
	svc   *service.Services
	room  *model.Room
	other *model.Room
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store: memory.NewStore(),
		now:   day.AddDate(0, 0, -1),
	}
	f.svc = service.New(f.store, service.Options{
		Location:      time.UTC,
		CurrentUserID: "user1",
		Now:           func() time.Time { return f.now },
	}, zap.NewNop())

	ctx := context.Background()

	_, err := f.svc.Users.Create(ctx, &model.User{ID: "user1", Name: "John Doe", Email: "john.doe@company.com"})
	require.NoError(t, err)
	_, err = f.svc.Users.Create(ctx, &model.User{ID: "user2", Name: "Jane Smith", Email: "jane.smith@company.com"})
	require.NoError(t, err)

	f.room, err = f.svc.Rooms.Create(ctx, &model.Room{Name: "Executive Suite", Capacity: 12, Location: "Building A"})
	require.NoError(t, err)
	f.other, err = f.svc.Rooms.Create(ctx, &model.Room{Name: "Focus Room", Capacity: 4, Location: "Building C"})
	require.NoError(t, err)

	return f
}

func (f *fixture) setAutoApprove(t *testing.T, on bool) {
	t.Helper()
	settings, err := f.svc.Admin.Settings(context.Background())
	require.NoError(t, err)
	settings.AutoApprove = on
	_, err = f.svc.Admin.UpdateSettings(context.Background(), settings)
	require.NoError(t, err)
}

func (f *fixture) reserve(t *testing.T, roomID int64, start, end time.Time) *model.Reservation {
	t.Helper()
	res, err := f.svc.Reservations.Create(context.Background(), &model.Reservation{
		RoomID:    roomID,
		Title:     "Meeting",
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)
	return res
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func timePtr(v time.Time) *time.Time { return &v }
