package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
	"github.com/Freeeeeet/meeting_rooms/internal/repository"
)

func TestRooms_IDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	rooms := NewStore().Rooms()

	first := &model.Room{Name: "Executive Suite", Capacity: 12}
	second := &model.Room{Name: "Focus Room", Capacity: 4}
	require.NoError(t, rooms.Create(ctx, first))
	require.NoError(t, rooms.Create(ctx, second))
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	require.NoError(t, rooms.Delete(ctx, first.ID))

	third := &model.Room{Name: "Conference Hall", Capacity: 30}
	require.NoError(t, rooms.Create(ctx, third))
	assert.Equal(t, int64(3), third.ID)

	list, err := rooms.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []int64{2, 3}, []int64{list[0].ID, list[1].ID})
}

func TestRooms_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	rooms := NewStore().Rooms()

	room := &model.Room{Name: "Brainstorm Room", Capacity: 6, Features: []string{"Whiteboard"}}
	require.NoError(t, rooms.Create(ctx, room))

	room.Features[0] = "Mutated"
	got, err := rooms.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Whiteboard"}, got.Features)

	got.Name = "Changed"
	again, err := rooms.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "Brainstorm Room", again.Name)
}

func TestRooms_MissingRecords(t *testing.T) {
	ctx := context.Background()
	rooms := NewStore().Rooms()

	got, err := rooms.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, rooms.Update(ctx, &model.Room{ID: 42}), repository.ErrNotFound)
	assert.ErrorIs(t, rooms.Delete(ctx, 42), repository.ErrNotFound)
}

func TestReservations_CreateAndFilter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	store := NewStore().WithClock(func() time.Time { return now })
	reservations := store.Reservations()

	a := &model.Reservation{RoomID: 1, UserID: "user1", Title: "Standup", Status: model.ReservationStatusPending}
	b := &model.Reservation{RoomID: 2, UserID: "user2", Title: "Review", Status: model.ReservationStatusConfirmed}
	c := &model.Reservation{RoomID: 1, UserID: "user2", Title: "Retro", Status: model.ReservationStatusConfirmed}
	for _, res := range []*model.Reservation{a, b, c} {
		require.NoError(t, reservations.Create(ctx, res))
		assert.Equal(t, now, res.CreatedAt)
	}

	byRoom, err := reservations.GetByRoomID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Standup", "Retro"}, titles(byRoom))

	byUser, err := reservations.GetByUserID(ctx, "user2")
	require.NoError(t, err)
	assert.Equal(t, []string{"Review", "Retro"}, titles(byUser))

	confirmed, err := reservations.GetByStatus(ctx, model.ReservationStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, []string{"Review", "Retro"}, titles(confirmed))

	empty, err := reservations.GetByRoomID(ctx, 99)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestReservations_UpdateKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store := NewStore().WithClock(func() time.Time { return created })
	reservations := store.Reservations()

	res := &model.Reservation{RoomID: 1, Title: "Planning", Status: model.ReservationStatusPending}
	require.NoError(t, reservations.Create(ctx, res))

	updated := *res
	updated.Title = "Planning v2"
	updated.CreatedAt = time.Time{}
	require.NoError(t, reservations.Update(ctx, &updated))

	got, err := reservations.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Planning v2", got.Title)
	assert.Equal(t, created, got.CreatedAt)

	notes := "approved by facilities"
	require.NoError(t, reservations.UpdateStatus(ctx, res.ID, model.ReservationStatusConfirmed, &notes))
	got, err = reservations.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusConfirmed, got.Status)
	assert.Equal(t, notes, got.AdminNotes)

	assert.ErrorIs(t, reservations.UpdateStatus(ctx, 999, model.ReservationStatusCancelled, nil), repository.ErrNotFound)
}

func TestReservations_Delete(t *testing.T) {
	ctx := context.Background()
	reservations := NewStore().Reservations()

	res := &model.Reservation{RoomID: 1, UserID: "user1", Title: "Standup", Status: model.ReservationStatusPending}
	require.NoError(t, reservations.Create(ctx, res))

	require.NoError(t, reservations.Delete(ctx, res.ID))
	got, err := reservations.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, reservations.Delete(ctx, res.ID), repository.ErrNotFound)

	next := &model.Reservation{RoomID: 1, UserID: "user1", Title: "Retro", Status: model.ReservationStatusPending}
	require.NoError(t, reservations.Create(ctx, next))
	assert.Greater(t, next.ID, res.ID)
}

func TestUsers_Duplicate(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	require.NoError(t, users.Create(ctx, &model.User{ID: "user1", Name: "John Doe"}))
	assert.ErrorIs(t, users.Create(ctx, &model.User{ID: "user1", Name: "Jane Smith"}), repository.ErrDuplicate)

	got, err := users.GetByID(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got.Name)

	require.NoError(t, users.Delete(ctx, "user1"))
	assert.ErrorIs(t, users.Delete(ctx, "user1"), repository.ErrNotFound)
}

func TestSettings_RoundTrip(t *testing.T) {
	ctx := context.Background()
	settings := NewStore().Settings()

	got, err := settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Settings{EmailNotifications: true}, *got)

	require.NoError(t, settings.Save(ctx, &model.Settings{AutoApprove: true, MaintenanceMode: true}))
	got, err = settings.Get(ctx)
	require.NoError(t, err)
	assert.True(t, got.AutoApprove)
	assert.True(t, got.MaintenanceMode)
	assert.False(t, got.EmailNotifications)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore().Rooms().List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func titles(reservations []*model.Reservation) []string {
	out := make([]string, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, res.Title)
	}
	return out
}
