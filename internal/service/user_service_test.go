package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
	"github.com/Freeeeeet/meeting_rooms/internal/service"
)

func TestUserCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.svc.Users.Create(ctx, &model.User{Name: "Bob", Email: "bob@company.com", Department: "Sales"})
	require.NoError(t, err)
	_, err = uuid.Parse(user.ID)
	assert.NoError(t, err)

	_, err = f.svc.Users.Create(ctx, &model.User{ID: "user1", Name: "Dup", Email: "dup@company.com"})
	assert.ErrorIs(t, err, service.ErrConflict)

	for _, email := range []string{"", "nomail", "a@", "@company.com"} {
		_, err = f.svc.Users.Create(ctx, &model.User{Name: "NoMail", Email: email})
		assert.ErrorIs(t, err, service.ErrValidation, email)
	}

	users, err := f.svc.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestUserCurrent(t *testing.T) {
	f := newFixture(t)

	user, err := f.svc.Users.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user1", user.ID)
	assert.Equal(t, "John Doe", user.Name)
}

func TestUserUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dept := "Engineering"
	updated, err := f.svc.Users.Update(ctx, "user2", model.UserPatch{Department: &dept})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", updated.Department)
	assert.Equal(t, "Jane Smith", updated.Name)

	_, err = f.svc.Users.Update(ctx, "ghost", model.UserPatch{Department: &dept})
	assert.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, f.svc.Users.Delete(ctx, "user2"))
	_, err = f.svc.Users.Get(ctx, "user2")
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.ErrorIs(t, f.svc.Users.Delete(ctx, "user2"), service.ErrNotFound)
}

func TestUserDelete_ActiveReservations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Reservations.Create(ctx, &model.Reservation{
		RoomID:    f.room.ID,
		UserID:    "user2",
		Title:     "Design Review",
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Users.Delete(ctx, "user2"), service.ErrConflict)
	_, err = f.svc.Users.Get(ctx, "user2")
	require.NoError(t, err)

	_, err = f.svc.Reservations.Reject(ctx, res.ID, nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.Users.Delete(ctx, "user2"))

	// Отклонённое бронирование удалено вместе с пользователем
	all, err := f.svc.Reservations.List(ctx, service.ReservationFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	stats, err := f.svc.Admin.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.CancelledReservations)
}
