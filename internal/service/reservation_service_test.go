package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
	"github.com/Freeeeeet/meeting_rooms/internal/service"
)

func TestCreate_AssignsIDAndCreatedAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.now = time.Now()
	called := f.now

	res, err := f.svc.Reservations.Create(ctx, &model.Reservation{
		RoomID:      f.room.ID,
		Title:       "Executive Meeting",
		Description: "Quarterly review",
		StartTime:   at(10, 0),
		EndTime:     at(12, 0),
		Attendees:   intPtr(8),
		Status:      model.ReservationStatusConfirmed,
	})
	require.NoError(t, err)

	assert.NotZero(t, res.ID)
	assert.False(t, res.CreatedAt.Before(called))
	assert.Equal(t, "user1", res.UserID)
	// Переданный статус игнорируется
	assert.Equal(t, model.ReservationStatusPending, res.Status)

	all, err := f.svc.Reservations.List(ctx, service.ReservationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, res.ID, all[0].ID)
	assert.Equal(t, "Executive Meeting", all[0].Title)
}

func TestCreate_IDsStayUniqueAfterDeletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.reserve(t, f.other.ID, at(9, 0), at(10, 0))
	require.NoError(t, f.svc.Rooms.Delete(ctx, f.other.ID))

	second := f.reserve(t, f.room.ID, at(9, 0), at(10, 0))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreate_AutoApprove(t *testing.T) {
	f := newFixture(t)
	f.setAutoApprove(t, true)

	res := f.reserve(t, f.room.ID, at(10, 0), at(11, 0))
	assert.Equal(t, model.ReservationStatusConfirmed, res.Status)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		res  model.Reservation
		kind error
	}{
		{"empty title", model.Reservation{RoomID: f.room.ID, StartTime: at(10, 0), EndTime: at(11, 0)}, service.ErrValidation},
		{"end before start", model.Reservation{RoomID: f.room.ID, Title: "x", StartTime: at(11, 0), EndTime: at(10, 0)}, service.ErrValidation},
		{"zero length", model.Reservation{RoomID: f.room.ID, Title: "x", StartTime: at(11, 0), EndTime: at(11, 0)}, service.ErrValidation},
		{"before opening", model.Reservation{RoomID: f.room.ID, Title: "x", StartTime: at(7, 0), EndTime: at(9, 0)}, service.ErrValidation},
		{"after closing", model.Reservation{RoomID: f.room.ID, Title: "x", StartTime: at(20, 0), EndTime: at(21, 30)}, service.ErrValidation},
		{"over capacity", model.Reservation{RoomID: f.other.ID, Title: "x", StartTime: at(10, 0), EndTime: at(11, 0), Attendees: intPtr(5)}, service.ErrValidation},
		{"unknown room", model.Reservation{RoomID: 999, Title: "x", StartTime: at(10, 0), EndTime: at(11, 0)}, service.ErrNotFound},
		{"unknown user", model.Reservation{RoomID: f.room.ID, UserID: "ghost", Title: "x", StartTime: at(10, 0), EndTime: at(11, 0)}, service.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.res
			_, err := f.svc.Reservations.Create(ctx, &res)
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	all, err := f.svc.Reservations.List(ctx, service.ReservationFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreate_LastSlotIsBookable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.reserve(t, f.room.ID, at(20, 0), at(21, 0))

	days, err := f.svc.Schedule.RoomSchedule(ctx, f.room.ID, at(0, 0))
	require.NoError(t, err)
	last := days[0].TimeSlots[len(days[0].TimeSlots)-1]
	assert.Equal(t, 20, last.Time.Hour())
	assert.False(t, last.Available)
	assert.Equal(t, res.ID, last.Reservation.ID)
}

func TestCreate_UnavailableRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Rooms.ToggleAvailability(ctx, f.room.ID)
	require.NoError(t, err)

	_, err = f.svc.Reservations.Create(ctx, &model.Reservation{RoomID: f.room.ID, Title: "x", StartTime: at(10, 0), EndTime: at(11, 0)})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestCreate_RejectsOverlapWithConfirmed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setAutoApprove(t, true)

	f.reserve(t, f.room.ID, at(10, 0), at(12, 0))

	_, err := f.svc.Reservations.Create(ctx, &model.Reservation{RoomID: f.room.ID, Title: "x", StartTime: at(11, 0), EndTime: at(13, 0)})
	assert.ErrorIs(t, err, service.ErrConflict)

	// Смежный интервал и другая комната не конфликтуют
	f.reserve(t, f.room.ID, at(12, 0), at(13, 0))
	f.reserve(t, f.other.ID, at(10, 0), at(12, 0))
}

func TestApprove_ChecksConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.reserve(t, f.room.ID, at(10, 0), at(12, 0))
	b := f.reserve(t, f.room.ID, at(11, 0), at(13, 0))

	approved, err := f.svc.Reservations.Approve(ctx, a.ID, strPtr("ok"))
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusConfirmed, approved.Status)
	assert.Equal(t, "ok", approved.AdminNotes)

	_, err = f.svc.Reservations.Approve(ctx, b.ID, nil)
	assert.ErrorIs(t, err, service.ErrConflict)

	rejected, err := f.svc.Reservations.Reject(ctx, b.ID, strPtr("overlaps #1"))
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusRejected, rejected.Status)

	stored, err := f.svc.Reservations.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusRejected, stored.Status)
	assert.Equal(t, "overlaps #1", stored.AdminNotes)
}

func TestStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending := f.reserve(t, f.room.ID, at(9, 0), at(10, 0))

	// pending нельзя отменить, только одобрить или отклонить
	_, err := f.svc.Reservations.Cancel(ctx, pending.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	_, err = f.svc.Reservations.Approve(ctx, pending.ID, nil)
	require.NoError(t, err)

	_, err = f.svc.Reservations.Approve(ctx, pending.ID, nil)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
	_, err = f.svc.Reservations.Reject(ctx, pending.ID, nil)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	cancelled, err := f.svc.Reservations.Cancel(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusCancelled, cancelled.Status)

	// cancelled терминальный
	_, err = f.svc.Reservations.Approve(ctx, pending.ID, nil)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
	_, err = f.svc.Reservations.Update(ctx, pending.ID, model.ReservationPatch{StartTime: timePtr(at(15, 0))})
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	rejected := f.reserve(t, f.room.ID, at(11, 0), at(12, 0))
	_, err = f.svc.Reservations.Reject(ctx, rejected.ID, nil)
	require.NoError(t, err)
	_, err = f.svc.Reservations.Cancel(ctx, rejected.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestCancel_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setAutoApprove(t, true)

	res := f.reserve(t, f.room.ID, at(14, 0), at(15, 0))

	first, err := f.svc.Reservations.Cancel(ctx, res.ID)
	require.NoError(t, err)
	second, err := f.svc.Reservations.Cancel(ctx, res.ID)
	require.NoError(t, err)

	assert.Equal(t, model.ReservationStatusCancelled, first.Status)
	assert.Equal(t, model.ReservationStatusCancelled, second.Status)

	_, err = f.svc.Reservations.Cancel(ctx, 999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdate_PartialMerge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.reserve(t, f.room.ID, at(9, 0), at(10, 0))

	updated, err := f.svc.Reservations.Update(ctx, res.ID, model.ReservationPatch{
		Title:     strPtr("Renamed"),
		Attendees: intPtr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 3, *updated.Attendees)
	assert.Equal(t, res.StartTime, updated.StartTime)
	assert.Equal(t, res.CreatedAt, updated.CreatedAt)

	status := model.ReservationStatusConfirmed
	updated, err = f.svc.Reservations.Update(ctx, res.ID, model.ReservationPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusConfirmed, updated.Status)

	bad := model.ReservationStatusPending
	_, err = f.svc.Reservations.Update(ctx, res.ID, model.ReservationPatch{Status: &bad})
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestUpdate_RescheduleChecksConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setAutoApprove(t, true)

	f.reserve(t, f.room.ID, at(10, 0), at(12, 0))
	moving := f.reserve(t, f.room.ID, at(14, 0), at(15, 0))

	_, err := f.svc.Reservations.Update(ctx, moving.ID, model.ReservationPatch{
		StartTime: timePtr(at(11, 0)),
		EndTime:   timePtr(at(12, 0)),
	})
	assert.ErrorIs(t, err, service.ErrConflict)

	// Сдвиг внутри собственного интервала не конфликтует сам с собой
	updated, err := f.svc.Reservations.Update(ctx, moving.ID, model.ReservationPatch{EndTime: timePtr(at(16, 0))})
	require.NoError(t, err)
	assert.Equal(t, at(16, 0), updated.EndTime)
}

func TestUpdate_NotFoundLeavesCollectionsUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.reserve(t, f.room.ID, at(9, 0), at(10, 0))
	before, err := f.svc.Reservations.List(ctx, service.ReservationFilter{})
	require.NoError(t, err)

	_, err = f.svc.Reservations.Update(ctx, res.ID+100, model.ReservationPatch{Title: strPtr("x")})
	assert.ErrorIs(t, err, service.ErrNotFound)

	after, err := f.svc.Reservations.List(ctx, service.ReservationFilter{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	keep := f.reserve(t, f.room.ID, at(9, 0), at(10, 0))
	gone := f.reserve(t, f.room.ID, at(11, 0), at(12, 0))

	require.NoError(t, f.svc.Reservations.Delete(ctx, gone.ID))

	_, err := f.svc.Reservations.Get(ctx, gone.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	all, err := f.svc.Reservations.List(ctx, service.ReservationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)
}

func TestDelete_NotFoundLeavesCollectionsUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.reserve(t, f.room.ID, at(9, 0), at(10, 0))
	before, err := f.svc.Reservations.List(ctx, service.ReservationFilter{})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Reservations.Delete(ctx, res.ID+100), service.ErrNotFound)

	after, err := f.svc.Reservations.List(ctx, service.ReservationFilter{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestList_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.reserve(t, f.room.ID, at(9, 0), at(10, 0))
	_, err := f.svc.Reservations.Create(ctx, &model.Reservation{
		RoomID: f.other.ID, UserID: "user2", Title: "Kickoff", StartTime: at(9, 0), EndTime: at(10, 0),
	})
	require.NoError(t, err)
	_, err = f.svc.Reservations.Approve(ctx, a.ID, nil)
	require.NoError(t, err)

	byUser, err := f.svc.Reservations.List(ctx, service.ReservationFilter{UserID: "user2"})
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, "Kickoff", byUser[0].Title)

	byRoomAndStatus, err := f.svc.Reservations.List(ctx, service.ReservationFilter{RoomID: f.room.ID, Status: model.ReservationStatusConfirmed})
	require.NoError(t, err)
	require.Len(t, byRoomAndStatus, 1)
	assert.Equal(t, a.ID, byRoomAndStatus[0].ID)

	forRoom, err := f.svc.Reservations.ListForRoom(ctx, f.other.ID)
	require.NoError(t, err)
	assert.Len(t, forRoom, 1)

	_, err = f.svc.Reservations.ListForRoom(ctx, 999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPending_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		f.now = day.AddDate(0, 0, -3+i)
		ids = append(ids, f.reserve(t, f.room.ID, at(9+i, 0), at(10+i, 0)).ID)
	}

	pending, err := f.svc.Reservations.Pending(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, []int64{ids[2], ids[1], ids[0]}, []int64{pending[0].ID, pending[1].ID, pending[2].ID})

	limited, err := f.svc.Reservations.Pending(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestForUser_SplitsTabs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setAutoApprove(t, true)

	past := f.reserve(t, f.room.ID, at(9, 0), at(10, 0))
	upcoming := f.reserve(t, f.room.ID, at(15, 0), at(16, 0))
	cancelled := f.reserve(t, f.room.ID, at(17, 0), at(18, 0))
	_, err := f.svc.Reservations.Cancel(ctx, cancelled.ID)
	require.NoError(t, err)

	f.now = at(12, 0)
	tabs, err := f.svc.Reservations.ForUser(ctx, "user1")
	require.NoError(t, err)

	require.Len(t, tabs.Upcoming, 1)
	assert.Equal(t, upcoming.ID, tabs.Upcoming[0].ID)
	require.Len(t, tabs.Past, 1)
	assert.Equal(t, past.ID, tabs.Past[0].ID)
	require.Len(t, tabs.Cancelled, 1)
	assert.Equal(t, cancelled.ID, tabs.Cancelled[0].ID)

	_, err = f.svc.Reservations.ForUser(ctx, "ghost")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestExpirePending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	started := f.reserve(t, f.room.ID, at(9, 0), at(10, 0))
	later := f.reserve(t, f.room.ID, at(15, 0), at(16, 0))
	confirmed := f.reserve(t, f.room.ID, at(8, 0), at(9, 0))
	_, err := f.svc.Reservations.Approve(ctx, confirmed.ID, nil)
	require.NoError(t, err)

	f.now = at(9, 0)
	n, err := f.svc.Reservations.ExpirePending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.svc.Reservations.Get(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusRejected, got.Status)
	assert.NotEmpty(t, got.AdminNotes)

	got, err = f.svc.Reservations.Get(ctx, later.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusPending, got.Status)

	got, err = f.svc.Reservations.Get(ctx, confirmed.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusConfirmed, got.Status)
}
