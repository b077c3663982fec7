package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
	"github.com/Freeeeeet/meeting_rooms/internal/repository"
	"github.com/Freeeeeet/meeting_rooms/internal/repository/memory"
)

func TestWithLatency_ZeroDelayReturnsSameStore(t *testing.T) {
	store := memory.NewStore()
	assert.Same(t, store, repository.WithLatency(store, 0))
}

func TestWithLatency_DelaysCalls(t *testing.T) {
	store := repository.WithLatency(memory.NewStore(), 20*time.Millisecond)

	started := time.Now()
	require.NoError(t, store.Rooms().Create(context.Background(), &model.Room{Name: "Focus Room", Capacity: 4}))
	assert.GreaterOrEqual(t, time.Since(started), 20*time.Millisecond)

	rooms, err := store.Rooms().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}

func TestWithLatency_CancelledContext(t *testing.T) {
	store := repository.WithLatency(memory.NewStore(), time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := store.Reservations().List(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
