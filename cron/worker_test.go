package cron

import (
	"context"
	"errors"
	"testing"

	"mightymoves/models"
	"mightymoves/services/notification"
	"mightymoves/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleBookingCreatedPublishes(t *testing.T) {
	feed := notification.NewMemoryFeed()
	task, _, err := tasks.NewBookingCreatedTask(models.Booking{ID: "12", Customer: "Dana"})
	require.NoError(t, err)

	require.NoError(t, HandleBookingCreated(feed)(context.Background(), task))

	list, _ := feed.List(context.Background())
	require.Len(t, list, 1)
	assert.Equal(t, "Dana has made a new booking!", list[0].Message)
	assert.Equal(t, models.BookingID("12"), list[0].Booking.ID)
}

func TestHandleBookingCreatedSkipsBadPayload(t *testing.T) {
	feed := notification.NewMemoryFeed()
	task := asynq.NewTask(tasks.TypeBookingCreated, []byte("not json"))

	err := HandleBookingCreated(feed)(context.Background(), task)
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
