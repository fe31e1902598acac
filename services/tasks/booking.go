package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"mightymoves/models"

	"github.com/hibiken/asynq"
)

const TypeBookingCreated = "notification:booking_created"

// NewBookingCreatedTask wraps a freshly created booking for the notification worker.
func NewBookingCreatedTask(b models.Booking) (*asynq.Task, []asynq.Option, error) {
	payload, err := json.Marshal(b)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingCreated, payload)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}

// ParseBookingCreatedTask reads the booking carried by a task.
func ParseBookingCreatedTask(t *asynq.Task) (models.Booking, error) {
	var b models.Booking
	if err := json.Unmarshal(t.Payload(), &b); err != nil {
		return b, fmt.Errorf("invalid booking payload: %w", err)
	}
	return b, nil
}
