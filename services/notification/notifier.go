package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mightymoves/models"
	"mightymoves/services/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Notifier announces new bookings to admins.
type Notifier interface {
	BookingCreated(ctx context.Context, b models.Booking) error
}

// BookingMessage is the admin-facing text for a new booking.
func BookingMessage(b models.Booking) string {
	who := b.Customer
	if who == "" {
		who = "A user"
	}
	return who + " has made a new booking!"
}

// NewBookingNotification builds the feed entry for b.
func NewBookingNotification(b models.Booking, now time.Time) models.Notification {
	snapshot := b
	return models.Notification{
		ID:        uuid.New().String(),
		Message:   BookingMessage(b),
		Timestamp: now.UTC(),
		Booking:   &snapshot,
	}
}

// FeedNotifier writes straight into the feed.
type FeedNotifier struct {
	Feed Feed
	now  func() time.Time
}

func NewFeedNotifier(feed Feed) *FeedNotifier {
	return &FeedNotifier{Feed: feed, now: time.Now}
}

func (n *FeedNotifier) BookingCreated(ctx context.Context, b models.Booking) error {
	return n.Feed.Publish(ctx, NewBookingNotification(b, n.now()))
}

// TaskEnqueuer is the part of *asynq.Client the queue notifier needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueNotifier hands notifications to the background worker.
type QueueNotifier struct {
	Client TaskEnqueuer
}

func NewQueueNotifier(client TaskEnqueuer) *QueueNotifier {
	return &QueueNotifier{Client: client}
}

func (n *QueueNotifier) BookingCreated(ctx context.Context, b models.Booking) error {
	task, opts, err := tasks.NewBookingCreatedTask(b)
	if err != nil {
		return fmt.Errorf("failed to build booking task: %w", err)
	}
	if _, err := n.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue booking notification: %w", err)
	}
	return nil
}

// MessageWriter is the part of *kafka.Writer the kafka notifier needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NewKafkaWriter builds a writer for topic on brokers.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

// BookingEvent is the message published on the booking topic.
type BookingEvent struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Booking models.Booking `json:"booking"`
	SentAt  time.Time      `json:"sentAt"`
}

// KafkaNotifier publishes booking events for other consumers.
type KafkaNotifier struct {
	Writer MessageWriter
	now    func() time.Time
}

func NewKafkaNotifier(w MessageWriter) *KafkaNotifier {
	return &KafkaNotifier{Writer: w, now: time.Now}
}

func (n *KafkaNotifier) BookingCreated(ctx context.Context, b models.Booking) error {
	event := BookingEvent{
		Type:    tasks.TypeBookingCreated,
		Message: BookingMessage(b),
		Booking: b,
		SentAt:  n.now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshaling booking event: %w", err)
	}
	return n.Writer.WriteMessages(ctx, kafka.Message{Key: []byte(b.ID.String()), Value: value})
}

// MultiNotifier fans out to every notifier, logging each failure.
type MultiNotifier struct {
	Notifiers []Notifier
	Logger    *zap.Logger
}

func NewMultiNotifier(logger *zap.Logger, notifiers ...Notifier) *MultiNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MultiNotifier{Notifiers: notifiers, Logger: logger}
}

func (m *MultiNotifier) BookingCreated(ctx context.Context, b models.Booking) error {
	var errs []error
	for _, n := range m.Notifiers {
		if err := n.BookingCreated(ctx, b); err != nil {
			m.Logger.Warn("Booking notification failed", zap.String("bookingID", b.ID.String()), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
