package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"mightymoves/models"
	"mightymoves/services/backend"
	"mightymoves/services/notification"
	"mightymoves/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleBookings() []models.Booking {
	return []models.Booking{
		{ID: "1", Customer: "John Smith", ServiceType: "Moving", Status: models.StatusPending, Address: "12 Oak St to 4 Elm Rd", Price: 200, Date: "2025-05-20T09:00"},
		{ID: "2", Customer: "Sarah Jones", ServiceType: "Waste", Status: models.StatusInProgress, Address: "8 Pine Ave", Price: 135, Date: "2025-05-02T10:00:00Z", AssignedWorker: strPtr("Mike Johnson")},
		{ID: "3", Customer: "Liam Brown", ServiceType: "Logistics", Status: models.StatusCompleted, Address: "London to Leeds", Price: 50, Date: "2025-04-11", Notes: strPtr("Left with neighbour")},
		{ID: "4", Customer: "Ava Green", ServiceType: "Moving", Status: models.StatusCancelled, Address: "Oakwood to Bath", Price: 1000, Date: "2025-03-01"},
	}
}

func TestFilter(t *testing.T) {
	list := sampleBookings()

	assert.Len(t, Filter(list, models.BookingFilter{}), 4)

	got := Filter(list, models.BookingFilter{Search: "OAK"})
	require.Len(t, got, 2)
	assert.Equal(t, models.BookingID("1"), got[0].ID)
	assert.Equal(t, models.BookingID("4"), got[1].ID)

	got = Filter(list, models.BookingFilter{Search: "waste"})
	require.Len(t, got, 1)
	assert.Equal(t, "Sarah Jones", got[0].Customer)

	got = Filter(list, models.BookingFilter{Status: "In Progress"})
	require.Len(t, got, 1)

	got = Filter(list, models.BookingFilter{Service: "Moving", Status: "Pending"})
	require.Len(t, got, 1)
	assert.Equal(t, models.BookingID("1"), got[0].ID)

	assert.Empty(t, Filter(list, models.BookingFilter{Service: "moving"}))
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	list := sampleBookings()
	status := models.StatusCompleted
	out := Reduce(list, Patch{ID: "2", Status: &status, Notes: strPtr("done")})

	assert.Equal(t, models.StatusInProgress, list[1].Status)
	assert.Nil(t, list[1].Notes)
	assert.Equal(t, models.StatusCompleted, out[1].Status)
	assert.Equal(t, "done", out[1].NoteText())
	assert.Equal(t, list[0], out[0])
}

func TestReduceUnknownIDIsNoop(t *testing.T) {
	list := sampleBookings()
	out := Reduce(list, Patch{ID: "99", Notes: strPtr("x")})
	assert.Equal(t, list, out)
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	s := ComputeStats(sampleBookings(), now)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Pending)
	assert.Equal(t, 1, s.InProgress)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1, s.Cancelled)
	assert.Equal(t, 1385.0, s.Revenue)
	assert.Equal(t, "£1,385.00", s.RevenueDisplay)
	assert.Equal(t, 2, s.ThisMonth)
	assert.Equal(t, 1, s.LastMonth)
}

func TestHistory(t *testing.T) {
	h := History(sampleBookings(), false)
	require.Len(t, h, 2)
	assert.Equal(t, models.BookingID("2"), h[0].ID)
	assert.Equal(t, models.BookingID("3"), h[1].ID)

	assert.Len(t, History(sampleBookings(), true), 3)
}

func newTriage(t *testing.T, mock *backend.MockClient) (*Triage, *notification.MemoryFeed) {
	t.Helper()
	if mock.AllBookingsFunc == nil {
		mock.AllBookingsFunc = func(ctx context.Context, token string) ([]models.Booking, error) {
			return sampleBookings(), nil
		}
	}
	store := session.NewMemoryStore()
	require.NoError(t, store.SetToken(context.Background(), "admin", "admin-token"))
	feed := notification.NewMemoryFeed()
	return NewTriage(mock, store, feed, nil), feed
}

func TestOpenModalPrefills(t *testing.T) {
	tr, _ := newTriage(t, &backend.MockClient{})
	ctx := context.Background()

	m, err := tr.OpenModal(ctx, "admin", "2", models.ModalWorker)
	require.NoError(t, err)
	assert.Equal(t, "Mike Johnson", m.Value)
	assert.Equal(t, "Assign Worker", m.Title)

	m, err = tr.OpenModal(ctx, "admin", "3", models.ModalNotes)
	require.NoError(t, err)
	assert.Equal(t, "Left with neighbour", m.Value)

	m, err = tr.OpenModal(ctx, "admin", "1", models.ModalStatus)
	require.NoError(t, err)
	assert.Equal(t, "Pending", m.Value)
	assert.Len(t, m.Options, 4)
	assert.Equal(t, []models.BookingStatus{models.StatusInProgress, models.StatusCancelled}, m.Suggested)

	_, err = tr.OpenModal(ctx, "admin", "42", models.ModalNotes)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestConfirmPatchesAfterSuccess(t *testing.T) {
	mock := &backend.MockClient{
		AssignWorkerFunc: func(ctx context.Context, token string, id models.BookingID, worker string) error {
			assert.Equal(t, "admin-token", token)
			return nil
		},
	}
	tr, _ := newTriage(t, mock)
	ctx := context.Background()

	res, err := tr.Confirm(ctx, "admin", "1", models.ModalWorker, " Emma Rodriguez ")
	require.NoError(t, err)
	assert.Equal(t, "Emma Rodriguez", res.Booking.Worker())
	assert.Equal(t, "Worker Emma Rodriguez assigned to booking #1", res.Toast.Message)

	list, err := tr.Bookings(ctx, "admin", models.BookingFilter{}, false)
	require.NoError(t, err)
	assert.Equal(t, "Emma Rodriguez", list[0].Worker())
	assert.Equal(t, 1, mock.Calls("AllBookings"))
}

func TestConfirmSurvivesConcurrentReload(t *testing.T) {
	var tr *Triage
	list := sampleBookings()
	mock := &backend.MockClient{
		AllBookingsFunc: func(ctx context.Context, token string) ([]models.Booking, error) {
			return list, nil
		},
	}
	mock.UpdateNotesFunc = func(ctx context.Context, token string, id models.BookingID, notes string) error {
		// another request reloads the board without booking 3 while this one is outstanding
		list = sampleBookings()[:2]
		_, err := tr.Load(ctx, "admin")
		return err
	}
	tr, _ = newTriage(t, mock)
	ctx := context.Background()

	res, err := tr.Confirm(ctx, "admin", "3", models.ModalNotes, "Signed for by porter")
	require.NoError(t, err)
	assert.Equal(t, models.BookingID("3"), res.Booking.ID)
	assert.Equal(t, "Signed for by porter", res.Booking.NoteText())
	assert.Equal(t, "Liam Brown", res.Booking.Customer)
	assert.Equal(t, "Notes updated for booking #3", res.Toast.Message)

	board, err := tr.Bookings(ctx, "admin", models.BookingFilter{}, false)
	require.NoError(t, err)
	assert.Len(t, board, 2)
}

func TestApproveSurvivesConcurrentReload(t *testing.T) {
	var tr *Triage
	list := sampleBookings()
	mock := &backend.MockClient{
		AllBookingsFunc: func(ctx context.Context, token string) ([]models.Booking, error) {
			return list, nil
		},
	}
	mock.ApproveBookingFunc = func(ctx context.Context, token string, id models.BookingID) (*models.ApproveResponse, error) {
		list = sampleBookings()[1:]
		if _, err := tr.Load(ctx, "admin"); err != nil {
			return nil, err
		}
		return &models.ApproveResponse{Status: models.StatusInProgress, TrackingNumber: "TRK-009"}, nil
	}
	tr, _ = newTriage(t, mock)

	res, err := tr.Approve(context.Background(), "admin", "1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, res.Booking.Status)
	assert.Equal(t, "TRK-009", res.Booking.Tracking())
}

func TestConfirmFailureLeavesListUnchanged(t *testing.T) {
	mock := &backend.MockClient{
		UpdateBookingStatusFunc: func(ctx context.Context, token string, id models.BookingID, status models.BookingStatus) error {
			return &backend.APIError{Status: 500}
		},
	}
	tr, _ := newTriage(t, mock)
	ctx := context.Background()

	_, err := tr.Confirm(ctx, "admin", "1", models.ModalStatus, "Completed")
	var actionErr *ActionError
	require.True(t, errors.As(err, &actionErr))
	assert.Equal(t, "Failed to update status", actionErr.Message)

	list, _ := tr.Bookings(ctx, "admin", models.BookingFilter{}, false)
	assert.Equal(t, models.StatusPending, list[0].Status)
}

func TestConfirmRejectsUnknownStatus(t *testing.T) {
	mock := &backend.MockClient{}
	tr, _ := newTriage(t, mock)

	_, err := tr.Confirm(context.Background(), "admin", "1", models.ModalStatus, "Lost")
	require.Error(t, err)
	assert.Zero(t, mock.Calls("UpdateBookingStatus"))
}

func TestApprove(t *testing.T) {
	mock := &backend.MockClient{
		ApproveBookingFunc: func(ctx context.Context, token string, id models.BookingID) (*models.ApproveResponse, error) {
			return &models.ApproveResponse{Status: models.StatusInProgress, TrackingNumber: "TRK-001"}, nil
		},
	}
	tr, _ := newTriage(t, mock)
	ctx := context.Background()

	res, err := tr.Approve(ctx, "admin", "1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, res.Booking.Status)
	assert.Equal(t, "TRK-001", res.Booking.Tracking())
	assert.Equal(t, "Booking #1 approved!", res.Toast.Message)

	_, err = tr.Approve(ctx, "admin", "1")
	assert.ErrorIs(t, err, ErrNotPending)
	assert.Equal(t, 1, mock.Calls("ApproveBooking"))
}

func TestCommandsRequireToken(t *testing.T) {
	mock := &backend.MockClient{}
	tr := NewTriage(mock, session.NewMemoryStore(), notification.NewMemoryFeed(), nil)

	_, err := tr.Bookings(context.Background(), "nobody", models.BookingFilter{}, false)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, mock.TotalCalls())
}

func TestNotificationReadState(t *testing.T) {
	tr, feed := newTriage(t, &backend.MockClient{})
	ctx := context.Background()
	now := time.Now()
	for _, who := range []string{"Ann", "Bob", "Cy"} {
		require.NoError(t, feed.Publish(ctx, notification.NewBookingNotification(models.Booking{Customer: who}, now)))
	}

	views, unread, err := tr.Notifications(ctx, "admin", false)
	require.NoError(t, err)
	assert.Len(t, views, NotificationPreview)
	assert.Equal(t, 3, unread)
	assert.Equal(t, "Cy has made a new booking!", views[0].Message)

	opened, err := tr.OpenNotification(ctx, "admin", 1)
	require.NoError(t, err)
	assert.Equal(t, "Bob has made a new booking!", opened.Message)
	require.NoError(t, tr.MarkRead(ctx, "admin", 2))

	views, unread, err = tr.Notifications(ctx, "admin", true)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.False(t, views[0].Read)
	assert.True(t, views[1].Read)
	assert.True(t, views[2].Read)
	assert.Equal(t, 1, unread)

	_, unread, _ = tr.Notifications(ctx, "other-admin", true)
	assert.Equal(t, 3, unread)

	assert.ErrorIs(t, tr.MarkRead(ctx, "admin", 7), ErrNotificationNotFound)

	require.NoError(t, tr.ClearNotifications(ctx, "admin"))
	views, unread, _ = tr.Notifications(ctx, "admin", true)
	assert.Empty(t, views)
	assert.Zero(t, unread)
}

func TestIdleBoardsAreDropped(t *testing.T) {
	tr, _ := newTriage(t, &backend.MockClient{})
	clock := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return clock }
	ctx := context.Background()

	_, err := tr.Load(ctx, "admin")
	require.NoError(t, err)
	require.Len(t, tr.boards, 1)

	clock = clock.Add(tr.IdleTTL + sweepInterval + time.Second)
	_, _, err = tr.Notifications(ctx, "someone-else", true)
	require.NoError(t, err)
	assert.Empty(t, tr.boards)
}

func TestReadsDoNotCreateBoards(t *testing.T) {
	tr, _ := newTriage(t, &backend.MockClient{})
	ctx := context.Background()

	_, _, err := tr.Notifications(ctx, "visitor", true)
	require.NoError(t, err)
	require.NoError(t, tr.ClearNotifications(ctx, "visitor"))
	_, err = tr.Bookings(ctx, "visitor", models.BookingFilter{}, false)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, tr.boards)

	_, err = tr.Bookings(ctx, "admin", models.BookingFilter{}, false)
	require.NoError(t, err)
	require.Len(t, tr.boards, 1)
	tr.Forget("admin")
	assert.Empty(t, tr.boards)
}

func TestLegalSections(t *testing.T) {
	terms, ok := LegalSection("terms")
	require.True(t, ok)
	assert.Equal(t, "Terms and Conditions", terms.Title)

	for _, s := range LegalSectionsFor(models.AudienceCustomer) {
		assert.NotEqual(t, models.AudienceAdmin, s.Category)
	}
}
