package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mightymoves/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", 2*time.Second, nil)
}

func TestCreateBookingSendsTokenAndPayload(t *testing.T) {
	var got models.CreateBookingRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bookings", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"booking":{"id":42,"service_type":"Moving","status":"Pending","price":100}}`))
	})

	b, err := client.CreateBooking(context.Background(), "tok", models.CreateBookingRequest{
		ServiceType: models.ServiceMoving,
		Address:     "A to B",
		Price:       100,
		Details:     map[string]string{"vehicle": "Small Van"},
	})
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, models.BookingID("42"), b.ID)
	assert.Equal(t, models.StatusPending, b.Status)
	assert.Equal(t, "A to B", got.Address)
	assert.Equal(t, "Small Van", got.Details["vehicle"])
}

func TestCreateBookingEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	b, err := client.CreateBooking(context.Background(), "tok", models.CreateBookingRequest{})
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestServerErrorCarriesMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Address is required"}`))
	})

	_, err := client.CreateBooking(context.Background(), "tok", models.CreateBookingRequest{})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.Equal(t, "Address is required", Message(err, "fallback"))
}

func TestServerErrorWithoutMessageUsesFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.Equal(t, "fallback", Message(err, "fallback"))
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewHTTPClient(srv.URL, time.Second, nil)

	_, err := client.UserBookings(context.Background(), "tok")
	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, "fallback", Message(err, "fallback"))
}

func TestBookingListShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"id":"1"},{"id":2}]`, 2},
		{"envelope", `{"bookings":[{"id":"1"}]}`, 1},
		{"null", `null`, 0},
		{"empty envelope", `{}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/bookings/user", r.URL.Path)
				_, _ = w.Write([]byte(tt.body))
			})
			list, err := client.UserBookings(context.Background(), "tok")
			require.NoError(t, err)
			assert.NotNil(t, list)
			assert.Len(t, list, tt.want)
		})
	}
}

func TestBookingDetailsAsString(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"7","details":"{\"vehicle\":\"Large Truck\"}","assigned_worker":null}]`))
	})
	list, err := client.AllBookings(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Large Truck", list[0].Details["vehicle"])
	assert.Equal(t, "", list[0].Worker())
}

func TestUserInfoShapes(t *testing.T) {
	for _, body := range []string{
		`{"name":"Ada","email":"ada@example.com"}`,
		`{"user":{"name":"Ada","email":"ada@example.com"}}`,
	} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/me", r.URL.Path)
			_, _ = w.Write([]byte(body))
		})
		u, err := client.UserInfo(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, "Ada", u.Name)
		assert.Equal(t, "ada@example.com", u.Email)
	}
}

func TestApproveDefaultsStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings/9/approve", r.URL.Path)
		_, _ = w.Write([]byte(`{"tracking_id":"TRK-9"}`))
	})
	res, err := client.ApproveBooking(context.Background(), "tok", "9")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, res.Status)
	assert.Equal(t, "TRK-9", res.TrackingNumber)
}

func TestAdminUpdatesSendExpectedBodies(t *testing.T) {
	bodies := map[string]map[string]string{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies[r.URL.Path] = body
		w.WriteHeader(http.StatusNoContent)
	})
	ctx := context.Background()

	require.NoError(t, client.UpdateBookingStatus(ctx, "tok", "3", models.StatusCompleted))
	require.NoError(t, client.AssignWorker(ctx, "tok", "3", "Sam"))
	require.NoError(t, client.UpdateNotes(ctx, "tok", "3", "fragile"))

	assert.Equal(t, "Completed", bodies["/bookings/3/status"]["status"])
	assert.Equal(t, "Sam", bodies["/bookings/3/assign"]["assigned_worker"])
	assert.Equal(t, "fragile", bodies["/bookings/3/notes"]["notes"])
}

func TestTrackBooking(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/bookings/track/TRK-1":
			_, _ = w.Write([]byte(`{"location":{"lat":51.5,"lng":-0.12}}`))
		default:
			_, _ = w.Write([]byte(`{"error":"not found"}`))
		}
	})

	loc, err := client.TrackBooking(context.Background(), "TRK-1")
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.InDelta(t, 51.5, loc.Lat, 1e-9)

	loc, err = client.TrackBooking(context.Background(), "TRK-2")
	require.NoError(t, err)
	assert.Nil(t, loc)
}

func TestMockClientCountsCalls(t *testing.T) {
	m := &MockClient{}
	_, _ = m.UserBookings(context.Background(), "tok")
	_, _ = m.UserBookings(context.Background(), "tok")
	_ = m.Ping(context.Background())
	assert.Equal(t, 2, m.Calls("UserBookings"))
	assert.Equal(t, 3, m.TotalCalls())
	assert.Equal(t, 0, m.Calls("CreateBooking"))
}
