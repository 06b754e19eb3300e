package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"

	"moviehub-cli/model"
)

func newBookingServer(t *testing.T, status int, body string, seen *model.BookingRequest, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		if r.Method != http.MethodPost || r.URL.Path != "/confirm_booking" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected content type: %s", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing request id")
		}
		if seen != nil {
			if err := json.NewDecoder(r.Body).Decode(seen); err != nil {
				t.Errorf("decode body: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func sampleBooking() model.BookingRequest {
	return model.BookingRequest{
		ShowId:        1,
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "+91 9876543210",
		SelectedSeats: []string{"A1", "A2"},
		TotalAmount:   400,
	}
}

func TestConfirmBooking_ReturnsBookingID(t *testing.T) {
	var seen model.BookingRequest
	server := newBookingServer(t, http.StatusOK, `{"success":true,"booking_id":42}`, &seen, nil)
	defer server.Close()

	client := NewClient(server.Client())
	client.baseURL = server.URL

	id, err := client.ConfirmBooking(context.Background(), sampleBooking())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if id != 42 {
		t.Fatalf("expected booking 42, got %d", id)
	}
	if seen.ShowId != 1 || seen.TotalAmount != 400 || len(seen.SelectedSeats) != 2 {
		t.Fatalf("unexpected request body: %+v", seen)
	}
}

func TestConfirmBooking_RejectedCarriesServerMessage(t *testing.T) {
	server := newBookingServer(t, http.StatusOK, `{"success":false,"message":"Sold out"}`, nil, nil)
	defer server.Close()

	client := NewClient(server.Client())
	client.baseURL = server.URL

	_, err := client.ConfirmBooking(context.Background(), sampleBooking())
	var rejected *model.RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected rejected error, got %v", err)
	}
	if rejected.Message != "Sold out" || model.UserMessage(err) != "Sold out" {
		t.Fatalf("unexpected message: %q", rejected.Message)
	}
}

func TestConfirmBooking_FailureShapes(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "malformed json", status: http.StatusOK, body: `<html>oops</html>`, message: "Booking failed"},
		{name: "missing id", status: http.StatusOK, body: `{"success":true}`, message: "Booking failed"},
		{name: "server error with message", status: http.StatusInternalServerError, body: `{"success":false,"message":"Database unavailable"}`, message: "Database unavailable"},
		{name: "server error without body", status: http.StatusBadGateway, body: ``, message: "Booking failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int32
			server := newBookingServer(t, tc.status, tc.body, nil, &calls)
			defer server.Close()

			client := NewClient(server.Client())
			client.baseURL = server.URL

			_, err := client.ConfirmBooking(context.Background(), sampleBooking())
			if !model.IsRejected(err) {
				t.Fatalf("expected rejected error, got %v", err)
			}
			if model.UserMessage(err) != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, model.UserMessage(err))
			}
			if atomic.LoadInt32(&calls) != 1 {
				t.Fatalf("expected exactly one request, got %d", calls)
			}
		})
	}
}

func TestConfirmBooking_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	client := NewClient(nil)
	client.baseURL = base

	_, err := client.ConfirmBooking(context.Background(), sampleBooking())
	var transport *model.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if transport.Err == nil {
		t.Fatal("expected wrapped cause")
	}
	if model.IsRejected(err) {
		t.Fatal("transport failures are not rejections")
	}
}

func TestAddReview(t *testing.T) {
	var seen model.ReviewRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/add_review" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&seen)
		if seen.Rating > 5 {
			_, _ = w.Write([]byte(`{"success":false,"message":"Rating must be between 1 and 5"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"message":"Review added successfully"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client())
	client.baseURL = server.URL

	err := client.AddReview(context.Background(), model.ReviewRequest{MovieId: 1, CustomerName: "Asha", Rating: 5, ReviewText: "Great"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if seen.MovieId != 1 || seen.ReviewText != "Great" {
		t.Fatalf("unexpected body: %+v", seen)
	}

	err = client.AddReview(context.Background(), model.ReviewRequest{MovieId: 1, CustomerName: "Asha", Rating: 9, ReviewText: "Great"})
	if model.UserMessage(err) != "Rating must be between 1 and 5" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetShow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/shows/1":
			_, _ = w.Write([]byte(`{"id":1,"title":"Inception","price":250,"total_seats":100,"booked_seats":["A1"]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.Client())
	client.baseURL = server.URL

	show, err := client.GetShow(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if show.Price != 250 || show.TotalSeats != 100 || len(show.BookedSeats) != 1 {
		t.Fatalf("unexpected show: %+v", show)
	}

	if _, err := client.GetShow(context.Background(), 2); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := client.GetShow(context.Background(), 0); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestListBookings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bookings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"id":3,"customer_name":"Ravi","seats":["B1"],"total_amount":300}]`))
	}))
	defer server.Close()

	client := NewClient(server.Client())
	client.baseURL = server.URL

	bookings, err := client.ListBookings(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(bookings) != 1 || bookings[0].Id != 3 || bookings[0].Seats[0] != "B1" {
		t.Fatalf("unexpected bookings: %+v", bookings)
	}
}
