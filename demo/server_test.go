package demo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub-cli/config"
	"moviehub-cli/model"
	"moviehub-cli/service"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := do(t, NewServer(nil).Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestGetShow(t *testing.T) {
	h := NewServer(nil).Handler()

	rec := do(t, h, http.MethodGet, "/api/shows/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var show model.Show
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &show))
	assert.Equal(t, "Avengers: Endgame", show.Title)
	assert.Equal(t, 250.0, show.Price)
	assert.Equal(t, 100, show.TotalSeats)
	assert.Equal(t, []string{"A1", "A2", "B5"}, show.BookedSeats)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/shows/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/shows/abc", "").Code)
}

func TestDarkKnightFallsBackToDefaultPoster(t *testing.T) {
	rec := do(t, NewServer(nil).Handler(), http.MethodGet, "/api/shows/4", "")
	var show model.Show
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &show))
	assert.Equal(t, model.DefaultPosterPath, show.PosterURL())
}

func TestConfirmBooking(t *testing.T) {
	srv := NewServer(nil)
	srv.now = func() time.Time { return time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC) }
	h := srv.Handler()

	body := `{"show_id":1,"customer_name":"Asha","customer_email":"asha@example.com","customer_phone":"+91 9876543210","selected_seats":["C1","C2"],"total_amount":500}`
	rec := do(t, h, http.MethodPost, "/confirm_booking", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var res model.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.True(t, res.Success)
	require.NotNil(t, res.BookingId)
	assert.Equal(t, int64(12345), *res.BookingId)

	rec = do(t, h, http.MethodPost, "/confirm_booking", body)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, int64(12346), *res.BookingId)

	rec = do(t, h, http.MethodGet, "/api/bookings", "")
	var bookings []model.BookingRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookings))
	require.Len(t, bookings, 3)
	assert.Equal(t, "2024-01-14", bookings[1].BookingDate)
	assert.Equal(t, []string{"C1", "C2"}, bookings[1].Seats)

	rec = do(t, h, http.MethodGet, "/booking_success/12345", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Booking #12345 confirmed")
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/booking_success/1000", "").Code)
}

func TestConfirmBooking_Declined(t *testing.T) {
	h := NewServer(nil).Handler()
	cases := map[string]string{
		`{"show_id":99,"customer_name":"A","customer_email":"a@b.co","customer_phone":"9876543210","selected_seats":["A3"]}`: "Show not found",
		`{"show_id":4,"customer_name":"A","customer_email":"a@b.co","customer_phone":"9876543210","selected_seats":["A3"]}`:  "Sold out",
		`{"show_id":1,"customer_name":"","customer_email":"a@b.co","customer_phone":"9876543210","selected_seats":[]}`:      "Name is required; Please select at least one seat",
		`not json`: "Invalid booking request",
	}
	for body, message := range cases {
		rec := do(t, h, http.MethodPost, "/confirm_booking", body)
		var res model.BookingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), body)
		assert.False(t, res.Success, body)
		assert.Nil(t, res.BookingId, body)
		assert.Equal(t, message, res.Message, body)
	}
}

func TestAddReview(t *testing.T) {
	h := NewServer(nil).Handler()

	rec := do(t, h, http.MethodPost, "/add_review", `{"movie_id":1,"customer_name":"Asha","rating":5,"review_text":"Loved it"}`)
	var res model.ReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)

	rec = do(t, h, http.MethodPost, "/add_review", `{"movie_id":7,"customer_name":"Asha","rating":5,"review_text":"Loved it"}`)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Success)
	assert.Equal(t, "Movie not found", res.Message)
}

func TestClientAgainstDemoServer(t *testing.T) {
	ts := httptest.NewServer(NewServer(nil).Handler())
	defer ts.Close()

	client := service.NewClientFromConfig(configFor(ts.URL), nil, nil)
	ctx := context.Background()

	show, err := client.GetShow(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Spider-Man: No Way Home", show.Title)

	id, err := client.ConfirmBooking(ctx, model.BookingRequest{
		ShowId:        3,
		CustomerName:  "Asha",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "+91 9876543210",
		SelectedSeats: []string{"D4"},
		TotalAmount:   280,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12345), id)

	_, err = client.ConfirmBooking(ctx, model.BookingRequest{
		ShowId:        4,
		CustomerName:  "Asha",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "+91 9876543210",
		SelectedSeats: []string{"D4"},
	})
	assert.True(t, model.IsRejected(err))
	assert.Equal(t, "Sold out", model.UserMessage(err))
}

func configFor(baseURL string) config.APIConfig {
	cfg := config.NewTestConfig().API
	cfg.BaseURL = baseURL
	return cfg
}
