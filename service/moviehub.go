package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"

	"moviehub-cli/model"
)

const (
	bookingFailedMessage = "Booking failed"
	reviewFailedMessage  = "Review could not be submitted"
)

// GetShow fetches a single show with its booked seats.
func (c *Client) GetShow(ctx context.Context, showID int) (model.Show, error) {
	if showID <= 0 {
		return model.Show{}, errors.New("show id is required")
	}
	endpoint := fmt.Sprintf("%s/api/shows/%d", c.baseURL, showID)
	var show model.Show
	if err := c.CachedGetJSON(ctx, endpoint, nil, &show); err != nil {
		return model.Show{}, err
	}
	if show.Id == 0 {
		return model.Show{}, errors.Newf("show %d not found", showID)
	}
	return show, nil
}

// ListShows returns every upcoming show.
func (c *Client) ListShows(ctx context.Context) ([]model.Show, error) {
	var shows []model.Show
	if err := c.CachedGetJSON(ctx, c.baseURL+"/api/shows", nil, &shows); err != nil {
		return nil, err
	}
	return shows, nil
}

// ListBookings returns the admin booking listing.
func (c *Client) ListBookings(ctx context.Context) ([]model.BookingRecord, error) {
	var bookings []model.BookingRecord
	if err := c.CachedGetJSON(ctx, c.baseURL+"/api/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ConfirmBooking submits one booking and returns the id the server assigned.
// It never retries: a second call is a second booking.
func (c *Client) ConfirmBooking(ctx context.Context, req model.BookingRequest) (int64, error) {
	endpoint := c.baseURL + "/confirm_booking"
	if req.SelectedSeats == nil {
		req.SelectedSeats = []string{}
	}
	status, body, err := c.postJSON(ctx, endpoint, req)
	if err != nil {
		return 0, errors.Wrap(err, "confirm booking")
	}

	var res model.BookingResponse
	if err := json.Unmarshal(body, &res); err != nil {
		c.logger.WarnContext(ctx, "malformed booking response", "status_code", status, "error", err)
		return 0, rejected(endpoint, status, "", bookingFailedMessage)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices || !res.Success {
		return 0, rejected(endpoint, status, res.Message, bookingFailedMessage)
	}
	if res.BookingId == nil {
		return 0, rejected(endpoint, status, res.Message, bookingFailedMessage)
	}
	return *res.BookingId, nil
}

// AddReview posts a movie review. Errors map the same way as ConfirmBooking.
func (c *Client) AddReview(ctx context.Context, req model.ReviewRequest) error {
	endpoint := c.baseURL + "/add_review"
	status, body, err := c.postJSON(ctx, endpoint, req)
	if err != nil {
		return errors.Wrap(err, "add review")
	}
	var res model.ReviewResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return rejected(endpoint, status, "", reviewFailedMessage)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices || !res.Success {
		return rejected(endpoint, status, res.Message, reviewFailedMessage)
	}
	return nil
}

func rejected(endpoint string, status int, message string, fallback string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		message = fallback
	}
	return &model.RejectedError{Endpoint: endpoint, StatusCode: status, Message: message}
}
