// Package payment simulates the payment step that sits between the booking
// form and the booking confirmation. No money moves.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"

	"moviehub-cli/model"
	"moviehub-cli/telemetry"
)

// Delay is the fixed time the simulated gateway takes.
const Delay = 2 * time.Second

var sleepFn = time.Sleep

type Submitter interface {
	ConfirmBooking(ctx context.Context, req model.BookingRequest) (int64, error)
}

type Simulator struct {
	submitter Submitter
	tracker   *telemetry.Tracker
	logger    *slog.Logger
}

func NewSimulator(submitter Submitter, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = telemetry.Discard()
	}
	return &Simulator{submitter: submitter, tracker: telemetry.NewTracker(logger), logger: logger}
}

// Process waits out the gateway delay and then submits the draft once. The
// wait cannot be cut short. On failure the caller should drop the draft and
// keep the seat selection.
func (s *Simulator) Process(ctx context.Context, draft model.BookingDraft) (int64, error) {
	if s.submitter == nil {
		return 0, errors.New("payment simulator has no submitter")
	}
	s.tracker.TrackBookingStep(ctx, "payment_started", map[string]any{
		"show_id": draft.ShowId,
		"seats":   len(draft.Seats),
		"total":   draft.Total,
	})
	sleepFn(Delay)

	id, err := s.submitter.ConfirmBooking(ctx, draft.Request())
	if err != nil {
		s.logger.WarnContext(ctx, "booking failed", "show_id", draft.ShowId, "error", err)
		s.tracker.TrackBookingStep(ctx, "payment_failed", map[string]any{"show_id": draft.ShowId})
		return 0, err
	}
	s.logger.InfoContext(ctx, "booking confirmed", "show_id", draft.ShowId, "booking_id", id)
	s.tracker.TrackBookingStep(ctx, "payment_completed", map[string]any{"booking_id": id})
	return id, nil
}

// SuccessPath is where the site shows a confirmed booking.
func SuccessPath(bookingID int64) string {
	return fmt.Sprintf("/booking_success/%d", bookingID)
}
