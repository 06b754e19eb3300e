package telemetry

import (
	"context"
	"log/slog"
)

// Tracker records user-facing events. Events only go to the debug log;
// there is no analytics backend.
type Tracker struct {
	logger *slog.Logger
}

func NewTracker(logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = Discard()
	}
	return &Tracker{logger: logger}
}

func (t *Tracker) Track(ctx context.Context, event string, props map[string]any) {
	attrs := make([]slog.Attr, 0, len(props)+1)
	attrs = append(attrs, slog.String("event", event))
	for k, v := range props {
		attrs = append(attrs, slog.Any(k, v))
	}
	t.logger.LogAttrs(ctx, slog.LevelDebug, "Event tracked", attrs...)
}

func (t *Tracker) TrackPageView(ctx context.Context, page string) {
	t.Track(ctx, "page_view", map[string]any{"page": page})
}

// TrackBookingStep marks progress through the booking funnel, e.g.
// "seats_selected" or "payment_started".
func (t *Tracker) TrackBookingStep(ctx context.Context, step string, props map[string]any) {
	merged := make(map[string]any, len(props)+1)
	for k, v := range props {
		merged[k] = v
	}
	merged["step"] = step
	t.Track(ctx, "booking_step", merged)
}
