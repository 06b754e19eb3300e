// Package demo serves canned MovieHub data so the client can be exercised
// without the real site. It keeps bookings in memory and does no seat
// accounting.
package demo

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"

	"moviehub-cli/model"
	"moviehub-cli/telemetry"
)

type review struct {
	MovieId      int    `json:"movie_id"`
	CustomerName string `json:"customer_name"`
	Rating       int    `json:"rating"`
	ReviewText   string `json:"review_text"`
	CreatedAt    string `json:"created_at"`
}

type Server struct {
	mu       sync.Mutex
	movies   []model.Movie
	shows    []model.Show
	bookings []model.BookingRecord
	reviews  []review
	nextID   int64
	now      func() time.Time
	logger   *slog.Logger
}

func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = telemetry.Discard()
	}
	s := &Server{
		movies:   sampleMovies(),
		bookings: sampleBookings(),
		reviews:  sampleReviews(),
		nextID:   firstBookingID,
		now:      time.Now,
		logger:   logger,
	}
	for _, show := range sampleShows() {
		if movie, ok := s.movie(show.MovieId); ok {
			show.Title = movie.Title
			show.ImageURL = movie.ImageURL
		}
		show.TotalSeats = seatsPerShow
		show.BookedSeats = append([]string{}, sampleBookedSeats...)
		s.shows = append(s.shows, show)
	}
	return s
}

// Handler returns the echo instance with every route registered.
func (s *Server) Handler() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(s.requestLogger)
	e.HTTPErrorHandler = s.errorHandler

	e.GET("/healthz", health)
	e.GET("/api/shows", s.listShows)
	e.GET("/api/shows/:id", s.getShow)
	e.GET("/api/bookings", s.listBookings)
	e.POST("/confirm_booking", s.confirmBooking)
	e.POST("/add_review", s.addReview)
	e.GET("/booking_success/:id", s.bookingSuccess)
	return e
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	e := s.Handler()
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("demo server listening", "addr", addr)
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "demo server")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown demo server")
		}
		return nil
	}
}

func (s *Server) movie(id int) (model.Movie, bool) {
	for _, m := range s.movies {
		if m.Id == id {
			return m, true
		}
	}
	return model.Movie{}, false
}

func (s *Server) showIndex(id int) int {
	for i, show := range s.shows {
		if show.Id == id {
			return i
		}
	}
	return -1
}

func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Path(), "error", err)
	}
	_ = c.JSON(code, map[string]any{"success": false, "message": message})
}
