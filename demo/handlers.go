package demo

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"moviehub-cli/model"
	"moviehub-cli/validate"
)

func health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (s *Server) listShows(c echo.Context) error {
	s.mu.Lock()
	shows := append([]model.Show{}, s.shows...)
	s.mu.Unlock()
	return c.JSON(http.StatusOK, shows)
}

func (s *Server) getShow(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.showIndex(int(id))
	if i < 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Show not found")
	}
	return c.JSON(http.StatusOK, s.shows[i])
}

func (s *Server) listBookings(c echo.Context) error {
	s.mu.Lock()
	bookings := append([]model.BookingRecord{}, s.bookings...)
	s.mu.Unlock()
	return c.JSON(http.StatusOK, bookings)
}

func declined(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, model.BookingResponse{Success: false, Message: message})
}

func (s *Server) confirmBooking(c echo.Context) error {
	var req model.BookingRequest
	if err := c.Bind(&req); err != nil {
		return declined(c, "Invalid booking request")
	}
	details := model.CustomerDetails{Name: req.CustomerName, Email: req.CustomerEmail, Phone: req.CustomerPhone}
	if msgs := validate.BookingForm(details, req.SelectedSeats); len(msgs) > 0 {
		return declined(c, strings.Join(msgs, "; "))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.showIndex(req.ShowId)
	if i < 0 {
		return declined(c, "Show not found")
	}
	show := s.shows[i]
	if show.AvailableSeats < len(req.SelectedSeats) {
		return declined(c, "Sold out")
	}

	id := s.nextID
	s.nextID++
	s.bookings = append(s.bookings, model.BookingRecord{
		Id:            id,
		ShowId:        show.Id,
		Title:         show.Title,
		TheaterName:   show.TheaterName,
		ShowDate:      show.ShowDate,
		ShowTime:      show.ShowTime,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Seats:         append([]string{}, req.SelectedSeats...),
		TotalAmount:   req.TotalAmount,
		BookingDate:   s.now().Format("2006-01-02"),
	})
	s.logger.Info("booking recorded", "booking_id", id, "show_id", show.Id, "seats", len(req.SelectedSeats))
	return c.JSON(http.StatusOK, model.BookingResponse{Success: true, BookingId: &id})
}

func (s *Server) addReview(c echo.Context) error {
	var req model.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, model.ReviewResponse{Success: false, Message: "Invalid review"})
	}
	if msgs := validate.Review(req); len(msgs) > 0 {
		return c.JSON(http.StatusOK, model.ReviewResponse{Success: false, Message: strings.Join(msgs, "; ")})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movie(req.MovieId); !ok {
		return c.JSON(http.StatusOK, model.ReviewResponse{Success: false, Message: "Movie not found"})
	}
	s.reviews = append(s.reviews, review{
		MovieId:      req.MovieId,
		CustomerName: strings.TrimSpace(req.CustomerName),
		Rating:       req.Rating,
		ReviewText:   strings.TrimSpace(req.ReviewText),
		CreatedAt:    s.now().Format("2006-01-02"),
	})
	return c.JSON(http.StatusOK, model.ReviewResponse{Success: true, Message: "Review added successfully"})
}

func (s *Server) bookingSuccess(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, booking := range s.bookings {
		if booking.Id == id {
			return c.JSON(http.StatusOK, map[string]any{
				"success": true,
				"message": fmt.Sprintf("Booking #%d confirmed", id),
				"booking": booking,
			})
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "Booking not found")
}
