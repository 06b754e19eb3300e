package model

// BookingRequest is the body of POST /confirm_booking.
type BookingRequest struct {
	ShowId        int      `json:"show_id"`
	CustomerName  string   `json:"customer_name"`
	CustomerEmail string   `json:"customer_email"`
	CustomerPhone string   `json:"customer_phone"`
	SelectedSeats []string `json:"selected_seats"`
	TotalAmount   float64  `json:"total_amount"`
}

// BookingResponse is what /confirm_booking answers with. BookingId is only
// set when Success is true.
type BookingResponse struct {
	Success   bool   `json:"success"`
	BookingId *int64 `json:"booking_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

type ReviewRequest struct {
	MovieId      int    `json:"movie_id"`
	CustomerName string `json:"customer_name"`
	Rating       int    `json:"rating"`
	ReviewText   string `json:"review_text"`
}

type ReviewResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// CustomerDetails holds the contact fields of the booking form.
type CustomerDetails struct {
	Name  string
	Email string
	Phone string
}

// BookingDraft is assembled for a single submission attempt and dropped
// afterwards, whatever the outcome.
type BookingDraft struct {
	ShowId   int
	Customer CustomerDetails
	Seats    []string
	Total    float64
}

// Request converts the draft into the wire body.
func (d BookingDraft) Request() BookingRequest {
	seats := append([]string{}, d.Seats...)
	return BookingRequest{
		ShowId:        d.ShowId,
		CustomerName:  d.Customer.Name,
		CustomerEmail: d.Customer.Email,
		CustomerPhone: d.Customer.Phone,
		SelectedSeats: seats,
		TotalAmount:   d.Total,
	}
}
