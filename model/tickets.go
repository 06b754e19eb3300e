package model

// BookingRecord is a row of the admin bookings listing.
type BookingRecord struct {
	Id            int64    `json:"id"`
	ShowId        int      `json:"show_id"`
	Title         string   `json:"title"`
	TheaterName   string   `json:"theater_name"`
	ShowDate      string   `json:"show_date"`
	ShowTime      string   `json:"show_time"`
	CustomerName  string   `json:"customer_name"`
	CustomerEmail string   `json:"customer_email"`
	CustomerPhone string   `json:"customer_phone"`
	Seats         []string `json:"seats"`
	TotalAmount   float64  `json:"total_amount"`
	BookingDate   string   `json:"booking_date"`
}
