package seating

import (
	"encoding/json"
	"strings"

	"moviehub-cli/format"
)

// Summary is derived from the selection after every change. Its fields map
// one to one onto the booking page elements the site used to update:
// selectedSeatsText, seatCount, totalAmount and the hidden selectedSeats /
// totalPrice form inputs. Visible drives both bookingSummary and
// customerForm.
type Summary struct {
	Seats      []string
	SeatsText  string
	Count      int
	UnitPrice  float64
	Total      float64
	TotalLabel string
	Visible    bool
	Hidden     HiddenFields
}

// HiddenFields mirror what the booking form posts alongside the contact fields.
type HiddenFields struct {
	SelectedSeats string
	TotalPrice    float64
}

func newSummary(selected []string, unitPrice float64) Summary {
	if len(selected) == 0 {
		return Summary{UnitPrice: unitPrice, TotalLabel: format.Currency(0), Hidden: HiddenFields{SelectedSeats: "[]"}}
	}
	seats := append([]string{}, selected...)
	total := float64(len(seats)) * unitPrice
	encoded, err := json.Marshal(seats)
	if err != nil {
		encoded = []byte("[]")
	}
	return Summary{
		Seats:      seats,
		SeatsText:  strings.Join(seats, ", "),
		Count:      len(seats),
		UnitPrice:  unitPrice,
		Total:      total,
		TotalLabel: format.Currency(total),
		Visible:    true,
		Hidden: HiddenFields{
			SelectedSeats: string(encoded),
			TotalPrice:    total,
		},
	}
}
