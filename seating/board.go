// Package seating lays out a show's seats and tracks which ones the customer
// has picked.
//
// Seats are laid out in rows of SeatsPerRow. Rows are labelled A, B, C… and
// seats carry their 1-based column, so the 23rd seat of a hall is "C3". Booked
// seats come from the server and never change; every other seat flips between
// available and selected.
package seating

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"moviehub-cli/model"
)

const (
	SeatsPerRow  = 10
	MaxSelection = 10
)

// MsgSelectionFull is shown when the customer tries to pick one seat too many.
const MsgSelectionFull = "You can select maximum 10 seats at a time"

var (
	ErrSeatNotFound = errors.New("seat not found")
	ErrSeatBooked   = errors.New("seat is already booked")

	// ErrSelectionFull is a client-side validation failure; nothing was changed.
	ErrSelectionFull error = &model.ValidationError{Messages: []string{MsgSelectionFull}}
)

type Status int

const (
	StatusAvailable Status = iota
	StatusSelected
	StatusBooked
)

func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusSelected:
		return "selected"
	case StatusBooked:
		return "booked"
	default:
		return "unknown"
	}
}

type Seat struct {
	Id     string
	Row    string
	Number int
	Status Status
}

// Interactive reports whether the seat reacts to toggles.
func (s Seat) Interactive() bool {
	return s.Status != StatusBooked
}

type Row struct {
	Label string
	Seats []Seat
}

// Board is the rendered seat map plus the current selection.
type Board struct {
	rows      []Row
	index     map[string]seatRef
	selected  []string
	unitPrice float64
	summary   Summary
}

type seatRef struct {
	row int
	col int
}

// NewBoard lays out totalSeats seats and marks the booked ones.
func NewBoard(totalSeats int, booked []string, unitPrice float64) (*Board, error) {
	b := &Board{}
	if err := b.Reset(totalSeats, booked, unitPrice); err != nil {
		return nil, err
	}
	return b, nil
}

// Reset replaces the whole layout. The selection is emptied before anything
// else happens.
func (b *Board) Reset(totalSeats int, booked []string, unitPrice float64) error {
	b.selected = nil
	b.rows = nil
	b.index = map[string]seatRef{}
	b.summary = Summary{}

	if totalSeats <= 0 {
		return errors.Newf("total seats must be positive, got %d", totalSeats)
	}
	if unitPrice < 0 {
		return errors.Newf("unit price must not be negative, got %v", unitPrice)
	}
	b.unitPrice = unitPrice

	bookedSet := make(map[string]bool, len(booked))
	for _, id := range booked {
		id = NormalizeId(id)
		if id != "" {
			bookedSet[id] = true
		}
	}

	rowCount := (totalSeats + SeatsPerRow - 1) / SeatsPerRow
	b.rows = make([]Row, 0, rowCount)
	for r := 0; r < rowCount; r++ {
		label := RowLabel(r)
		row := Row{Label: label}
		for col := 1; col <= SeatsPerRow; col++ {
			if r*SeatsPerRow+col > totalSeats {
				break
			}
			id := SeatId(r, col)
			status := StatusAvailable
			if bookedSet[id] {
				status = StatusBooked
			}
			row.Seats = append(row.Seats, Seat{Id: id, Row: label, Number: col, Status: status})
			b.index[id] = seatRef{row: r, col: col - 1}
		}
		b.rows = append(b.rows, row)
	}
	b.recompute(b.unitPrice)
	return nil
}

// Toggle flips a seat at the board's unit price.
func (b *Board) Toggle(id string) error {
	return b.ToggleAt(id, b.unitPrice)
}

// ToggleAt flips a seat and recomputes the summary at unitPrice. A full
// selection rejects new seats and leaves everything untouched.
func (b *Board) ToggleAt(id string, unitPrice float64) error {
	seat, err := b.seat(id)
	if err != nil {
		return err
	}

	switch seat.Status {
	case StatusBooked:
		return errors.Wrapf(ErrSeatBooked, "toggle %s", seat.Id)
	case StatusSelected:
		seat.Status = StatusAvailable
		b.selected = removeId(b.selected, seat.Id)
	default:
		if len(b.selected) >= MaxSelection {
			return ErrSelectionFull
		}
		seat.Status = StatusSelected
		b.selected = append(b.selected, seat.Id)
	}

	b.recompute(unitPrice)
	return nil
}

// Clear drops the selection and puts the summary back into its empty state.
func (b *Board) Clear() {
	for _, id := range b.selected {
		if seat, err := b.seat(id); err == nil {
			seat.Status = StatusAvailable
		}
	}
	b.selected = nil
	b.recompute(0)
}

// Selected returns the selection in the order the seats were picked.
func (b *Board) Selected() []string {
	return append([]string{}, b.selected...)
}

func (b *Board) IsSelected(id string) bool {
	for _, selected := range b.selected {
		if selected == id {
			return true
		}
	}
	return false
}

func (b *Board) Summary() Summary {
	return b.summary
}

func (b *Board) UnitPrice() float64 {
	return b.unitPrice
}

// SetUnitPrice changes the price used by Toggle and recomputes the summary.
func (b *Board) SetUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return errors.Newf("unit price must not be negative, got %v", unitPrice)
	}
	b.unitPrice = unitPrice
	b.recompute(unitPrice)
	return nil
}

// Rows returns a copy of the layout.
func (b *Board) Rows() []Row {
	rows := make([]Row, len(b.rows))
	for i, row := range b.rows {
		rows[i] = Row{Label: row.Label, Seats: append([]Seat{}, row.Seats...)}
	}
	return rows
}

func (b *Board) SeatCount() int {
	return len(b.index)
}

func (b *Board) Seat(id string) (Seat, bool) {
	seat, err := b.seat(id)
	if err != nil {
		return Seat{}, false
	}
	return *seat, true
}

// InteractiveSeats lists the seats that accept focus, row by row.
func (b *Board) InteractiveSeats() []string {
	ids := make([]string, 0, len(b.index))
	for _, row := range b.rows {
		for _, seat := range row.Seats {
			if seat.Interactive() {
				ids = append(ids, seat.Id)
			}
		}
	}
	return ids
}

func (b *Board) seat(id string) (*Seat, error) {
	ref, ok := b.index[NormalizeId(id)]
	if !ok {
		return nil, errors.Wrapf(ErrSeatNotFound, "seat %q", id)
	}
	return &b.rows[ref.row].Seats[ref.col], nil
}

func (b *Board) recompute(unitPrice float64) {
	b.summary = newSummary(b.selected, unitPrice)
}

// RowLabel maps a 0-based row index to A…Z, then AA, AB…
func RowLabel(index int) string {
	if index < 0 {
		return ""
	}
	var label []byte
	for n := index; n >= 0; n = n/26 - 1 {
		label = append([]byte{byte('A' + n%26)}, label...)
	}
	return string(label)
}

// SeatId builds the identifier for a 0-based row and 1-based column.
func SeatId(row int, col int) string {
	return RowLabel(row) + strconv.Itoa(col)
}

// NormalizeId upper-cases and trims a seat identifier typed by a person.
func NormalizeId(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func removeId(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
