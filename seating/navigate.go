package seating

// Direction is a cursor move over the interactive seats.
type Direction int

const (
	MoveLeft Direction = iota
	MoveRight
	MoveUp
	MoveDown
)

// Navigate moves focus over the seats that accept input (booked seats are
// skipped). Up and down jump a full row's worth of positions in that list,
// not a geometric row, and every move is clamped to the list bounds. An
// unknown current seat focuses the first interactive seat.
func (b *Board) Navigate(current string, dir Direction) string {
	seats := b.InteractiveSeats()
	if len(seats) == 0 {
		return ""
	}
	index := -1
	current = NormalizeId(current)
	for i, id := range seats {
		if id == current {
			index = i
			break
		}
	}
	if index < 0 {
		return seats[0]
	}

	target := index
	switch dir {
	case MoveLeft:
		target = max(0, index-1)
	case MoveRight:
		target = min(len(seats)-1, index+1)
	case MoveUp:
		target = max(0, index-SeatsPerRow)
	case MoveDown:
		target = min(len(seats)-1, index+SeatsPerRow)
	}
	return seats[target]
}
