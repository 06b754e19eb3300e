package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigate(t *testing.T) {
	board, err := NewBoard(25, []string{"A2"}, 100)
	require.NoError(t, err)

	assert.Equal(t, "A1", board.Navigate("", MoveRight))
	assert.Equal(t, "A3", board.Navigate("A1", MoveRight), "booked seat is skipped")
	assert.Equal(t, "A1", board.Navigate("A1", MoveLeft))
	assert.Equal(t, "A1", board.Navigate("A3", MoveLeft))

	// A2 is booked, so ten positions down from A1 lands on B2.
	assert.Equal(t, "B2", board.Navigate("A1", MoveDown))
	assert.Equal(t, "A1", board.Navigate("B2", MoveUp))
	assert.Equal(t, "A1", board.Navigate("A5", MoveUp))
	assert.Equal(t, "C5", board.Navigate("C1", MoveDown))
}

func TestNavigate_AllBooked(t *testing.T) {
	board, err := NewBoard(2, []string{"A1", "A2"}, 100)
	require.NoError(t, err)
	assert.Equal(t, "", board.Navigate("A1", MoveRight))
}
