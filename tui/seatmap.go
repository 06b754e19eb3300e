package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"moviehub-cli/seating"
)

const (
	tokenAvailable = "[]"
	tokenSelected  = "<>"
	tokenBooked    = "XX"
)

// renderSeatMap draws one line per row with the screen below the grid.
func (m appModel) renderSeatMap() string {
	if m.board == nil || m.board.SeatCount() == 0 {
		return "No seat map data."
	}
	rows := m.board.Rows()

	rowWidth := 2
	maxCols := 0
	for _, row := range rows {
		rowWidth = max(rowWidth, len(row.Label))
		maxCols = max(maxCols, len(row.Seats))
	}
	cellWidth := 2
	if m.showSeatNumbers {
		cellWidth = len(strconv.Itoa(seating.SeatsPerRow))
	}

	seatStyleAvailable := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatStyleSelected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("39"))
	seatStyleBooked := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	available, selected, booked := 0, 0, 0
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%*s ", rowWidth, row.Label))
		for i, seat := range row.Seats {
			text := seatToken(seat.Status)
			if m.showSeatNumbers {
				text = strconv.Itoa(seat.Number)
			}
			rendered := padCell(text, cellWidth)
			switch seat.Status {
			case seating.StatusAvailable:
				available++
				rendered = seatStyleAvailable.Render(rendered)
			case seating.StatusSelected:
				selected++
				rendered = seatStyleSelected.Render(rendered)
			case seating.StatusBooked:
				booked++
				rendered = seatStyleBooked.Render(rendered)
			}
			if seat.Id == m.cursor {
				rendered = cursorStyle.Render(padCell(text, cellWidth))
			}
			b.WriteString(rendered)
			if i < len(row.Seats)-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString(strings.Repeat(" ", (maxCols-len(row.Seats))*(cellWidth+1)))
		b.WriteString(fmt.Sprintf(" %-*s\n", rowWidth, row.Label))
	}

	gridWidth := maxCols*(cellWidth+1) - 1
	screenStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214"))
	screenBorderStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Background(lipgloss.Color("236"))

	screenBar := screenBarBlock(gridWidth, "SCREEN")
	indent := strings.Repeat(" ", rowWidth+1)

	b.WriteString("\n")
	b.WriteString(indent + screenBorderStyle.Render(screenBar.top) + "\n")
	b.WriteString(indent + screenStyle.Render(screenBar.mid) + "\n")
	b.WriteString(indent + screenBorderStyle.Render(screenBar.bot) + "\n")
	b.WriteString(indent + hint("All eyes this way") + "\n\n")

	legend := fmt.Sprintf("Legend: %s available • %s selected • %s booked", tokenAvailable, tokenSelected, tokenBooked)
	if m.showSeatNumbers {
		legend = "Legend: green available • blue selected • red booked • highlighted seat is the cursor"
	}
	counts := fmt.Sprintf("Available: %d • Selected: %d/%d • Booked: %d • Total: %d",
		available, selected, seating.MaxSelection, booked, m.board.SeatCount())
	return b.String() + hint(legend) + "\n" + hint(counts)
}

func seatToken(status seating.Status) string {
	switch status {
	case seating.StatusSelected:
		return tokenSelected
	case seating.StatusBooked:
		return tokenBooked
	default:
		return tokenAvailable
	}
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type screenBlock struct {
	top string
	mid string
	bot string
}

func screenBarBlock(width int, label string) screenBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	border := "╭" + strings.Repeat("─", width-2) + "╮"
	bottom := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return screenBlock{top: border, mid: mid, bot: bottom}
}
