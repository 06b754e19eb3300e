package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"moviehub-cli/format"
	"moviehub-cli/model"
	"moviehub-cli/payment"
	"moviehub-cli/validate"
)

const (
	fieldName = iota
	fieldEmail
	fieldPhone
	fieldCount
)

type checkoutForm struct {
	inputs []textinput.Model
	focus  int
	errors []string
}

func newCheckoutForm(customer model.CustomerDetails) checkoutForm {
	labels := []string{"Name", "Email", "Phone"}
	values := []string{customer.Name, customer.Email, customer.Phone}
	f := checkoutForm{inputs: make([]textinput.Model, fieldCount)}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%-6s ", labels[i]+":")
		in.CharLimit = 120
		in.Width = 40
		in.SetValue(values[i])
		f.inputs[i] = in
	}
	f.inputs[fieldName].Placeholder = "Full name"
	f.inputs[fieldEmail].Placeholder = "you@example.com"
	f.inputs[fieldPhone].Placeholder = "+91 9876543210"
	return f
}

func (f *checkoutForm) focusCurrent() tea.Cmd {
	for i := range f.inputs {
		if i != f.focus {
			f.inputs[i].Blur()
		}
	}
	return f.inputs[f.focus].Focus()
}

func (f *checkoutForm) move(delta int) tea.Cmd {
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.focusCurrent()
}

func (f checkoutForm) details() model.CustomerDetails {
	return model.CustomerDetails{
		Name:  strings.TrimSpace(f.inputs[fieldName].Value()),
		Email: strings.TrimSpace(f.inputs[fieldEmail].Value()),
		Phone: strings.TrimSpace(f.inputs[fieldPhone].Value()),
	}
}

func (f checkoutForm) view() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Customer details"))
	b.WriteString("\n\n")
	for _, in := range f.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if len(f.errors) > 0 {
		b.WriteString("\n")
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
		for _, msg := range f.errors {
			b.WriteString(errStyle.Render("• " + msg))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form.inputs[m.form.focus].Blur()
		m.state = stateSeatMap
		return m, nil
	case "tab", "down":
		cmd := m.form.move(1)
		return m, cmd
	case "shift+tab", "up":
		cmd := m.form.move(-1)
		return m, cmd
	case "enter":
		if m.form.focus < fieldCount-1 {
			cmd := m.form.move(1)
			return m, cmd
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

// submitForm validates the form against the current selection and, when it
// passes, builds the draft shown in the payment modal.
func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	details := m.form.details()
	seats := m.board.Selected()
	m.form.errors = validate.BookingForm(details, seats)
	if len(m.form.errors) > 0 {
		cmd := m.setFlash(m.form.errors[0], true)
		return m, cmd
	}
	summary := m.board.Summary()
	m.draft = &model.BookingDraft{
		ShowId:   m.show.Id,
		Customer: details,
		Seats:    seats,
		Total:    summary.Total,
	}
	m.form.inputs[m.form.focus].Blur()
	m.state = statePaymentModal
	m.tracker.TrackBookingStep(context.Background(), "details_entered", map[string]any{"show_id": m.show.Id})
	return m, nil
}

// summaryView is the booking summary panel under the seat map.
func (m appModel) summaryView() string {
	if m.board == nil {
		return ""
	}
	summary := m.board.Summary()
	if !summary.Visible {
		return hint("Select seats to continue.")
	}
	label := lipgloss.NewStyle().Bold(true)
	lines := []string{
		label.Render("Selected seats: ") + summary.SeatsText,
		label.Render("Seats: ") + fmt.Sprintf("%d", summary.Count),
		label.Render("Price per seat: ") + format.Currency(m.board.UnitPrice()),
		label.Render("Total: ") + summary.TotalLabel,
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))
}

func (m appModel) modal(content string) string {
	panelStyle := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		MarginTop(1)
	if m.width > 56 {
		cardWidth := m.width - 8
		if cardWidth > 72 {
			cardWidth = 72
		}
		panelStyle = panelStyle.Width(cardWidth)
	}
	panel := panelStyle.Render(content)
	if m.width > 0 {
		panel = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panel)
	}
	return panel
}

func (m appModel) paymentModalView() string {
	if m.draft == nil {
		return ""
	}
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("63")).
		Padding(0, 2).
		Render("Payment")
	label := lipgloss.NewStyle().Bold(true)
	content := strings.Join([]string{
		title,
		"",
		label.Render("Seats: ") + strings.Join(m.draft.Seats, ", "),
		label.Render("Total: ") + format.Currency(m.draft.Total),
		"",
		hint("ENTER pay now • ESC cancel"),
	}, "\n")
	return m.modal(content)
}

func (m appModel) processingView() string {
	content := strings.Join([]string{
		fmt.Sprintf("%s %s", m.spinner.View(), lipgloss.NewStyle().Bold(true).Render("Processing Payment...")),
		"",
		hint("Please wait while we confirm your booking."),
	}, "\n")
	return m.modal(content)
}

func (m appModel) successView() string {
	url := m.client.URL(payment.SuccessPath(m.bookingID))
	headline := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")).Render("Booking confirmed!")
	content := strings.Join([]string{
		headline,
		"",
		fmt.Sprintf("Booking ID: %d", m.bookingID),
		url,
		"",
		hint("o open in browser • q quit"),
	}, "\n")
	return m.modal(content)
}
