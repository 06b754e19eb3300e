package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"

	"moviehub-cli/format"
	"moviehub-cli/model"
	"moviehub-cli/payment"
	"moviehub-cli/seating"
	"moviehub-cli/service"
	"moviehub-cli/store"
	"moviehub-cli/telemetry"
	"moviehub-cli/validate"
)

type appState int

const (
	stateLoadingShows appState = iota
	stateSelectShow
	stateLoadingShow
	stateSeatMap
	stateCustomerForm
	statePaymentModal
	stateProcessing
	stateSuccess
	stateError
)

const flashDuration = 3 * time.Second

// Options configures the booking UI. ShowID skips the show picker.
type Options struct {
	Client   *service.Client
	Logger   *slog.Logger
	ShowID   int
	Customer model.CustomerDetails
}

type appModel struct {
	client   *service.Client
	payments *payment.Simulator
	tracker  *telemetry.Tracker
	logger   *slog.Logger

	state     appState
	lastState appState
	err       error

	width  int
	height int

	showID   int
	showList list.Model
	show     model.Show

	board           *seating.Board
	cursor          string
	showSeatNumbers bool

	form      checkoutForm
	draft     *model.BookingDraft
	bookingID int64

	flash    flashMessage
	flashSeq int

	spinner spinner.Model
}

type flashMessage struct {
	text    string
	isError bool
}

type errMsg struct {
	err error
}

type showsMsg struct {
	shows []model.Show
	err   error
}

type showMsg struct {
	show model.Show
	err  error
}

type bookingMsg struct {
	id  int64
	err error
}

type flashExpiredMsg struct {
	seq int
}

func New(opts Options) tea.Model {
	client := opts.Client
	if client == nil {
		client = service.NewClient(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = telemetry.Discard()
	}
	m := appModel{
		client:          client,
		payments:        payment.NewSimulator(client, logger),
		tracker:         telemetry.NewTracker(logger),
		logger:          logger,
		state:           stateLoadingShows,
		showID:          opts.ShowID,
		showSeatNumbers: true,
	}
	if opts.ShowID > 0 {
		m.state = stateLoadingShow
	}

	m.showList = newList("Select Show")
	m.form = newCheckoutForm(opts.Customer)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	if m.showID > 0 {
		return tea.Batch(m.fetchShowCmd(m.showID), m.spinner.Tick)
	}
	return tea.Batch(m.fetchShowsCmd(), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.state == stateCustomerForm {
			return m.updateForm(msg)
		}
		if m.handleFilterInput(msg) {
			return m, nil
		}
		m, cmd, handled := m.handleKey(msg)
		if handled {
			return m, cmd
		}
		// fallthrough to component update
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isBusy() {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.logger.Error("booking ui error", "error", msg.err)
		m.err = msg.err
		m.lastState = recoverStateFrom(m.state)
		m.state = stateError
		return m, nil

	case showsMsg:
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		if len(msg.shows) == 0 {
			return m, errCmd(errors.New("no shows available"))
		}
		m.showList.SetItems(buildShowItems(msg.shows))
		m.state = stateSelectShow
		m.tracker.TrackPageView(context.Background(), "shows")
		return m, nil

	case showMsg:
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		board, err := seating.NewBoard(msg.show.TotalSeats, msg.show.BookedSeats, msg.show.Price)
		if err != nil {
			return m, errCmd(errors.Wrapf(err, "show %d", msg.show.Id))
		}
		m.show = msg.show
		m.board = board
		m.cursor = ""
		if seats := board.InteractiveSeats(); len(seats) > 0 {
			m.cursor = seats[0]
		}
		if err := store.RememberShow(msg.show); err != nil {
			m.logger.Warn("remember show failed", "show_id", msg.show.Id, "error", err)
		}
		m.state = stateSeatMap
		m.tracker.TrackPageView(context.Background(), "seat_map")
		return m, nil

	case bookingMsg:
		m.draft = nil
		if msg.err != nil {
			m.state = stateCustomerForm
			flashCmd := m.setFlash(model.UserMessage(msg.err), true)
			focusCmd := m.form.focusCurrent()
			return m, tea.Batch(flashCmd, focusCmd)
		}
		m.bookingID = msg.id
		if err := store.SaveCustomer(m.form.details()); err != nil {
			m.logger.Warn("save customer failed", "error", err)
		}
		m.state = stateSuccess
		return m, nil

	case flashExpiredMsg:
		if msg.seq == m.flashSeq {
			m.flash = flashMessage{}
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.state == stateSelectShow {
		m.showList, cmd = m.showList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	var body string
	switch m.state {
	case stateLoadingShows, stateLoadingShow:
		body = m.loadingView()
	case stateSelectShow:
		body = m.showList.View()
	case stateSeatMap:
		body = m.renderSeatMap() + "\n\n" + m.summaryView()
	case stateCustomerForm:
		body = m.summaryView() + "\n\n" + m.form.view()
	case statePaymentModal:
		body = m.paymentModalView()
	case stateProcessing:
		body = m.processingView()
	case stateSuccess:
		body = m.successView()
	case stateError:
		body = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(model.UserMessage(m.err)) + "\n\n" + hint("Press r to retry, esc to go back or q to quit.")
	}
	out := header + "\n\n" + body
	if m.flash.text != "" {
		out += "\n\n" + m.flashView()
	}
	return out
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("MovieHub")
	sub := []string{}
	if m.show.Id > 0 && m.state != stateSelectShow && m.state != stateLoadingShows {
		sub = append(sub, m.show.Title)
		if m.show.TheaterName != "" {
			sub = append(sub, fmt.Sprintf("%s, %s", m.show.TheaterName, m.show.Location))
		}
		sub = append(sub, fmt.Sprintf("%s %s", format.Date(m.show.ShowDate), format.Time(m.show.ShowTime)))
		sub = append(sub, fmt.Sprintf("%s per seat", format.Currency(m.show.Price)))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}
	hints := "ctrl+c quit"
	switch m.state {
	case stateSelectShow:
		hints = "ctrl+c quit • type to filter • enter select"
	case stateSeatMap:
		hints = "q quit • esc back • arrows move • space toggle seat • c clear • n toggle numbers • enter continue"
	case stateCustomerForm:
		hints = "esc seats • tab next field • enter continue"
	case statePaymentModal:
		hints = "enter pay now • esc cancel"
	case stateProcessing:
		hints = "please wait"
	case stateSuccess:
		hints = "o open in browser • q quit"
	}
	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) flashView() string {
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	if m.flash.isError {
		style = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	}
	return style.Render(m.flash.text)
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	if m.state == stateProcessing {
		return m, nil, true
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil && (listPtr.SettingFilter() || listPtr.IsFiltered()) {
			listPtr.ResetFilter()
			return m, nil, true
		}
		return m.goBack(), nil, true
	}

	switch m.state {
	case stateSelectShow:
		if msg.Type == tea.KeyEnter {
			item, ok := m.showList.SelectedItem().(showItem)
			if !ok {
				return m, nil, true
			}
			m.showID = item.show.Id
			m.state = stateLoadingShow
			return m, tea.Batch(m.fetchShowCmd(item.show.Id), m.spinner.Tick), true
		}
	case stateSeatMap:
		return m.handleSeatMapKey(msg)
	case statePaymentModal:
		if msg.Type == tea.KeyEnter && m.draft != nil {
			m.state = stateProcessing
			m.tracker.TrackBookingStep(context.Background(), "payment_confirmed", nil)
			return m, tea.Batch(m.processPaymentCmd(*m.draft), m.spinner.Tick), true
		}
	case stateSuccess:
		if msg.String() == "o" {
			return m, openURLCmd(m.client.URL(payment.SuccessPath(m.bookingID))), true
		}
	case stateError:
		if msg.String() == "r" {
			return m.retry()
		}
	}
	return m, nil, false
}

func (m appModel) handleSeatMapKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "left", "h":
		m.cursor = m.board.Navigate(m.cursor, seating.MoveLeft)
	case "right", "l":
		m.cursor = m.board.Navigate(m.cursor, seating.MoveRight)
	case "up", "k":
		m.cursor = m.board.Navigate(m.cursor, seating.MoveUp)
	case "down", "j":
		m.cursor = m.board.Navigate(m.cursor, seating.MoveDown)
	case " ", "x":
		if m.cursor == "" {
			return m, nil, true
		}
		if err := m.board.Toggle(m.cursor); err != nil {
			cmd := m.setFlash(model.UserMessage(err), true)
			return m, cmd, true
		}
		m.tracker.TrackBookingStep(context.Background(), "seat_toggled", map[string]any{
			"seat":     m.cursor,
			"selected": m.board.IsSelected(m.cursor),
		})
	case "c":
		m.board.Clear()
	case "n":
		m.showSeatNumbers = !m.showSeatNumbers
	case "enter":
		if len(m.board.Selected()) == 0 {
			cmd := m.setFlash(validate.MsgSeatsRequired, true)
			return m, cmd, true
		}
		m.state = stateCustomerForm
		m.form.errors = nil
		m.tracker.TrackBookingStep(context.Background(), "seats_selected", map[string]any{"count": len(m.board.Selected())})
		cmd := m.form.focusCurrent()
		return m, cmd, true
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m appModel) goBack() appModel {
	switch m.state {
	case stateSeatMap:
		if len(m.showList.Items()) > 0 {
			m.state = stateSelectShow
		}
	case stateCustomerForm:
		m.state = stateSeatMap
	case statePaymentModal:
		m.draft = nil
		m.state = stateCustomerForm
	case stateError:
		m.state = m.lastState
	}
	return m
}

func (m appModel) retry() (appModel, tea.Cmd, bool) {
	if m.showID > 0 {
		m.state = stateLoadingShow
		return m, tea.Batch(m.fetchShowCmd(m.showID), m.spinner.Tick), true
	}
	m.state = stateLoadingShows
	return m, tea.Batch(m.fetchShowsCmd(), m.spinner.Tick), true
}

// setFlash shows text until flashDuration passes or a newer flash replaces it.
func (m *appModel) setFlash(text string, isError bool) tea.Cmd {
	m.flashSeq++
	seq := m.flashSeq
	m.flash = flashMessage{text: text, isError: isError}
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{seq: seq}
	})
}

func (m appModel) isBusy() bool {
	return m.state == stateLoadingShows ||
		m.state == stateLoadingShow ||
		m.state == stateProcessing
}

func (m appModel) loadingView() string {
	title := "Loading"
	switch m.state {
	case stateLoadingShows:
		title = "Loading shows"
	case stateLoadingShow:
		title = "Loading seat map"
	}
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Fetching data..."))
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.showList.SetSize(m.width, h)
}

func (m *appModel) activeList() *list.Model {
	if m.state == stateSelectShow {
		return &m.showList
	}
	return nil
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		popFilter(listPtr)
		return true
	default:
		return false
	}
}

func appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	listPtr.SetFilterText(listPtr.FilterValue() + value)
}

func popFilter(listPtr *list.Model) {
	value := trimLastRune(listPtr.FilterValue())
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingShows, stateLoadingShow:
		return stateSelectShow
	case stateError:
		return stateSeatMap
	default:
		return state
	}
}

func openURLCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := openURL(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func openURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return errors.Newf("unsupported OS for opening browser: %s", runtime.GOOS)
	}
}

func (m appModel) fetchShowsCmd() tea.Cmd {
	return func() tea.Msg {
		shows, err := m.client.ListShows(context.Background())
		return showsMsg{shows: shows, err: err}
	}
}

func (m appModel) fetchShowCmd(showID int) tea.Cmd {
	return func() tea.Msg {
		show, err := m.client.GetShow(context.Background(), showID)
		return showMsg{show: show, err: err}
	}
}

func (m appModel) processPaymentCmd(draft model.BookingDraft) tea.Cmd {
	payments := m.payments
	return func() tea.Msg {
		id, err := payments.Process(context.Background(), draft)
		return bookingMsg{id: id, err: err}
	}
}

type showItem struct {
	show model.Show
}

func (s showItem) Title() string {
	if s.show.TheaterName == "" {
		return s.show.Title
	}
	return fmt.Sprintf("%s • %s", s.show.Title, s.show.TheaterName)
}

func (s showItem) Description() string {
	parts := []string{
		fmt.Sprintf("%s %s", format.Date(s.show.ShowDate), format.Time(s.show.ShowTime)),
		format.Currency(s.show.Price),
	}
	if s.show.AvailableSeats > 0 {
		parts = append(parts, fmt.Sprintf("%d seats left", s.show.AvailableSeats))
	} else {
		parts = append(parts, "Sold out")
	}
	return strings.Join(parts, " • ")
}

func (s showItem) FilterValue() string {
	return strings.Join([]string{s.show.Title, s.show.TheaterName, s.show.Location}, " ")
}

func buildShowItems(shows []model.Show) []list.Item {
	items := make([]list.Item, 0, len(shows))
	for _, show := range shows {
		items = append(items, showItem{show: show})
	}
	return items
}
