package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"moviehub-cli/admintable"
	"moviehub-cli/format"
	"moviehub-cli/model"
)

type tableOptions struct {
	filter   string
	columns  string
	sortCol  int
	sortType string
	lang     string
}

func newAdminCmd(env *runtimeEnv) *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Browse the admin listings",
	}
	opts := &tableOptions{}
	admin.PersistentFlags().StringVar(&opts.filter, "filter", "", "only show rows containing this text")
	admin.PersistentFlags().StringVar(&opts.columns, "columns", "", "comma separated column indexes searched by --filter (default all)")
	admin.PersistentFlags().IntVar(&opts.sortCol, "sort", -1, "column index to sort by")
	admin.PersistentFlags().StringVar(&opts.sortType, "type", "string", "sort type: string, number or date")
	admin.PersistentFlags().StringVar(&opts.lang, "lang", "en", "language used to order text columns (BCP 47 tag)")

	admin.AddCommand(
		&cobra.Command{
			Use:   "bookings",
			Short: "List bookings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				logger := stderrLogger(env.cfg, cmd.ErrOrStderr())
				client, closeClient := newClient(cmd.Context(), env.cfg, logger)
				defer closeClient()
				bookings, err := client.ListBookings(cmd.Context())
				if err != nil {
					return err
				}
				return renderAdminTable(cmd.OutOrStdout(), bookingsTable(bookings), *opts)
			},
		},
		&cobra.Command{
			Use:   "shows",
			Short: "List shows",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				logger := stderrLogger(env.cfg, cmd.ErrOrStderr())
				client, closeClient := newClient(cmd.Context(), env.cfg, logger)
				defer closeClient()
				shows, err := client.ListShows(cmd.Context())
				if err != nil {
					return err
				}
				return renderAdminTable(cmd.OutOrStdout(), showsTable(shows), *opts)
			},
		},
	)
	return admin
}

func bookingsTable(bookings []model.BookingRecord) *admintable.Table {
	header := []string{"ID", "Movie", "Theater", "Show", "Customer", "Email", "Phone", "Seats", "Amount", "Booked On"}
	rows := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, []string{
			strconv.FormatInt(b.Id, 10),
			b.Title,
			b.TheaterName,
			strings.TrimSpace(b.ShowDate + " " + b.ShowTime),
			b.CustomerName,
			b.CustomerEmail,
			b.CustomerPhone,
			strings.Join(b.Seats, ", "),
			strconv.FormatFloat(b.TotalAmount, 'f', 2, 64),
			b.BookingDate,
		})
	}
	return admintable.New(header, rows)
}

func showsTable(shows []model.Show) *admintable.Table {
	header := []string{"ID", "Movie", "Theater", "Location", "Date", "Time", "Price", "Available"}
	rows := make([][]string, 0, len(shows))
	for _, s := range shows {
		rows = append(rows, []string{
			strconv.Itoa(s.Id),
			s.Title,
			s.TheaterName,
			s.Location,
			s.ShowDate,
			format.Time(s.ShowTime),
			strconv.FormatFloat(s.Price, 'f', 2, 64),
			strconv.Itoa(s.AvailableSeats),
		})
	}
	return admintable.New(header, rows)
}

// parseColumns reads a list like "1,4". Empty means every column.
func parseColumns(value string, count int) ([]int, error) {
	if strings.TrimSpace(value) == "" {
		cols := make([]int, count)
		for i := range cols {
			cols[i] = i
		}
		return cols, nil
	}
	var cols []int
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n >= count {
			return nil, errors.Newf("invalid column %q: expected 0-%d", part, count-1)
		}
		cols = append(cols, n)
	}
	return cols, nil
}

func renderAdminTable(out io.Writer, t *admintable.Table, opts tableOptions) error {
	cols, err := parseColumns(opts.columns, len(t.Header))
	if err != nil {
		return err
	}
	if opts.sortCol >= 0 {
		if opts.sortCol >= len(t.Header) {
			return errors.Newf("invalid sort column %d: expected 0-%d", opts.sortCol, len(t.Header)-1)
		}
		kind, err := admintable.ParseSortType(opts.sortType)
		if err != nil {
			return err
		}
		tag, err := language.Parse(opts.lang)
		if err != nil {
			return errors.Wrapf(err, "invalid language %q", opts.lang)
		}
		t.SetLanguage(tag)
		t.Sort(opts.sortCol, kind)
	}
	t.Filter(opts.filter, cols)

	w := table.NewWriter()
	w.SetOutputMirror(out)
	header := make(table.Row, 0, len(t.Header))
	for i, h := range t.Header {
		header = append(header, fmt.Sprintf("%s [%d]", h, i))
	}
	w.AppendHeader(header)
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 24},
	})
	visible := t.Visible()
	for _, cells := range visible {
		row := make(table.Row, 0, len(cells))
		for _, c := range cells {
			row = append(row, c)
		}
		w.AppendRow(row)
	}
	w.AppendFooter(table.Row{fmt.Sprintf("%d of %d rows", len(visible), len(t.Rows))})
	w.Render()
	return nil
}
