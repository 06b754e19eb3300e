// Package admintable filters and sorts the tabular listings of the admin
// pages. It works on plain cell text, so any listing can be fed to it.
package admintable

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"moviehub-cli/format"
)

type SortType string

const (
	SortString SortType = "string"
	SortNumber SortType = "number"
	SortDate   SortType = "date"
)

// ParseSortType accepts the names used on the command line; empty means string.
func ParseSortType(value string) (SortType, error) {
	switch SortType(strings.ToLower(strings.TrimSpace(value))) {
	case "", SortString:
		return SortString, nil
	case SortNumber:
		return SortNumber, nil
	case SortDate:
		return SortDate, nil
	default:
		return "", errors.Newf("unknown sort type %q", value)
	}
}

type Row struct {
	Cells  []string
	Hidden bool
}

// Cell returns the trimmed cell text, or "" when the row is shorter.
func (r Row) Cell(index int) string {
	if index < 0 || index >= len(r.Cells) {
		return ""
	}
	return strings.TrimSpace(r.Cells[index])
}

type Table struct {
	Header []string
	Rows   []Row

	lang language.Tag
}

func New(header []string, rows [][]string) *Table {
	t := &Table{Header: append([]string{}, header...), lang: language.English}
	t.Rows = make([]Row, 0, len(rows))
	for _, cells := range rows {
		t.Rows = append(t.Rows, Row{Cells: append([]string{}, cells...)})
	}
	return t
}

// SetLanguage changes the collation used by string sorts.
func (t *Table) SetLanguage(tag language.Tag) {
	t.lang = tag
}

// Filter hides every row whose listed columns do not contain term. Matching
// ignores case and surrounding blanks; an empty term shows every row. Each
// call starts from scratch and nothing is cached between calls.
func (t *Table) Filter(term string, columns []int) {
	needle := strings.ToLower(strings.TrimSpace(term))
	for i := range t.Rows {
		if needle == "" {
			t.Rows[i].Hidden = false
			continue
		}
		match := false
		for _, col := range columns {
			if col < 0 || col >= len(t.Rows[i].Cells) {
				continue
			}
			if strings.Contains(strings.ToLower(t.Rows[i].Cells[col]), needle) {
				match = true
				break
			}
		}
		t.Rows[i].Hidden = !match
	}
}

// Sort reorders the rows in place by one column, ascending. Values that do
// not parse as numbers or dates go last. The sort is stable, so such rows keep
// their relative order.
func (t *Table) Sort(column int, kind SortType) {
	switch kind {
	case SortNumber:
		sort.SliceStable(t.Rows, func(i, j int) bool {
			return lessFloat(parseLeadingFloat(t.Rows[i].Cell(column)), parseLeadingFloat(t.Rows[j].Cell(column)))
		})
	case SortDate:
		sort.SliceStable(t.Rows, func(i, j int) bool {
			return lessFloat(dateValue(t.Rows[i].Cell(column)), dateValue(t.Rows[j].Cell(column)))
		})
	default:
		coll := collate.New(t.lang)
		sort.SliceStable(t.Rows, func(i, j int) bool {
			return coll.CompareString(t.Rows[i].Cell(column), t.Rows[j].Cell(column)) < 0
		})
	}
}

// Visible returns the cells of the rows left by the last Filter call.
func (t *Table) Visible() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if !row.Hidden {
			out = append(out, append([]string{}, row.Cells...))
		}
	}
	return out
}

// lessFloat orders NaN after every number; NaNs are equal to each other.
func lessFloat(a float64, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseLeadingFloat reads the longest numeric prefix, so "250 INR" is 250 and
// "n/a" is NaN.
func parseLeadingFloat(value string) float64 {
	raw := strings.TrimSpace(value)
	switch {
	case strings.HasPrefix(raw, "Infinity"), strings.HasPrefix(raw, "+Infinity"):
		return math.Inf(1)
	case strings.HasPrefix(raw, "-Infinity"):
		return math.Inf(-1)
	}
	match := leadingFloat.FindString(raw)
	if match == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func dateValue(value string) float64 {
	t, ok := format.ParseDate(value)
	if !ok {
		return math.NaN()
	}
	return float64(t.UnixMilli())
}
