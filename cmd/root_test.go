package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub-cli/demo"
	"moviehub-cli/telemetry"
	"moviehub-cli/validate"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("MOVIEHUB_CACHE_REDIS_ADDR", "")
	t.Setenv("MOVIEHUB_LOG_LEVEL", "error")

	root := NewRootCmd("1.2.3", "abc123")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func newDemoSite(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(demo.NewServer(telemetry.Discard()).Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestVersionCommand(t *testing.T) {
	out, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "moviehub 1.2.3 (abc123)\n", out)
}

func TestAdminShows(t *testing.T) {
	url := newDemoSite(t)

	out, err := runRoot(t, "--base-url", url, "admin", "shows")
	require.NoError(t, err)
	lower := strings.ToLower(out)
	assert.Contains(t, lower, "avengers: endgame")
	assert.Contains(t, lower, "the dark knight")
	assert.Contains(t, lower, "4 of 4 rows")
	assert.Less(t, strings.Index(lower, "spider-man"), strings.Index(lower, "the dark knight"))
}

func TestAdminShowsSortByPrice(t *testing.T) {
	url := newDemoSite(t)

	out, err := runRoot(t, "--base-url", url, "admin", "shows", "--sort", "6", "--type", "number")
	require.NoError(t, err)
	lower := strings.ToLower(out)
	assert.Less(t, strings.Index(lower, "the dark knight"), strings.Index(lower, "spider-man"))
}

func TestAdminShowsSortByMovieWithLanguage(t *testing.T) {
	url := newDemoSite(t)

	out, err := runRoot(t, "--base-url", url, "admin", "shows", "--sort", "1", "--lang", "sv")
	require.NoError(t, err)
	lower := strings.ToLower(out)
	assert.Less(t, strings.Index(lower, "avengers"), strings.Index(lower, "spider-man"))
	assert.Less(t, strings.Index(lower, "spider-man"), strings.Index(lower, "the dark knight"))
}

func TestAdminShowsFilter(t *testing.T) {
	url := newDemoSite(t)

	out, err := runRoot(t, "--base-url", url, "admin", "shows", "--filter", "inox", "--columns", "2")
	require.NoError(t, err)
	lower := strings.ToLower(out)
	assert.Contains(t, lower, "inox multiplex")
	assert.NotContains(t, lower, "pvr cinemas")
	assert.Contains(t, lower, "2 of 4 rows")
}

func TestAdminBookings(t *testing.T) {
	url := newDemoSite(t)

	out, err := runRoot(t, "--base-url", url, "admin", "bookings", "--filter", "demo user")
	require.NoError(t, err)
	lower := strings.ToLower(out)
	assert.Contains(t, lower, "c3, c4")
	assert.Contains(t, lower, "500.00")
	assert.Contains(t, lower, "1 of 1 rows")
}

func TestAdminRejectsBadFlags(t *testing.T) {
	url := newDemoSite(t)

	_, err := runRoot(t, "--base-url", url, "admin", "shows", "--sort", "42")
	assert.ErrorContains(t, err, "invalid sort column")

	_, err = runRoot(t, "--base-url", url, "admin", "shows", "--sort", "1", "--type", "money")
	assert.Error(t, err)

	_, err = runRoot(t, "--base-url", url, "admin", "shows", "--sort", "1", "--lang", "not a tag!")
	assert.ErrorContains(t, err, "invalid language")

	_, err = runRoot(t, "--base-url", url, "admin", "shows", "--columns", "1,x")
	assert.ErrorContains(t, err, "invalid column")
}

func TestParseColumns(t *testing.T) {
	cols, err := parseColumns("", 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, cols)

	cols, err = parseColumns(" 2, 0 ,", 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, cols)

	_, err = parseColumns("3", 3)
	assert.Error(t, err)

	_, err = parseColumns("-1", 3)
	assert.Error(t, err)
}

func TestReviewNonInteractive(t *testing.T) {
	url := newDemoSite(t)

	out, err := runRoot(t, "--base-url", url, "review", "--movie", "1", "--name", "Ana", "--rating", "4", "--text", "Loved it")
	require.NoError(t, err)
	assert.Equal(t, "Review submitted successfully\n", out)
}

func TestReviewUnknownMovie(t *testing.T) {
	url := newDemoSite(t)

	_, err := runRoot(t, "--base-url", url, "review", "--movie", "99", "--name", "Ana", "--rating", "4", "--text", "Loved it")
	assert.EqualError(t, err, "Movie not found")
}

func TestReviewValidatesBeforeSending(t *testing.T) {
	_, err := runRoot(t, "--base-url", "http://127.0.0.1:1", "review", "--movie", "1", "--name", "Ana", "--rating", "9", "--text", "Loved it")
	assert.ErrorContains(t, err, validate.MsgRatingRange)
}

func TestReviewRequiresMovie(t *testing.T) {
	_, err := runRoot(t, "review", "--name", "Ana")
	assert.Error(t, err)
}
