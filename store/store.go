package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"moviehub-cli/model"
)

const (
	appDir          = "moviehub-cli"
	maxRecentShows  = 8
	recentShowsFile = "recent_shows.json"
	customerFile    = "customer.json"
)

type RecentShow struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	TheaterName string `json:"theater_name"`
	ShowDate    string `json:"show_date"`
	ShowTime    string `json:"show_time"`
}

type showHistory struct {
	Shows []RecentShow `json:"shows"`
}

type savedCustomer struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoadRecentShows returns the shows opened most recently, newest first.
func LoadRecentShows() ([]RecentShow, error) {
	path, err := configPath(recentShowsFile)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history showHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid show history format")
	}
	return history.Shows, nil
}

// LastShow returns the most recent show, if any.
func LastShow() (RecentShow, bool, error) {
	shows, err := LoadRecentShows()
	if err != nil || len(shows) == 0 {
		return RecentShow{}, false, err
	}
	return shows[0], true, nil
}

func RememberShow(show model.Show) error {
	if show.Id <= 0 {
		return errors.New("show id is required")
	}
	history, _ := LoadRecentShows()
	next := []RecentShow{{
		ID:          show.Id,
		Title:       show.Title,
		TheaterName: show.TheaterName,
		ShowDate:    show.ShowDate,
		ShowTime:    show.ShowTime,
	}}

	for _, existing := range history {
		if existing.ID == show.Id {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentShows {
			break
		}
	}

	return writeJSON(recentShowsFile, showHistory{Shows: next})
}

// LoadCustomer returns the contact details used for the last booking so the
// form can be prefilled.
func LoadCustomer() (model.CustomerDetails, bool, error) {
	path, err := configPath(customerFile)
	if err != nil {
		return model.CustomerDetails{}, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.CustomerDetails{}, false, nil
		}
		return model.CustomerDetails{}, false, err
	}
	var saved savedCustomer
	if err := json.Unmarshal(data, &saved); err != nil {
		return model.CustomerDetails{}, false, errors.New("invalid customer format")
	}
	return model.CustomerDetails{Name: saved.Name, Email: saved.Email, Phone: saved.Phone}, true, nil
}

func SaveCustomer(details model.CustomerDetails) error {
	if strings.TrimSpace(details.Name) == "" && strings.TrimSpace(details.Email) == "" && strings.TrimSpace(details.Phone) == "" {
		return nil
	}
	return writeJSON(customerFile, savedCustomer{
		Name:      strings.TrimSpace(details.Name),
		Email:     strings.TrimSpace(details.Email),
		Phone:     strings.TrimSpace(details.Phone),
		UpdatedAt: time.Now(),
	})
}

func writeJSON(name string, value any) error {
	path, err := configPath(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, name), nil
}
