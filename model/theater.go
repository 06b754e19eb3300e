package model

import "strings"

// DefaultPosterPath is served by the site when a movie has no poster of its own.
const DefaultPosterPath = "/static/images/default-movie.jpg"

type Movie struct {
	Id          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"`
	Genre       string  `json:"genre"`
	Language    string  `json:"language"`
	ReleaseDate string  `json:"release_date"`
	ImageURL    string  `json:"image_url"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
}

type Show struct {
	Id             int      `json:"id"`
	MovieId        int      `json:"movie_id"`
	Title          string   `json:"title"`
	TheaterName    string   `json:"theater_name"`
	Location       string   `json:"location"`
	ShowDate       string   `json:"show_date"`
	ShowTime       string   `json:"show_time"`
	Price          float64  `json:"price"`
	TotalSeats     int      `json:"total_seats"`
	AvailableSeats int      `json:"available_seats"`
	BookedSeats    []string `json:"booked_seats"`
	ImageURL       string   `json:"image_url"`
}

// PosterURL returns the show's poster, falling back to the site default.
func (s Show) PosterURL() string {
	if strings.TrimSpace(s.ImageURL) == "" {
		return DefaultPosterPath
	}
	return s.ImageURL
}
