package demo

import "moviehub-cli/model"

const (
	seatsPerShow     = 100
	firstBookingID   = 12345
	demoCustomerName = "Demo User"
)

func sampleMovies() []model.Movie {
	return []model.Movie{
		{
			Id:          1,
			Title:       "Avengers: Endgame",
			Description: "After the devastating events of Avengers: Infinity War, the universe is in ruins due to the efforts of the Mad Titan, Thanos.",
			Duration:    181,
			Genre:       "Action",
			Language:    "English",
			ReleaseDate: "2019-04-26",
			ImageURL:    "https://image.tmdb.org/t/p/w500/or06FN3Dka5tukK1e9sl16pB3iy.jpg",
			AvgRating:   4.8,
			ReviewCount: 1250,
		},
		{
			Id:          2,
			Title:       "Spider-Man: No Way Home",
			Description: "Peter Parker is unmasked and no longer able to separate his normal life from the high-stakes of being a super-hero.",
			Duration:    148,
			Genre:       "Action",
			Language:    "English",
			ReleaseDate: "2021-12-17",
			ImageURL:    "https://image.tmdb.org/t/p/w500/1g0dhYtq4irTY1GPXvft6k4YLjm.jpg",
			AvgRating:   4.7,
			ReviewCount: 980,
		},
		{
			Id:          3,
			Title:       "The Dark Knight",
			Description: "Batman raises the stakes in his war on crime with the help of Lt. Jim Gordon and District Attorney Harvey Dent.",
			Duration:    152,
			Genre:       "Action",
			Language:    "English",
			ReleaseDate: "2008-07-18",
			AvgRating:   4.9,
			ReviewCount: 2100,
		},
	}
}

func sampleShows() []model.Show {
	return []model.Show{
		{Id: 1, MovieId: 1, TheaterName: "PVR Cinemas", Location: "Phoenix Mall, Mumbai", ShowDate: "2024-01-15", ShowTime: "19:30:00", Price: 250, AvailableSeats: 85},
		{Id: 2, MovieId: 1, TheaterName: "INOX Multiplex", Location: "R City Mall, Mumbai", ShowDate: "2024-01-15", ShowTime: "22:00:00", Price: 300, AvailableSeats: 92},
		{Id: 3, MovieId: 2, TheaterName: "PVR Cinemas", Location: "Phoenix Mall, Mumbai", ShowDate: "2024-01-16", ShowTime: "16:00:00", Price: 280, AvailableSeats: 78},
		{Id: 4, MovieId: 3, TheaterName: "INOX Multiplex", Location: "R City Mall, Mumbai", ShowDate: "2024-01-17", ShowTime: "21:15:00", Price: 220, AvailableSeats: 0},
	}
}

func sampleBookings() []model.BookingRecord {
	return []model.BookingRecord{
		{
			Id:            1,
			ShowId:        1,
			Title:         "Avengers: Endgame",
			TheaterName:   "PVR Cinemas",
			ShowDate:      "2024-01-15",
			ShowTime:      "19:30:00",
			CustomerName:  demoCustomerName,
			CustomerEmail: "demo@example.com",
			CustomerPhone: "+91 9876543210",
			Seats:         []string{"C3", "C4"},
			TotalAmount:   500,
			BookingDate:   "2024-01-10",
		},
	}
}

func sampleReviews() []review {
	return []review{
		{MovieId: 1, CustomerName: "John Doe", Rating: 5, ReviewText: "Amazing movie! Great storyline and excellent acting.", CreatedAt: "2024-01-10"},
		{MovieId: 1, CustomerName: "Jane Smith", Rating: 4, ReviewText: "Really enjoyed watching this. Worth the money!", CreatedAt: "2024-01-12"},
		{MovieId: 2, CustomerName: "Mike Johnson", Rating: 5, ReviewText: "Best Spider-Man movie ever made!", CreatedAt: "2024-01-11"},
	}
}

// Every show starts with the same seats taken.
var sampleBookedSeats = []string{"A1", "A2", "B5"}
