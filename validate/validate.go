// Package validate holds the booking site's form checks. The email and phone
// shapes are loose and do not follow the RFCs.
package validate

import (
	"regexp"
	"strings"

	"moviehub-cli/model"
)

const (
	MsgNameRequired   = "Name is required"
	MsgEmailRequired  = "Email is required"
	MsgEmailInvalid   = "Please enter a valid email address"
	MsgPhoneRequired  = "Phone number is required"
	MsgPhoneInvalid   = "Please enter a valid phone number"
	MsgSeatsRequired  = "Please select at least one seat"
	MsgRatingRange    = "Rating must be between 1 and 5"
	MsgReviewRequired = "Review text is required"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[+]?[\d\s\-\(\)]{10,}$`)
)

// Email accepts a single @ with non-blank parts and a dot in the domain.
func Email(email string) bool {
	return emailPattern.MatchString(email)
}

// Phone accepts digits, spaces, hyphens and parentheses, at least 10 of
// them, with an optional leading +.
func Phone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// BookingForm returns the problems with the form in display order. An empty
// result means the form can be submitted.
func BookingForm(customer model.CustomerDetails, selectedSeats []string) []string {
	var errs []string

	if strings.TrimSpace(customer.Name) == "" {
		errs = append(errs, MsgNameRequired)
	}

	if strings.TrimSpace(customer.Email) == "" {
		errs = append(errs, MsgEmailRequired)
	} else if !Email(customer.Email) {
		errs = append(errs, MsgEmailInvalid)
	}

	if strings.TrimSpace(customer.Phone) == "" {
		errs = append(errs, MsgPhoneRequired)
	} else if !Phone(customer.Phone) {
		errs = append(errs, MsgPhoneInvalid)
	}

	if len(selectedSeats) == 0 {
		errs = append(errs, MsgSeatsRequired)
	}

	return errs
}

// Review checks a review before it is posted.
func Review(req model.ReviewRequest) []string {
	var errs []string
	if strings.TrimSpace(req.CustomerName) == "" {
		errs = append(errs, MsgNameRequired)
	}
	if req.Rating < 1 || req.Rating > 5 {
		errs = append(errs, MsgRatingRange)
	}
	if strings.TrimSpace(req.ReviewText) == "" {
		errs = append(errs, MsgReviewRequired)
	}
	return errs
}

// Check wraps a list of messages into a model.ValidationError, or nil.
func Check(messages []string) error {
	return model.NewValidationError(messages...)
}
