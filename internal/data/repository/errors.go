package repository

import "errors"

var (
	// ErrDuplicateBookingID is returned when a booking insert hits the
	// unique constraint on booking_id. Callers retry with a fresh ID.
	ErrDuplicateBookingID = errors.New("booking id already exists")
)
