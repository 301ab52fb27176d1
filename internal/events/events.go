package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Routing keys published on booking state changes.
const (
	RKBookingCreated   = "booking.created"
	RKBookingCancelled = "booking.cancelled"
)

// BookingCreated carries everything the notification worker needs, so it
// never has to reach back into the database.
type BookingCreated struct {
	BookingID   uint      `json:"booking_id"`
	SlotStart   time.Time `json:"slot_start"`
	Reason      string    `json:"reason,omitempty"`
	UserName    string    `json:"user_name,omitempty"`
	UserEmail   string    `json:"user_email,omitempty"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	DoctorEmail string    `json:"doctor_email,omitempty"`
}

type BookingCancelled struct {
	BookingID uint      `json:"booking_id"`
	SlotStart time.Time `json:"slot_start"`
	UserName  string    `json:"user_name,omitempty"`
	UserEmail string    `json:"user_email,omitempty"`
}

func Unmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
