package dto

import "time"

type CreateBookingRequest struct {
	SlotID uint   `json:"slot_id" validate:"required"`
	Reason string `json:"reason"`
}

type UpdateBookingRequest struct {
	Reason string `json:"reason"`
}

type CreateSlotRequest struct {
	Start    time.Time `json:"start" validate:"required"`
	DoctorID *uint     `json:"doctor_id"`
}

type BulkCreateSlotsRequest struct {
	Starts   []time.Time `json:"starts" validate:"required,min=1"`
	DoctorID *uint       `json:"doctor_id"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
