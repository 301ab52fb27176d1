package dto

import (
	"time"

	"github.com/clinicdesk/booking-api/internal/models"
)

type SlotResponse struct {
	ID       uint      `json:"id"`
	Start    time.Time `json:"start"`
	Doctor   *string   `json:"doctor"`
	IsBooked bool      `json:"is_booked"`
}

type SlotDetails struct {
	ID         uint      `json:"id"`
	Start      time.Time `json:"start"`
	DoctorName *string   `json:"doctor_name"`
}

type BookingResponse struct {
	ID        uint                 `json:"id"`
	SlotID    uint                 `json:"slot_id"`
	UserID    *uint                `json:"user_id,omitempty"`
	Username  string               `json:"username,omitempty"`
	Reason    string               `json:"reason"`
	Status    models.BookingStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	Slot      *SlotDetails         `json:"slot_details,omitempty"`
}

type UserResponse struct {
	ID       uint            `json:"id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	FullName string          `json:"full_name"`
	Roles    models.RoleList `json:"roles"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToSlotResponse(s *models.Slot) SlotResponse {
	resp := SlotResponse{
		ID:       s.ID,
		Start:    s.Start,
		IsBooked: s.IsBooked(),
	}
	if s.Doctor != nil {
		name := s.Doctor.DisplayName()
		resp.Doctor = &name
	}
	return resp
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:        b.ID,
		SlotID:    b.SlotID,
		UserID:    b.UserID,
		Reason:    b.Reason,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
	if b.User != nil {
		resp.Username = b.User.Username
	}
	if b.Slot != nil {
		details := &SlotDetails{ID: b.Slot.ID, Start: b.Slot.Start}
		if b.Slot.Doctor != nil {
			name := b.Slot.Doctor.DisplayName()
			details.DoctorName = &name
		}
		resp.Slot = details
	}
	return resp
}

func ToUserResponse(u *models.User) UserResponse {
	roles := u.Roles
	if roles == nil {
		roles = models.RoleList{}
	}
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Roles:    roles,
	}
}
