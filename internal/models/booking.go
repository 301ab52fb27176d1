package models

import "time"

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID     uint          `gorm:"primaryKey" json:"id"`
	SlotID uint          `gorm:"not null;index:idx_bookings_slot_status" json:"slot_id"`
	UserID *uint         `gorm:"index" json:"user_id,omitempty"`
	Reason string        `gorm:"type:text" json:"reason"`
	Status BookingStatus `gorm:"type:varchar(20);not null;default:'confirmed';index:idx_bookings_slot_status" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Slot *Slot `gorm:"foreignKey:SlotID" json:"slot,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// OwnedBy reports whether the booking belongs to the given user.
func (b *Booking) OwnedBy(userID uint) bool {
	return b.UserID != nil && *b.UserID == userID
}
