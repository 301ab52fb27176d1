package models

import "time"

type Slot struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Start    time.Time `gorm:"not null;index" json:"start"`
	DoctorID *uint     `json:"doctor_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Doctor   *User     `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Bookings []Booking `gorm:"foreignKey:SlotID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsBooked reports whether the slot has a confirmed booking. Only meaningful
// when Bookings were loaded filtered to confirmed status.
func (s *Slot) IsBooked() bool {
	for _, b := range s.Bookings {
		if b.Status == StatusConfirmed {
			return true
		}
	}
	return false
}
