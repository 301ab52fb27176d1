package models

import "time"

type Role string

const (
	RoleDoctor        Role = "doctor"
	RoleAdministrator Role = "administrator"
)

type RoleList []Role

func (l RoleList) Has(role Role) bool {
	for _, r := range l {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Username     string   `gorm:"uniqueIndex;not null" json:"username"`
	Email        string   `json:"email"`
	FullName     string   `json:"full_name"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Roles        RoleList `gorm:"serializer:json" json:"roles"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName prefers the full name, falling back to the username.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// Requester is the identity behind an incoming call, as extracted from the
// bearer token. The zero value is an anonymous requester.
type Requester struct {
	UserID        uint
	Authenticated bool
	Roles         RoleList
}

func (r Requester) IsDoctor() bool {
	return r.Authenticated && r.Roles.Has(RoleDoctor)
}

func (r Requester) IsAdministrator() bool {
	return r.Authenticated && r.Roles.Has(RoleAdministrator)
}
