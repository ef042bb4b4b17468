package domain

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Pending email change. NewEmail is set together with both tokens by
	// InitEmailChange; each confirmed side clears its token and the change
	// is promoted into Email once both are gone.
	NewEmail      *string `json:"new_email,omitempty"`
	OldEmailToken *string `json:"-"`
	NewEmailToken *string `json:"-"`

	ConfirmedAt *time.Time `json:"confirmed_at"`

	AvatarID *uint `json:"avatar_id,omitempty"`
	Avatar   *File `gorm:"foreignKey:AvatarID" json:"avatar,omitempty"`
	gorm.Model
}

// Confirmed reports whether the signup email has been confirmed.
func (u *User) Confirmed() bool {
	return u.ConfirmedAt != nil
}
