package model

import (
	"errors"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// ==================== Role Constants ====================

const (
	RoleArtist     = "artist"
	RoleVenue      = "venue"
	RoleStudio     = "studio"
	RoleJournalist = "journalist"
	RoleAdmin      = "admin"
	RoleFan        = "fan"
)

// ValidRoles lists every role a user can sign up with. Admin accounts are
// provisioned out of band.
var ValidRoles = []string{RoleArtist, RoleVenue, RoleStudio, RoleJournalist, RoleFan}

// ==================== Models ====================

// User is a platform account. One account has exactly one role.
type User struct {
	BaseModel
	Name         string `gorm:"size:120;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;index;not null" json:"role"`

	// Profile fields shared across roles
	Bio      string         `gorm:"type:text" json:"bio"`
	Location string         `gorm:"size:40;index" json:"location"`
	Genres   pq.StringArray `gorm:"type:text[]" json:"genres"`
	PhotoURL string         `gorm:"size:512" json:"photo_url"`

	Suspended bool `gorm:"default:false" json:"suspended"`
}

func (*User) TableName() string {
	return "users"
}

// ==================== Helpers ====================

// SetPassword hashes and stores the given plaintext password.
func (u *User) SetPassword(plain string) error {
	if len(plain) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares a plaintext password against the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// HasRole reports whether the user holds any of the given roles.
func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// IsValidRole reports whether role is one a user may register with.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
