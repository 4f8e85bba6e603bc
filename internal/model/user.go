package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role is the single access level attached to a user account.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// In reports whether the role is one of the allowed roles.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// IsAdminLevel reports whether the role grants admin-directory membership.
func (r Role) IsAdminLevel() bool {
	return r.In(RoleAdmin, RoleSuperAdmin)
}

// User represents an authenticated account in the system
type User struct {
	BaseModel
	FullName  string     `gorm:"type:varchar(255);not null" json:"full_name" validate:"required"`
	FirstName string     `gorm:"type:varchar(255)" json:"first_name"`
	LastName  string     `gorm:"type:varchar(255)" json:"last_name"`
	Email     string     `gorm:"type:varchar(255);not null;uniqueIndex:udx_users_email,where:deleted_at IS NULL" json:"email" validate:"required,email"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Gender    string     `gorm:"type:varchar(10)" json:"gender"`
	Password  string     `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Role      Role       `gorm:"type:varchar(20);not null;default:'user';index" json:"role"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Identity returns the caller value object for this account.
func (u *User) Identity() Identity {
	return Identity{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.FullName,
		Role:  u.Role,
	}
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	FullName  string     `json:"full_name"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Gender    string     `json:"gender"`
	Role      Role       `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		BirthDate: u.BirthDate,
		Gender:    u.Gender,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
