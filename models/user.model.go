package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles form a closed set; handlers check membership through Role
// helpers instead of comparing raw strings.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// IsValidRole reports whether role is one of the three known roles.
func IsValidRole(role string) bool {
	return role == RoleStudent || role == RoleInstructor || role == RoleAdmin
}

// IsRegistrableRole reports whether a user may pick this role at
// registration. Admins are only created by an existing admin changing
// a user's role.
func IsRegistrableRole(role string) bool {
	return role == RoleStudent || role == RoleInstructor
}

type User struct {
	gorm.Model
	Name      string    `json:"name" gorm:"default:''"`
	Email     string    `json:"email" gorm:"unique;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      string    `json:"role" gorm:"default:'student'"` // student, instructor, admin
	LastLogin time.Time `json:"last_login" gorm:"default:NULL"`
	IsDeleted bool      `json:"-" gorm:"default:false"`
}

// PublicUser is the projection safe to embed in course and admin
// responses. It never carries the password hash.
type PublicUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
