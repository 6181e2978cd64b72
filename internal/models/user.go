package models

import (
	"gorm.io/gorm"
)

// User represents a registered user of the application
type User struct {
	gorm.Model
	FirstName    string  `gorm:"not null" json:"first_name"`
	LastName     string  `gorm:"not null" json:"last_name"`
	ProfilePhoto *string `json:"profile_photo"`
	Email        string  `gorm:"unique;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Password     string  `gorm:"-" json:"password"`
}

func (user *User) ToUserResponse() *UserResponse {
	return &UserResponse{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		ProfilePhoto: user.ProfilePhoto,
		Email:        user.Email,
	}
}
