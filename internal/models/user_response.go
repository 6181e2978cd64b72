package models

type UserResponse struct {
	ID           uint    `json:"id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	ProfilePhoto *string `json:"profile_photo"`
	Email        string  `json:"email"`
}
