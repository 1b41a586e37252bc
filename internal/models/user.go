package models

import "time"

// User represents a user account in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	DOB          string    `json:"dob"` // "YYYY-MM-DD"
	PasswordHash string    `json:"-"`   // Never expose this to the client
	CreatedAt    time.Time `json:"createdAt"`
}
