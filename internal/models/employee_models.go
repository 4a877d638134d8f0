package models

// Employee represents a shop employee who can log into the terminal.
// The login code is the unique identifier typed (or scanned) at the login
// screen. PasswordHash is a bcrypt hash and is never serialized.
type Employee struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Code         string `json:"code" db:"code"`
	PasswordHash string `json:"-" db:"password_hash"`
}

// Credentials is the login request payload.
type Credentials struct {
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegistrationPayload is the payload for creating a new employee.
type RegistrationPayload struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required,min=4"`
}
