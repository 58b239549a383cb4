package domain

import "time"

// Gender codes follow the upstream HR system (0 unknown, 1 male, 2 female).
type Gender uint8

// Employee is the domain model for back-office staff accounts. LoginToken is
// the server-side session token: set on login, cleared on logout, and the
// authoritative check that revokes an otherwise still-valid credential.
type Employee struct {
	ID           int64
	RealName     string
	Phone        string
	Email        string
	Gender       Gender
	LoginName    string
	PasswordHash string
	LoginToken   string
	LoginAt      time.Time
	DepartmentID int64
	PositionID   int64
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
