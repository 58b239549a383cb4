package domain

import "time"

// Role groups menu permissions and is assigned to employees through the
// role/employee linkage. An employee without a linkage cannot log in.
type Role struct {
	ID        int64
	Name      string
	Code      string
	Remark    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleEmployee links an employee to its role.
type RoleEmployee struct {
	RoleID     int64
	EmployeeID int64
}

// RoleMenu grants a role access to a menu entry.
type RoleMenu struct {
	RoleID int64
	MenuID int64
}
