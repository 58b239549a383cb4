package domain

import "time"

// Department represents an organizational unit. Departments nest via
// ParentID; zero marks a top-level department.
type Department struct {
	ID        int64
	Name      string
	Sort      int32
	ManagerID int64
	ParentID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
