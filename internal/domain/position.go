package domain

import "time"

// Position is a job title an employee can hold.
type Position struct {
	ID        int64
	Name      string
	Level     string
	Sort      int64
	Remark    string
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
