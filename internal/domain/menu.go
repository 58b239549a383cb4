package domain

// Menu is a navigable permission entry. Menus nest via ParentID; zero marks
// a top-level entry.
type Menu struct {
	ID       int64
	Name     string
	ParentID int64
}
