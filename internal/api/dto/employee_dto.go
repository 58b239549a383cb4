package dto

// EmployeeRequest payload for creating or updating an employee.
type EmployeeRequest struct {
	RealName     string `json:"realname"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Gender       uint8  `json:"gender"`
	LoginName    string `json:"login_name"`
	DepartmentID int64  `json:"department_id"`
	PositionID   int64  `json:"position_id"`
	Disabled     bool   `json:"disabled_flag"`
}

// EmployeeResponse is a single employee row.
type EmployeeResponse struct {
	EmployeeID   int64  `json:"employee_id"`
	RealName     string `json:"realname"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Gender       uint8  `json:"gender"`
	LoginName    string `json:"login_name"`
	DepartmentID int64  `json:"department_id"`
	PositionID   int64  `json:"position_id"`
	Disabled     bool   `json:"disabled_flag"`
	CreatedAt    string `json:"create_time"`
}

// EmployeeListResponse is a paginated employee listing.
type EmployeeListResponse struct {
	Total int64              `json:"total"`
	List  []EmployeeResponse `json:"list"`
}

// EmployeeOptionResponse is a dropdown row.
type EmployeeOptionResponse struct {
	EmployeeID     int64  `json:"employee_id"`
	RealName       string `json:"realname"`
	DepartmentID   int64  `json:"department_id"`
	DepartmentName string `json:"department_name"`
}
