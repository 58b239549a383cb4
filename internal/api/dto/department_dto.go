package dto

// DepartmentRequest payload for creating or updating a department.
type DepartmentRequest struct {
	Name      string `json:"deptname"`
	Sort      int32  `json:"sort"`
	ManagerID int64  `json:"managerid"`
	ParentID  int64  `json:"parentid"`
}

// DepartmentResponse is a single department row.
type DepartmentResponse struct {
	DepartmentID int64  `json:"department_id"`
	Name         string `json:"deptname"`
	Sort         int32  `json:"sort"`
	ManagerID    int64  `json:"managerid"`
	ParentID     int64  `json:"parentid"`
	CreatedAt    string `json:"create_time"`
}
