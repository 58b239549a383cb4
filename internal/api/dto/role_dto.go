package dto

// RoleRequest payload for creating or updating a role.
type RoleRequest struct {
	Name   string `json:"rolename"`
	Code   string `json:"rolecode"`
	Remark string `json:"remark"`
}

// RoleResponse is a single role row.
type RoleResponse struct {
	RoleID    int64  `json:"role_id"`
	Name      string `json:"rolename"`
	Code      string `json:"rolecode"`
	Remark    string `json:"remark"`
	CreatedAt string `json:"create_time"`
}

// RoleListResponse is a paginated role listing.
type RoleListResponse struct {
	Total int64          `json:"total"`
	List  []RoleResponse `json:"list"`
}

// RoleOptionResponse is a dropdown row.
type RoleOptionResponse struct {
	RoleID int64  `json:"role_id"`
	Name   string `json:"rolename"`
}

// RoleMenuResponse is one menu grant for a role.
type RoleMenuResponse struct {
	RoleID int64 `json:"role_id"`
	MenuID int64 `json:"menu_id"`
}
