package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-service/internal/api/dto"
	"github.com/spec-kit/admin-service/internal/domain"
	"github.com/spec-kit/admin-service/internal/repository"
	"github.com/spec-kit/admin-service/internal/service"
)

// RoleHandler exposes the role CRUD endpoints plus the role/employee and
// role/menu views.
type RoleHandler struct {
	roles *service.RoleService
}

// NewRoleHandler constructs handler.
func NewRoleHandler(roles *service.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// Create handles POST /v1/roles.
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var req dto.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Code == "" {
		return fiber.NewError(http.StatusBadRequest, "rolename and rolecode required")
	}

	role := &domain.Role{Name: req.Name, Code: req.Code, Remark: req.Remark}
	if err := h.roles.Create(c.UserContext(), role); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": roleResponse(role)})
}

// List handles GET /v1/roles.
func (h *RoleHandler) List(c *fiber.Ctx) error {
	offset, limit := pageWindow(c)
	filters := repository.RoleFilters{
		Name:   c.Query("rolename"),
		Offset: offset,
		Limit:  limit,
	}

	result, err := h.roles.List(c.UserContext(), filters)
	if err != nil {
		return err
	}

	list := make([]dto.RoleResponse, 0, len(result.List))
	for i := range result.List {
		list = append(list, roleResponse(&result.List[i]))
	}
	return c.JSON(fiber.Map{"data": dto.RoleListResponse{Total: result.Total, List: list}})
}

// Get handles GET /v1/roles/:id.
func (h *RoleHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid role id")
	}
	role, err := h.roles.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": roleResponse(role)})
}

// Update handles POST /v1/roles/update.
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	var req struct {
		dto.RoleRequest
		RoleID int64 `json:"role_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RoleID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "role_id required")
	}
	if req.Name == "" || req.Code == "" {
		return fiber.NewError(http.StatusBadRequest, "rolename and rolecode required")
	}

	role := &domain.Role{ID: req.RoleID, Name: req.Name, Code: req.Code, Remark: req.Remark}
	if err := h.roles.Update(c.UserContext(), role); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "updated"}})
}

// Delete handles DELETE /v1/roles/:id. Roles with employees assigned are
// rejected with a conflict.
func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid role id")
	}
	if err := h.roles.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// SelectList handles GET /v1/roles/select_list.
func (h *RoleHandler) SelectList(c *fiber.Ctx) error {
	list, err := h.roles.SelectList(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.RoleOptionResponse, 0, len(list))
	for i := range list {
		resp = append(resp, dto.RoleOptionResponse{RoleID: list[i].ID, Name: list[i].Name})
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Employees handles GET /v1/roles/:id/employees: employees assigned to the
// role, filtered and paginated.
func (h *RoleHandler) Employees(c *fiber.Ctx) error {
	roleID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid role id")
	}

	offset, limit := pageWindow(c)
	filters := repository.RoleEmployeeFilters{
		RealName:  c.Query("realname"),
		LoginName: c.Query("login_name"),
		Phone:     c.Query("phone"),
		Offset:    offset,
		Limit:     limit,
	}

	result, err := h.roles.Employees(c.UserContext(), roleID, filters)
	if err != nil {
		return err
	}

	list := make([]dto.EmployeeResponse, 0, len(result.List))
	for i := range result.List {
		list = append(list, employeeResponse(&result.List[i]))
	}
	return c.JSON(fiber.Map{"data": dto.EmployeeListResponse{Total: result.Total, List: list}})
}

// MenuTree handles GET /v1/roles/menus: the full menu forest for the
// permission picker.
func (h *RoleHandler) MenuTree(c *fiber.Ctx) error {
	forest, err := h.roles.MenuTree(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": forest})
}

// MenuIDs handles GET /v1/roles/:id/menus: the menus granted to one role.
func (h *RoleHandler) MenuIDs(c *fiber.Ctx) error {
	roleID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid role id")
	}

	grants, err := h.roles.MenuIDs(c.UserContext(), roleID)
	if err != nil {
		return err
	}
	resp := make([]dto.RoleMenuResponse, 0, len(grants))
	for _, grant := range grants {
		resp = append(resp, dto.RoleMenuResponse{RoleID: grant.RoleID, MenuID: grant.MenuID})
	}
	return c.JSON(fiber.Map{"data": resp})
}

func roleResponse(role *domain.Role) dto.RoleResponse {
	return dto.RoleResponse{
		RoleID:    role.ID,
		Name:      role.Name,
		Code:      role.Code,
		Remark:    role.Remark,
		CreatedAt: role.CreatedAt.Format(timeLayout),
	}
}
