package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-service/internal/api/dto"
	"github.com/spec-kit/admin-service/internal/domain"
	"github.com/spec-kit/admin-service/internal/service"
)

// DepartmentHandler exposes the department CRUD endpoints.
type DepartmentHandler struct {
	departments *service.DepartmentService
}

// NewDepartmentHandler constructs handler.
func NewDepartmentHandler(departments *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departments: departments}
}

// Create handles POST /v1/departments.
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "deptname required")
	}

	dept := &domain.Department{
		Name:      req.Name,
		Sort:      req.Sort,
		ManagerID: req.ManagerID,
		ParentID:  req.ParentID,
	}
	if err := h.departments.Create(c.UserContext(), dept); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": departmentResponse(dept)})
}

// List handles GET /v1/departments.
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	list, err := h.departments.List(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.DepartmentResponse, 0, len(list))
	for i := range list {
		resp = append(resp, departmentResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /v1/departments/:id.
func (h *DepartmentHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid department id")
	}
	dept, err := h.departments.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": departmentResponse(dept)})
}

// Update handles POST /v1/departments/update.
func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	var req struct {
		dto.DepartmentRequest
		DepartmentID int64 `json:"department_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.DepartmentID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "department_id required")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "deptname required")
	}

	dept := &domain.Department{
		ID:        req.DepartmentID,
		Name:      req.Name,
		Sort:      req.Sort,
		ManagerID: req.ManagerID,
		ParentID:  req.ParentID,
	}
	if err := h.departments.Update(c.UserContext(), dept); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "updated"}})
}

// Delete handles DELETE /v1/departments/:id.
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid department id")
	}
	if err := h.departments.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// SelectList handles GET /v1/departments/select_list: the department tree
// for dropdowns.
func (h *DepartmentHandler) SelectList(c *fiber.Ctx) error {
	forest, err := h.departments.Tree(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": forest})
}

func departmentResponse(dept *domain.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		DepartmentID: dept.ID,
		Name:         dept.Name,
		Sort:         dept.Sort,
		ManagerID:    dept.ManagerID,
		ParentID:     dept.ParentID,
		CreatedAt:    dept.CreatedAt.Format(timeLayout),
	}
}
