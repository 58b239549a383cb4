package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-service/internal/api/dto"
	"github.com/spec-kit/admin-service/internal/domain"
	"github.com/spec-kit/admin-service/internal/repository"
	"github.com/spec-kit/admin-service/internal/service"
)

// EmployeeHandler exposes the employee CRUD endpoints.
type EmployeeHandler struct {
	employees *service.EmployeeService
}

// NewEmployeeHandler constructs handler.
func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// Create handles POST /v1/employees.
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RealName == "" || req.Phone == "" || req.LoginName == "" || req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "realname, phone, login_name, email required")
	}

	emp := employeeFromRequest(&req)
	if err := h.employees.Create(c.UserContext(), emp); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": employeeResponse(emp)})
}

// List handles GET /v1/employees.
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	filters := repository.EmployeeFilters{
		LoginName: c.Query("login_name"),
		Phone:     c.Query("phone"),
	}
	if val := c.Query("disabled_flag"); val != "" {
		disabled := val == "1"
		filters.Disabled = &disabled
	}
	filters.Offset, filters.Limit = pageWindow(c)

	result, err := h.employees.List(c.UserContext(), filters)
	if err != nil {
		return err
	}

	resp := dto.EmployeeListResponse{Total: result.Total, List: make([]dto.EmployeeResponse, 0, len(result.List))}
	for i := range result.List {
		resp.List = append(resp.List, employeeResponse(&result.List[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /v1/employees/:id.
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid employee id")
	}
	emp, err := h.employees.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(emp)})
}

// Update handles POST /v1/employees/update.
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var req struct {
		dto.EmployeeRequest
		EmployeeID int64 `json:"employee_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.EmployeeID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "employee_id required")
	}
	if req.RealName == "" || req.Phone == "" || req.LoginName == "" || req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "realname, phone, login_name, email required")
	}

	emp := employeeFromRequest(&req.EmployeeRequest)
	emp.ID = req.EmployeeID
	if err := h.employees.Update(c.UserContext(), emp); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "updated"}})
}

// SetDisabled handles POST /v1/employees/:id/disabled/:flag.
func (h *EmployeeHandler) SetDisabled(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid employee id")
	}
	if err := h.employees.SetDisabled(c.UserContext(), id, c.Params("flag") == "1"); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "ok"}})
}

// ResetPassword handles POST /v1/employees/:id/password/reset.
func (h *EmployeeHandler) ResetPassword(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid employee id")
	}
	if err := h.employees.ResetPassword(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_reset"}})
}

// ChangeDepartment handles POST /v1/employees/:ids/department/:department_id.
// The ids segment is a comma separated list.
func (h *EmployeeHandler) ChangeDepartment(c *fiber.Ctx) error {
	departmentID, err := strconv.ParseInt(c.Params("department_id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid department id")
	}

	var ids []int64
	for _, part := range strings.Split(c.Params("ids"), ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid employee id list")
		}
		ids = append(ids, id)
	}

	if err := h.employees.ChangeDepartment(c.UserContext(), ids, departmentID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "ok"}})
}

// SelectList handles GET /v1/employees/select_list.
func (h *EmployeeHandler) SelectList(c *fiber.Ctx) error {
	options, err := h.employees.SelectList(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.EmployeeOptionResponse, 0, len(options))
	for _, opt := range options {
		resp = append(resp, dto.EmployeeOptionResponse{
			EmployeeID:     opt.EmployeeID,
			RealName:       opt.RealName,
			DepartmentID:   opt.DepartmentID,
			DepartmentName: opt.DepartmentName,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}

func employeeFromRequest(req *dto.EmployeeRequest) *domain.Employee {
	return &domain.Employee{
		RealName:     req.RealName,
		Phone:        req.Phone,
		Email:        req.Email,
		Gender:       domain.Gender(req.Gender),
		LoginName:    req.LoginName,
		DepartmentID: req.DepartmentID,
		PositionID:   req.PositionID,
		Disabled:     req.Disabled,
	}
}

func employeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		EmployeeID:   emp.ID,
		RealName:     emp.RealName,
		Phone:        emp.Phone,
		Email:        emp.Email,
		Gender:       uint8(emp.Gender),
		LoginName:    emp.LoginName,
		DepartmentID: emp.DepartmentID,
		PositionID:   emp.PositionID,
		Disabled:     emp.Disabled,
		CreatedAt:    emp.CreatedAt.Format(timeLayout),
	}
}
