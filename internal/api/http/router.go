package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-service/internal/api/http/handlers"
	"github.com/spec-kit/admin-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Employees   *handlers.EmployeeHandler
	Departments *handlers.DepartmentHandler
	Positions   *handlers.PositionHandler
	Roles       *handlers.RoleHandler
	Gate        *auth.Gate
}

// RegisterRoutes wires HTTP routes. The gate runs on the whole /v1 group and
// resolves every request to an identity without rejecting; protected routes
// additionally require that identity to be authenticated.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	v1 := app.Group("/v1", cfg.Gate.Handle)
	v1.Post("/login", cfg.Auth.Login)
	// Logout succeeds for anonymous callers too, so it sits outside the
	// authenticated group.
	v1.Get("/logout", cfg.Auth.Logout)

	protected := v1.Group("", auth.RequireAuthenticated())

	protected.Post("/employees", cfg.Employees.Create)
	protected.Get("/employees", cfg.Employees.List)
	protected.Get("/employees/select_list", cfg.Employees.SelectList)
	protected.Post("/employees/update", cfg.Employees.Update)
	protected.Get("/employees/:id", cfg.Employees.Get)
	protected.Post("/employees/:id/disabled/:flag", cfg.Employees.SetDisabled)
	protected.Post("/employees/:id/password/reset", cfg.Employees.ResetPassword)
	protected.Post("/employees/:ids/department/:department_id", cfg.Employees.ChangeDepartment)

	protected.Post("/departments", cfg.Departments.Create)
	protected.Get("/departments", cfg.Departments.List)
	protected.Get("/departments/select_list", cfg.Departments.SelectList)
	protected.Post("/departments/update", cfg.Departments.Update)
	protected.Get("/departments/:id", cfg.Departments.Get)
	protected.Delete("/departments/:id", cfg.Departments.Delete)

	protected.Post("/positions", cfg.Positions.Create)
	protected.Get("/positions", cfg.Positions.List)
	protected.Get("/positions/select_list", cfg.Positions.SelectList)
	protected.Post("/positions/update", cfg.Positions.Update)
	protected.Get("/positions/:id", cfg.Positions.Get)
	protected.Delete("/positions/:id", cfg.Positions.Delete)

	protected.Post("/roles", cfg.Roles.Create)
	protected.Get("/roles", cfg.Roles.List)
	protected.Get("/roles/select_list", cfg.Roles.SelectList)
	protected.Get("/roles/menus", cfg.Roles.MenuTree)
	protected.Post("/roles/update", cfg.Roles.Update)
	protected.Get("/roles/:id", cfg.Roles.Get)
	protected.Delete("/roles/:id", cfg.Roles.Delete)
	protected.Get("/roles/:id/employees", cfg.Roles.Employees)
	protected.Get("/roles/:id/menus", cfg.Roles.MenuIDs)
}
