package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-service/internal/auth"
	"github.com/spec-kit/admin-service/internal/domain"
	"github.com/spec-kit/admin-service/internal/events"
	"github.com/spec-kit/admin-service/internal/repository"
	apperrors "github.com/spec-kit/admin-service/pkg/util"
)

// defaultResetPassword is the well-known password an admin resets an account
// to; the employee is expected to change it on next login.
const defaultResetPassword = "123456"

// EmployeeService drives the employee CRUD surface.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// NewEmployeeService builds the service.
func NewEmployeeService(employees repository.EmployeeRepository, dispatcher events.Dispatcher, logger *zap.Logger, bcryptCost int) *EmployeeService {
	return &EmployeeService{
		employees:  employees,
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Create inserts a new employee. The login name and phone number must both
// be unique; the initial password is the login name, hashed.
func (s *EmployeeService) Create(ctx context.Context, emp *domain.Employee) error {
	count, err := s.employees.CountByLoginNameOrPhone(ctx, emp.LoginName, emp.Phone, 0)
	if err != nil {
		s.logger.Error("error count employees", zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("login name or phone already in use", nil)
	}

	hash, err := auth.HashPassword(emp.LoginName, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	emp.PasswordHash = hash

	if err := s.employees.Create(ctx, emp); err != nil {
		s.logger.Error("error insert employee", zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	return nil
}

// EmployeeListResult pairs a page of employees with the total row count.
// Total is computed on the first page only, mirroring the admin UI contract.
type EmployeeListResult struct {
	Total int64
	List  []domain.Employee
}

// List returns a filtered, paginated employee listing.
func (s *EmployeeService) List(ctx context.Context, filters repository.EmployeeFilters) (*EmployeeListResult, error) {
	result := &EmployeeListResult{}

	if filters.Offset == 0 {
		total, err := s.employees.Count(ctx, filters)
		if err != nil {
			s.logger.Error("error count employees", zap.Error(err))
			return nil, apperrors.NewInternalError(err)
		}
		result.Total = total
	}

	list, err := s.employees.List(ctx, filters)
	if err != nil {
		s.logger.Error("error list employees", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	result.List = list
	return result, nil
}

// Get returns one employee by id.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"id": id})
		}
		s.logger.Error("error find employee", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	return emp, nil
}

// Update rewrites an employee's profile fields after re-checking the
// uniqueness constraints against every other row.
func (s *EmployeeService) Update(ctx context.Context, emp *domain.Employee) error {
	count, err := s.employees.CountByLoginNameOrPhone(ctx, emp.LoginName, emp.Phone, emp.ID)
	if err != nil {
		s.logger.Error("error count employees", zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("login name or phone already in use", nil)
	}

	if err := s.employees.Update(ctx, emp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("employee", map[string]any{"id": emp.ID})
		}
		s.logger.Error("error update employee", zap.Int64("id", emp.ID), zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	return nil
}

// SetDisabled flips the disabled flag.
func (s *EmployeeService) SetDisabled(ctx context.Context, id int64, disabled bool) error {
	if err := s.employees.SetDisabled(ctx, id, disabled); err != nil {
		s.logger.Error("error set disabled flag", zap.Int64("id", id), zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	if disabled {
		s.publish(ctx, events.Event{Type: events.EventEmployeeDisabled, SubjectID: id})
	}
	return nil
}

// ResetPassword sets the account back to the well-known default password.
func (s *EmployeeService) ResetPassword(ctx context.Context, id int64) error {
	hash, err := auth.HashPassword(defaultResetPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.employees.SetPasswordHash(ctx, id, hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("employee", map[string]any{"id": id})
		}
		s.logger.Error("error reset password", zap.Int64("id", id), zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	s.publish(ctx, events.Event{Type: events.EventPasswordReset, SubjectID: id})
	return nil
}

// ChangeDepartment moves a batch of employees to another department.
func (s *EmployeeService) ChangeDepartment(ctx context.Context, ids []int64, departmentID int64) error {
	if len(ids) == 0 {
		return apperrors.NewValidationError("employee ids required", nil)
	}
	if err := s.employees.ChangeDepartment(ctx, ids, departmentID); err != nil {
		s.logger.Error("error change department", zap.Int64("department_id", departmentID), zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	s.publish(ctx, events.Event{
		Type: events.EventDepartmentReassigned,
		Payload: events.DepartmentReassignedPayload{
			EmployeeIDs:  ids,
			DepartmentID: departmentID,
		},
	})
	return nil
}

// SelectList returns the employee dropdown rows, joined with department
// names.
func (s *EmployeeService) SelectList(ctx context.Context) ([]repository.EmployeeOption, error) {
	options, err := s.employees.SelectList(ctx)
	if err != nil {
		s.logger.Error("error list employee options", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	return options, nil
}

func (s *EmployeeService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	s.dispatcher.Publish(ctx, event)
}
