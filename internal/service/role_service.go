package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-service/internal/domain"
	"github.com/spec-kit/admin-service/internal/repository"
	"github.com/spec-kit/admin-service/pkg/tree"
	apperrors "github.com/spec-kit/admin-service/pkg/util"
)

// RoleService drives the role CRUD surface plus the role/employee and
// role/menu views.
type RoleService struct {
	roles  repository.RoleRepository
	menus  repository.MenuRepository
	logger *zap.Logger
}

// NewRoleService builds the service.
func NewRoleService(roles repository.RoleRepository, menus repository.MenuRepository, logger *zap.Logger) *RoleService {
	return &RoleService{roles: roles, menus: menus, logger: logger}
}

// Create inserts a role; both name and code must be unique.
func (s *RoleService) Create(ctx context.Context, role *domain.Role) error {
	count, err := s.roles.CountByNameOrCode(ctx, role.Name, role.Code, 0)
	if err != nil {
		s.logger.Error("error count roles", zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("role name or code already in use", nil)
	}

	if err := s.roles.Create(ctx, role); err != nil {
		s.logger.Error("error insert role", zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	return nil
}

// RoleListResult pairs a page of roles with the total row count.
type RoleListResult struct {
	Total int64
	List  []domain.Role
}

// List returns a filtered, paginated role listing; total is computed on the
// first page only.
func (s *RoleService) List(ctx context.Context, filters repository.RoleFilters) (*RoleListResult, error) {
	result := &RoleListResult{}

	if filters.Offset == 0 {
		total, err := s.roles.Count(ctx, filters)
		if err != nil {
			s.logger.Error("error count roles", zap.Error(err))
			return nil, apperrors.NewInternalError(err)
		}
		result.Total = total
	}

	list, err := s.roles.List(ctx, filters)
	if err != nil {
		s.logger.Error("error list roles", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	result.List = list
	return result, nil
}

// Get returns one role by id.
func (s *RoleService) Get(ctx context.Context, id int64) (*domain.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("role", map[string]any{"id": id})
		}
		s.logger.Error("error find role", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	return role, nil
}

// Update rewrites a role after re-checking name/code uniqueness.
func (s *RoleService) Update(ctx context.Context, role *domain.Role) error {
	count, err := s.roles.CountByNameOrCode(ctx, role.Name, role.Code, role.ID)
	if err != nil {
		s.logger.Error("error count roles", zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("role name or code already in use", nil)
	}

	if err := s.roles.Update(ctx, role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("role", map[string]any{"id": role.ID})
		}
		s.logger.Error("error update role", zap.Int64("id", role.ID), zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Delete removes a role that has no employees assigned to it.
func (s *RoleService) Delete(ctx context.Context, id int64) error {
	count, err := s.roles.CountEmployees(ctx, id)
	if err != nil {
		s.logger.Error("error count role employees", zap.Int64("id", id), zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("role still has employees assigned", nil)
	}

	if err := s.roles.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("role", map[string]any{"id": id})
		}
		s.logger.Error("error delete role", zap.Int64("id", id), zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	return nil
}

// SelectList returns the role dropdown rows.
func (s *RoleService) SelectList(ctx context.Context) ([]domain.Role, error) {
	list, err := s.roles.SelectList(ctx)
	if err != nil {
		s.logger.Error("error list role options", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	return list, nil
}

// RoleEmployeeListResult pairs a page of employees in a role with the total
// row count.
type RoleEmployeeListResult struct {
	Total int64
	List  []domain.Employee
}

// Employees returns the employees assigned to a role, filtered and
// paginated; total is computed on the first page only.
func (s *RoleService) Employees(ctx context.Context, roleID int64, filters repository.RoleEmployeeFilters) (*RoleEmployeeListResult, error) {
	result := &RoleEmployeeListResult{}

	if filters.Offset == 0 {
		total, err := s.roles.CountEmployeesFiltered(ctx, roleID, filters)
		if err != nil {
			s.logger.Error("error count role employees", zap.Int64("role_id", roleID), zap.Error(err))
			return nil, apperrors.NewInternalError(err)
		}
		result.Total = total
	}

	list, err := s.roles.ListEmployees(ctx, roleID, filters)
	if err != nil {
		s.logger.Error("error list role employees", zap.Int64("role_id", roleID), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	result.List = list
	return result, nil
}

// MenuTree returns every menu entry as a parent/child forest for the
// permission picker.
func (s *RoleService) MenuTree(ctx context.Context) ([]*tree.Node, error) {
	menus, err := s.menus.List(ctx)
	if err != nil {
		s.logger.Error("error list menus", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	entries := make([]tree.Entry, 0, len(menus))
	for _, menu := range menus {
		entries = append(entries, tree.Entry{ID: menu.ID, Name: menu.Name, ParentID: menu.ParentID})
	}
	return tree.Build(entries), nil
}

// MenuIDs returns the menu grants for one role.
func (s *RoleService) MenuIDs(ctx context.Context, roleID int64) ([]domain.RoleMenu, error) {
	grants, err := s.roles.MenuIDs(ctx, roleID)
	if err != nil {
		s.logger.Error("error list role menus", zap.Int64("role_id", roleID), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	return grants, nil
}
