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

// DepartmentService drives the department CRUD surface.
type DepartmentService struct {
	departments repository.DepartmentRepository
	logger      *zap.Logger
}

// NewDepartmentService builds the service.
func NewDepartmentService(departments repository.DepartmentRepository, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{departments: departments, logger: logger}
}

// Create inserts a department; names are unique.
func (s *DepartmentService) Create(ctx context.Context, dept *domain.Department) error {
	count, err := s.departments.CountByName(ctx, dept.Name, 0)
	if err != nil {
		s.logger.Error("error count departments", zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("department name already in use", nil)
	}

	if err := s.departments.Create(ctx, dept); err != nil {
		s.logger.Error("error insert department", zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	return nil
}

// List returns all departments ordered for display.
func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	list, err := s.departments.List(ctx)
	if err != nil {
		s.logger.Error("error list departments", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	return list, nil
}

// Get returns one department by id.
func (s *DepartmentService) Get(ctx context.Context, id int64) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("department", map[string]any{"id": id})
		}
		s.logger.Error("error find department", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	return dept, nil
}

// Update rewrites a department after re-checking name uniqueness.
func (s *DepartmentService) Update(ctx context.Context, dept *domain.Department) error {
	count, err := s.departments.CountByName(ctx, dept.Name, dept.ID)
	if err != nil {
		s.logger.Error("error count departments", zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("department name already in use", nil)
	}

	if err := s.departments.Update(ctx, dept); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("department", map[string]any{"id": dept.ID})
		}
		s.logger.Error("error update department", zap.Int64("id", dept.ID), zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Delete removes a department that has no employees left in it.
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	count, err := s.departments.CountEmployees(ctx, id)
	if err != nil {
		s.logger.Error("error count department employees", zap.Int64("id", id), zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("department still has employees", nil)
	}

	if err := s.departments.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("department", map[string]any{"id": id})
		}
		s.logger.Error("error delete department", zap.Int64("id", id), zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Tree returns departments as a parent/child forest for display.
func (s *DepartmentService) Tree(ctx context.Context) ([]*tree.Node, error) {
	list, err := s.departments.List(ctx)
	if err != nil {
		s.logger.Error("error list departments", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	entries := make([]tree.Entry, 0, len(list))
	for _, dept := range list {
		entries = append(entries, tree.Entry{ID: dept.ID, Name: dept.Name, ParentID: dept.ParentID})
	}
	return tree.Build(entries), nil
}
