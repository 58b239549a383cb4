package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-service/internal/domain"
	"github.com/spec-kit/admin-service/internal/repository"
	apperrors "github.com/spec-kit/admin-service/pkg/util"
)

// PositionService drives the position CRUD surface.
type PositionService struct {
	positions repository.PositionRepository
	logger    *zap.Logger
}

// NewPositionService builds the service.
func NewPositionService(positions repository.PositionRepository, logger *zap.Logger) *PositionService {
	return &PositionService{positions: positions, logger: logger}
}

// Create inserts a position; names are unique.
func (s *PositionService) Create(ctx context.Context, pos *domain.Position) error {
	count, err := s.positions.CountByName(ctx, pos.Name, 0)
	if err != nil {
		s.logger.Error("error count positions", zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("position name already in use", nil)
	}

	if err := s.positions.Create(ctx, pos); err != nil {
		s.logger.Error("error insert position", zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	return nil
}

// PositionListResult pairs a page of positions with the total row count.
type PositionListResult struct {
	Total int64
	List  []domain.Position
}

// List returns a filtered, paginated position listing; total is computed on
// the first page only.
func (s *PositionService) List(ctx context.Context, filters repository.PositionFilters) (*PositionListResult, error) {
	result := &PositionListResult{}

	if filters.Offset == 0 {
		total, err := s.positions.Count(ctx, filters)
		if err != nil {
			s.logger.Error("error count positions", zap.Error(err))
			return nil, apperrors.NewInternalError(err)
		}
		result.Total = total
	}

	list, err := s.positions.List(ctx, filters)
	if err != nil {
		s.logger.Error("error list positions", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	result.List = list
	return result, nil
}

// Get returns one position by id.
func (s *PositionService) Get(ctx context.Context, id int64) (*domain.Position, error) {
	pos, err := s.positions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("position", map[string]any{"id": id})
		}
		s.logger.Error("error find position", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	return pos, nil
}

// Update rewrites a position after re-checking name uniqueness.
func (s *PositionService) Update(ctx context.Context, pos *domain.Position) error {
	count, err := s.positions.CountByName(ctx, pos.Name, pos.ID)
	if err != nil {
		s.logger.Error("error count positions", zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("position name already in use", nil)
	}

	if err := s.positions.Update(ctx, pos); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("position", map[string]any{"id": pos.ID})
		}
		s.logger.Error("error update position", zap.Int64("id", pos.ID), zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Delete removes a position.
func (s *PositionService) Delete(ctx context.Context, id int64) error {
	if err := s.positions.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("position", map[string]any{"id": id})
		}
		s.logger.Error("error delete position", zap.Int64("id", id), zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	return nil
}

// SelectList returns the position dropdown rows.
func (s *PositionService) SelectList(ctx context.Context) ([]domain.Position, error) {
	list, err := s.positions.SelectList(ctx)
	if err != nil {
		s.logger.Error("error list position options", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	return list, nil
}
