package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/admin-service/internal/domain"
)

// PositionFilters narrows position listings.
type PositionFilters struct {
	Name   string
	Offset int
	Limit  int
}

// PositionRepository manages position persistence.
type PositionRepository interface {
	Create(ctx context.Context, pos *domain.Position) error
	Update(ctx context.Context, pos *domain.Position) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Position, error)
	List(ctx context.Context, filters PositionFilters) ([]domain.Position, error)
	Count(ctx context.Context, filters PositionFilters) (int64, error)
	CountByName(ctx context.Context, name string, excludeID int64) (int64, error)
	SelectList(ctx context.Context) ([]domain.Position, error)
}

type positionRepository struct {
	pool *pgxpool.Pool
}

// NewPositionRepository builds the repository.
func NewPositionRepository(pool *pgxpool.Pool) PositionRepository {
	return &positionRepository{pool: pool}
}

func (r *positionRepository) Create(ctx context.Context, pos *domain.Position) error {
	const query = `
        INSERT INTO positions (name, level, sort, remark)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		pos.Name,
		pos.Level,
		pos.Sort,
		pos.Remark,
	).Scan(&pos.ID, &pos.CreatedAt, &pos.UpdatedAt)
}

func (r *positionRepository) Update(ctx context.Context, pos *domain.Position) error {
	const query = `
        UPDATE positions SET name=$1, level=$2, sort=$3, remark=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		pos.Name,
		pos.Level,
		pos.Sort,
		pos.Remark,
		pos.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *positionRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM positions WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *positionRepository) GetByID(ctx context.Context, id int64) (*domain.Position, error) {
	const query = `
        SELECT id, name, level, sort, remark, deleted, created_at, updated_at
        FROM positions WHERE id=$1`
	var pos domain.Position
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&pos.ID,
		&pos.Name,
		&pos.Level,
		&pos.Sort,
		&pos.Remark,
		&pos.Deleted,
		&pos.CreatedAt,
		&pos.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &pos, nil
}

func (r *positionRepository) List(ctx context.Context, filters PositionFilters) ([]domain.Position, error) {
	const query = `
        SELECT id, name, level, sort, remark, deleted, created_at, updated_at
        FROM positions
        WHERE name ILIKE $1 AND deleted = FALSE
        ORDER BY id DESC OFFSET $2 LIMIT $3`

	rows, err := r.pool.Query(ctx, query, "%"+filters.Name+"%", filters.Offset, filters.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Position
	for rows.Next() {
		var pos domain.Position
		if err := rows.Scan(&pos.ID, &pos.Name, &pos.Level, &pos.Sort, &pos.Remark, &pos.Deleted, &pos.CreatedAt, &pos.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, pos)
	}
	return result, rows.Err()
}

func (r *positionRepository) Count(ctx context.Context, filters PositionFilters) (int64, error) {
	const query = `SELECT COUNT(*) FROM positions WHERE name ILIKE $1 AND deleted = FALSE`
	var count int64
	err := r.pool.QueryRow(ctx, query, "%"+filters.Name+"%").Scan(&count)
	return count, err
}

func (r *positionRepository) CountByName(ctx context.Context, name string, excludeID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM positions WHERE name=$1 AND id <> $2`
	var count int64
	err := r.pool.QueryRow(ctx, query, name, excludeID).Scan(&count)
	return count, err
}

func (r *positionRepository) SelectList(ctx context.Context) ([]domain.Position, error) {
	const query = `
        SELECT id, name, level, sort, remark, deleted, created_at, updated_at
        FROM positions WHERE deleted = FALSE ORDER BY sort, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Position
	for rows.Next() {
		var pos domain.Position
		if err := rows.Scan(&pos.ID, &pos.Name, &pos.Level, &pos.Sort, &pos.Remark, &pos.Deleted, &pos.CreatedAt, &pos.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, pos)
	}
	return result, rows.Err()
}
