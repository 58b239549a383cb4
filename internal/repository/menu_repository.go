package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/admin-service/internal/domain"
)

// MenuRepository reads the menu permission entries.
type MenuRepository interface {
	List(ctx context.Context) ([]domain.Menu, error)
}

type menuRepository struct {
	pool *pgxpool.Pool
}

// NewMenuRepository builds the repository.
func NewMenuRepository(pool *pgxpool.Pool) MenuRepository {
	return &menuRepository{pool: pool}
}

func (r *menuRepository) List(ctx context.Context) ([]domain.Menu, error) {
	const query = `SELECT id, name, parent_id FROM menus ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Menu
	for rows.Next() {
		var menu domain.Menu
		if err := rows.Scan(&menu.ID, &menu.Name, &menu.ParentID); err != nil {
			return nil, err
		}
		result = append(result, menu)
	}
	return result, rows.Err()
}
