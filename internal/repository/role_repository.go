package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/admin-service/internal/domain"
)

// RoleFilters narrows role listings.
type RoleFilters struct {
	Name   string
	Offset int
	Limit  int
}

// RoleEmployeeFilters narrows the employees-in-role listing.
type RoleEmployeeFilters struct {
	RealName  string
	LoginName string
	Phone     string
	Offset    int
	Limit     int
}

// RoleRepository manages roles, the role/employee linkage, and the
// role/menu grants.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	Update(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Role, error)
	List(ctx context.Context, filters RoleFilters) ([]domain.Role, error)
	Count(ctx context.Context, filters RoleFilters) (int64, error)
	CountByNameOrCode(ctx context.Context, name, code string, excludeID int64) (int64, error)
	SelectList(ctx context.Context) ([]domain.Role, error)

	GetByEmployeeID(ctx context.Context, employeeID int64) (*domain.RoleEmployee, error)
	CountEmployees(ctx context.Context, roleID int64) (int64, error)
	ListEmployees(ctx context.Context, roleID int64, filters RoleEmployeeFilters) ([]domain.Employee, error)
	CountEmployeesFiltered(ctx context.Context, roleID int64, filters RoleEmployeeFilters) (int64, error)
	MenuIDs(ctx context.Context, roleID int64) ([]domain.RoleMenu, error)
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository builds the repository.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) Create(ctx context.Context, role *domain.Role) error {
	const query = `
        INSERT INTO roles (name, code, remark)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		role.Name,
		role.Code,
		role.Remark,
	).Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
}

func (r *roleRepository) Update(ctx context.Context, role *domain.Role) error {
	const query = `
        UPDATE roles SET name=$1, code=$2, remark=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		role.Name,
		role.Code,
		role.Remark,
		role.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roleRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM roles WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roleRepository) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	const query = `
        SELECT id, name, code, remark, created_at, updated_at
        FROM roles WHERE id=$1`
	var role domain.Role
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&role.ID,
		&role.Name,
		&role.Code,
		&role.Remark,
		&role.CreatedAt,
		&role.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) List(ctx context.Context, filters RoleFilters) ([]domain.Role, error) {
	const query = `
        SELECT id, name, code, remark, created_at, updated_at
        FROM roles WHERE name ILIKE $1
        ORDER BY id DESC OFFSET $2 LIMIT $3`

	rows, err := r.pool.Query(ctx, query, "%"+filters.Name+"%", filters.Offset, filters.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Code, &role.Remark, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, role)
	}
	return result, rows.Err()
}

func (r *roleRepository) Count(ctx context.Context, filters RoleFilters) (int64, error) {
	const query = `SELECT COUNT(*) FROM roles WHERE name ILIKE $1`
	var count int64
	err := r.pool.QueryRow(ctx, query, "%"+filters.Name+"%").Scan(&count)
	return count, err
}

func (r *roleRepository) CountByNameOrCode(ctx context.Context, name, code string, excludeID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM roles WHERE (name=$1 OR code=$2) AND id <> $3`
	var count int64
	err := r.pool.QueryRow(ctx, query, name, code, excludeID).Scan(&count)
	return count, err
}

func (r *roleRepository) SelectList(ctx context.Context) ([]domain.Role, error) {
	const query = `SELECT id, name, code, remark, created_at, updated_at FROM roles ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Code, &role.Remark, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, role)
	}
	return result, rows.Err()
}

// GetByEmployeeID resolves the role linkage for a login. pgx.ErrNoRows
// surfaces unchanged so the authenticator can distinguish a missing linkage
// from a system failure.
func (r *roleRepository) GetByEmployeeID(ctx context.Context, employeeID int64) (*domain.RoleEmployee, error) {
	const query = `SELECT role_id, employee_id FROM role_employees WHERE employee_id=$1`
	var link domain.RoleEmployee
	if err := r.pool.QueryRow(ctx, query, employeeID).Scan(&link.RoleID, &link.EmployeeID); err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *roleRepository) CountEmployees(ctx context.Context, roleID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM role_employees WHERE role_id=$1`
	var count int64
	err := r.pool.QueryRow(ctx, query, roleID).Scan(&count)
	return count, err
}

const roleEmployeeFilterClause = `
        FROM employees e
        JOIN role_employees re ON re.employee_id = e.id
        WHERE re.role_id = $1
          AND e.real_name ILIKE $2
          AND e.login_name ILIKE $3
          AND e.phone LIKE $4`

func (r *roleRepository) ListEmployees(ctx context.Context, roleID int64, filters RoleEmployeeFilters) ([]domain.Employee, error) {
	query := `
        SELECT e.id, e.real_name, e.phone, e.email, e.gender, e.login_name,
               e.department_id, e.position_id, e.disabled, e.created_at, e.updated_at` +
		roleEmployeeFilterClause + `
        ORDER BY e.id DESC OFFSET $5 LIMIT $6`

	rows, err := r.pool.Query(ctx, query, roleID,
		"%"+filters.RealName+"%", "%"+filters.LoginName+"%", "%"+filters.Phone+"%",
		filters.Offset, filters.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		var emp domain.Employee
		if err := rows.Scan(
			&emp.ID,
			&emp.RealName,
			&emp.Phone,
			&emp.Email,
			&emp.Gender,
			&emp.LoginName,
			&emp.DepartmentID,
			&emp.PositionID,
			&emp.Disabled,
			&emp.CreatedAt,
			&emp.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, emp)
	}
	return result, rows.Err()
}

func (r *roleRepository) CountEmployeesFiltered(ctx context.Context, roleID int64, filters RoleEmployeeFilters) (int64, error) {
	query := `SELECT COUNT(*)` + roleEmployeeFilterClause

	var count int64
	err := r.pool.QueryRow(ctx, query, roleID,
		"%"+filters.RealName+"%", "%"+filters.LoginName+"%", "%"+filters.Phone+"%").Scan(&count)
	return count, err
}

func (r *roleRepository) MenuIDs(ctx context.Context, roleID int64) ([]domain.RoleMenu, error) {
	const query = `SELECT role_id, menu_id FROM role_menus WHERE role_id=$1`
	rows, err := r.pool.Query(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RoleMenu
	for rows.Next() {
		var rm domain.RoleMenu
		if err := rows.Scan(&rm.RoleID, &rm.MenuID); err != nil {
			return nil, err
		}
		result = append(result, rm)
	}
	return result, rows.Err()
}
