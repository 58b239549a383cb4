package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/admin-service/internal/domain"
)

// EmployeeFilters narrows employee listings.
type EmployeeFilters struct {
	Disabled  *bool
	LoginName string
	Phone     string
	Offset    int
	Limit     int
}

// EmployeeOption is a row for the employee select list, joined with the
// department name.
type EmployeeOption struct {
	EmployeeID     int64
	RealName       string
	DepartmentID   int64
	DepartmentName string
}

// EmployeeRepository defines persistence access for employees. It also
// implements the session store contract the auth core depends on: the
// session token and login time live on the employee row.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByLoginName(ctx context.Context, loginName string) (*domain.Employee, error)
	List(ctx context.Context, filters EmployeeFilters) ([]domain.Employee, error)
	Count(ctx context.Context, filters EmployeeFilters) (int64, error)
	CountByLoginNameOrPhone(ctx context.Context, loginName, phone string, excludeID int64) (int64, error)
	SetDisabled(ctx context.Context, id int64, disabled bool) error
	SetPasswordHash(ctx context.Context, id int64, hash string) error
	ChangeDepartment(ctx context.Context, ids []int64, departmentID int64) error
	SelectList(ctx context.Context) ([]EmployeeOption, error)

	GetSessionToken(ctx context.Context, subjectID int64) (string, error)
	SetSession(ctx context.Context, subjectID int64, token string, loginAt time.Time) error
	ClearSession(ctx context.Context, subjectID int64) error
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `
        id, real_name, phone, email, gender, login_name, password_hash,
        login_token, login_at, department_id, position_id, disabled,
        created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees (real_name, phone, email, gender, login_name,
            password_hash, department_id, position_id, disabled)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		emp.RealName,
		emp.Phone,
		emp.Email,
		emp.Gender,
		emp.LoginName,
		emp.PasswordHash,
		emp.DepartmentID,
		emp.PositionID,
		emp.Disabled,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	const query = `
        UPDATE employees SET real_name=$1, phone=$2, email=$3, gender=$4,
            login_name=$5, department_id=$6, position_id=$7, disabled=$8,
            updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		emp.RealName,
		emp.Phone,
		emp.Email,
		emp.Gender,
		emp.LoginName,
		emp.DepartmentID,
		emp.PositionID,
		emp.Disabled,
		emp.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1`
	return r.scanEmployee(r.pool.QueryRow(ctx, query, id))
}

func (r *employeeRepository) GetByLoginName(ctx context.Context, loginName string) (*domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE login_name=$1`
	return r.scanEmployee(r.pool.QueryRow(ctx, query, loginName))
}

const employeeFilterClause = `
        WHERE ($1::boolean IS NULL OR disabled = $1)
          AND login_name ILIKE $2
          AND phone LIKE $3`

func (r *employeeRepository) List(ctx context.Context, filters EmployeeFilters) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees` + employeeFilterClause +
		` ORDER BY id DESC OFFSET $4 LIMIT $5`

	rows, err := r.pool.Query(ctx, query,
		filters.Disabled, "%"+filters.LoginName+"%", "%"+filters.Phone+"%",
		filters.Offset, filters.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		emp, err := r.scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *emp)
	}
	return result, rows.Err()
}

func (r *employeeRepository) Count(ctx context.Context, filters EmployeeFilters) (int64, error) {
	query := `SELECT COUNT(*) FROM employees` + employeeFilterClause

	var total int64
	err := r.pool.QueryRow(ctx, query,
		filters.Disabled, "%"+filters.LoginName+"%", "%"+filters.Phone+"%").Scan(&total)
	return total, err
}

func (r *employeeRepository) CountByLoginNameOrPhone(ctx context.Context, loginName, phone string, excludeID int64) (int64, error) {
	const query = `
        SELECT COUNT(*) FROM employees
        WHERE (login_name=$1 OR phone=$2) AND id <> $3`

	var count int64
	err := r.pool.QueryRow(ctx, query, loginName, phone, excludeID).Scan(&count)
	return count, err
}

func (r *employeeRepository) SetDisabled(ctx context.Context, id int64, disabled bool) error {
	const query = `UPDATE employees SET disabled=$1, updated_at=NOW() WHERE id=$2`
	_, err := r.pool.Exec(ctx, query, disabled, id)
	return err
}

func (r *employeeRepository) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	const query = `UPDATE employees SET password_hash=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, hash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) ChangeDepartment(ctx context.Context, ids []int64, departmentID int64) error {
	const query = `UPDATE employees SET department_id=$1, updated_at=NOW() WHERE id = ANY($2)`
	_, err := r.pool.Exec(ctx, query, departmentID, ids)
	return err
}

func (r *employeeRepository) SelectList(ctx context.Context) ([]EmployeeOption, error) {
	const query = `
        SELECT e.id, e.real_name, e.department_id, d.name
        FROM employees e
        JOIN departments d ON d.id = e.department_id
        WHERE e.disabled = FALSE
        ORDER BY e.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []EmployeeOption
	for rows.Next() {
		var opt EmployeeOption
		if err := rows.Scan(&opt.EmployeeID, &opt.RealName, &opt.DepartmentID, &opt.DepartmentName); err != nil {
			return nil, err
		}
		result = append(result, opt)
	}
	return result, rows.Err()
}

func (r *employeeRepository) GetSessionToken(ctx context.Context, subjectID int64) (string, error) {
	const query = `SELECT login_token FROM employees WHERE id=$1`

	var token string
	if err := r.pool.QueryRow(ctx, query, subjectID).Scan(&token); err != nil {
		// An unknown subject reads as logged out; the gate treats both the
		// same way.
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

func (r *employeeRepository) SetSession(ctx context.Context, subjectID int64, token string, loginAt time.Time) error {
	const query = `
        UPDATE employees SET login_token=$1, login_at=$2, updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, token, loginAt, subjectID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) ClearSession(ctx context.Context, subjectID int64) error {
	const query = `UPDATE employees SET login_token='', updated_at=NOW() WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, subjectID)
	return err
}

type employeeRow interface {
	Scan(dest ...any) error
}

func (r *employeeRepository) scanEmployee(row employeeRow) (*domain.Employee, error) {
	var emp domain.Employee
	if err := row.Scan(
		&emp.ID,
		&emp.RealName,
		&emp.Phone,
		&emp.Email,
		&emp.Gender,
		&emp.LoginName,
		&emp.PasswordHash,
		&emp.LoginToken,
		&emp.LoginAt,
		&emp.DepartmentID,
		&emp.PositionID,
		&emp.Disabled,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &emp, nil
}
