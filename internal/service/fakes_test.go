package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/admin-service/internal/domain"
	"github.com/spec-kit/admin-service/internal/repository"
)

// fakeEmployeeRepo is an in-memory EmployeeRepository for service tests.
type fakeEmployeeRepo struct {
	employees map[int64]*domain.Employee
	nextID    int64

	failGet     error
	failSession error
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[int64]*domain.Employee{}, nextID: 1}
}

func (f *fakeEmployeeRepo) add(emp domain.Employee) *domain.Employee {
	if emp.ID == 0 {
		emp.ID = f.nextID
	}
	if emp.ID >= f.nextID {
		f.nextID = emp.ID + 1
	}
	f.employees[emp.ID] = &emp
	return f.employees[emp.ID]
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp *domain.Employee) error {
	emp.ID = f.nextID
	f.nextID++
	clone := *emp
	f.employees[emp.ID] = &clone
	return nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, emp *domain.Employee) error {
	existing, ok := f.employees[emp.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	token, loginAt := existing.LoginToken, existing.LoginAt
	clone := *emp
	clone.LoginToken, clone.LoginAt = token, loginAt
	f.employees[emp.ID] = &clone
	return nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	emp, ok := f.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *emp
	return &clone, nil
}

func (f *fakeEmployeeRepo) GetByLoginName(_ context.Context, loginName string) (*domain.Employee, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	for _, emp := range f.employees {
		if emp.LoginName == loginName {
			clone := *emp
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) List(_ context.Context, filters repository.EmployeeFilters) ([]domain.Employee, error) {
	matched := f.match(filters)
	if filters.Offset >= len(matched) {
		return nil, nil
	}
	end := filters.Offset + filters.Limit
	if filters.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[filters.Offset:end], nil
}

func (f *fakeEmployeeRepo) Count(_ context.Context, filters repository.EmployeeFilters) (int64, error) {
	return int64(len(f.match(filters))), nil
}

func (f *fakeEmployeeRepo) match(filters repository.EmployeeFilters) []domain.Employee {
	ids := make([]int64, 0, len(f.employees))
	for id := range f.employees {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var matched []domain.Employee
	for _, id := range ids {
		emp := f.employees[id]
		if filters.Disabled != nil && emp.Disabled != *filters.Disabled {
			continue
		}
		if filters.LoginName != "" && !strings.Contains(emp.LoginName, filters.LoginName) {
			continue
		}
		if filters.Phone != "" && !strings.Contains(emp.Phone, filters.Phone) {
			continue
		}
		matched = append(matched, *emp)
	}
	return matched
}

func (f *fakeEmployeeRepo) CountByLoginNameOrPhone(_ context.Context, loginName, phone string, excludeID int64) (int64, error) {
	var count int64
	for _, emp := range f.employees {
		if emp.ID == excludeID {
			continue
		}
		if emp.LoginName == loginName || emp.Phone == phone {
			count++
		}
	}
	return count, nil
}

func (f *fakeEmployeeRepo) SetDisabled(_ context.Context, id int64, disabled bool) error {
	emp, ok := f.employees[id]
	if !ok {
		return pgx.ErrNoRows
	}
	emp.Disabled = disabled
	return nil
}

func (f *fakeEmployeeRepo) SetPasswordHash(_ context.Context, id int64, hash string) error {
	emp, ok := f.employees[id]
	if !ok {
		return pgx.ErrNoRows
	}
	emp.PasswordHash = hash
	return nil
}

func (f *fakeEmployeeRepo) ChangeDepartment(_ context.Context, ids []int64, departmentID int64) error {
	for _, id := range ids {
		if emp, ok := f.employees[id]; ok {
			emp.DepartmentID = departmentID
		}
	}
	return nil
}

func (f *fakeEmployeeRepo) SelectList(_ context.Context) ([]repository.EmployeeOption, error) {
	options := make([]repository.EmployeeOption, 0, len(f.employees))
	for _, emp := range f.employees {
		options = append(options, repository.EmployeeOption{
			EmployeeID:   emp.ID,
			RealName:     emp.RealName,
			DepartmentID: emp.DepartmentID,
		})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].EmployeeID < options[j].EmployeeID })
	return options, nil
}

func (f *fakeEmployeeRepo) GetSessionToken(_ context.Context, subjectID int64) (string, error) {
	if f.failSession != nil {
		return "", f.failSession
	}
	emp, ok := f.employees[subjectID]
	if !ok {
		return "", nil
	}
	return emp.LoginToken, nil
}

func (f *fakeEmployeeRepo) SetSession(_ context.Context, subjectID int64, token string, loginAt time.Time) error {
	if f.failSession != nil {
		return f.failSession
	}
	emp, ok := f.employees[subjectID]
	if !ok {
		return pgx.ErrNoRows
	}
	emp.LoginToken = token
	emp.LoginAt = loginAt
	return nil
}

func (f *fakeEmployeeRepo) ClearSession(_ context.Context, subjectID int64) error {
	if f.failSession != nil {
		return f.failSession
	}
	if emp, ok := f.employees[subjectID]; ok {
		emp.LoginToken = ""
	}
	return nil
}

// fakeRoleRepo is an in-memory RoleRepository for service tests.
type fakeRoleRepo struct {
	roles    map[int64]*domain.Role
	links    []domain.RoleEmployee
	grants   []domain.RoleMenu
	nextID   int64
	failLink error
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[int64]*domain.Role{}, nextID: 1}
}

func (f *fakeRoleRepo) addRole(role domain.Role) *domain.Role {
	if role.ID == 0 {
		role.ID = f.nextID
	}
	if role.ID >= f.nextID {
		f.nextID = role.ID + 1
	}
	f.roles[role.ID] = &role
	return f.roles[role.ID]
}

func (f *fakeRoleRepo) link(roleID, employeeID int64) {
	f.links = append(f.links, domain.RoleEmployee{RoleID: roleID, EmployeeID: employeeID})
}

func (f *fakeRoleRepo) Create(_ context.Context, role *domain.Role) error {
	role.ID = f.nextID
	f.nextID++
	clone := *role
	f.roles[role.ID] = &clone
	return nil
}

func (f *fakeRoleRepo) Update(_ context.Context, role *domain.Role) error {
	if _, ok := f.roles[role.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *role
	f.roles[role.ID] = &clone
	return nil
}

func (f *fakeRoleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.roles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.roles, id)
	return nil
}

func (f *fakeRoleRepo) GetByID(_ context.Context, id int64) (*domain.Role, error) {
	role, ok := f.roles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *role
	return &clone, nil
}

func (f *fakeRoleRepo) List(_ context.Context, _ repository.RoleFilters) ([]domain.Role, error) {
	return f.all(), nil
}

func (f *fakeRoleRepo) Count(_ context.Context, _ repository.RoleFilters) (int64, error) {
	return int64(len(f.roles)), nil
}

func (f *fakeRoleRepo) CountByNameOrCode(_ context.Context, name, code string, excludeID int64) (int64, error) {
	var count int64
	for _, role := range f.roles {
		if role.ID == excludeID {
			continue
		}
		if role.Name == name || role.Code == code {
			count++
		}
	}
	return count, nil
}

func (f *fakeRoleRepo) SelectList(_ context.Context) ([]domain.Role, error) {
	return f.all(), nil
}

func (f *fakeRoleRepo) all() []domain.Role {
	ids := make([]int64, 0, len(f.roles))
	for id := range f.roles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	list := make([]domain.Role, 0, len(ids))
	for _, id := range ids {
		list = append(list, *f.roles[id])
	}
	return list
}

func (f *fakeRoleRepo) GetByEmployeeID(_ context.Context, employeeID int64) (*domain.RoleEmployee, error) {
	if f.failLink != nil {
		return nil, f.failLink
	}
	for _, link := range f.links {
		if link.EmployeeID == employeeID {
			clone := link
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeRoleRepo) CountEmployees(_ context.Context, roleID int64) (int64, error) {
	var count int64
	for _, link := range f.links {
		if link.RoleID == roleID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRoleRepo) ListEmployees(_ context.Context, _ int64, _ repository.RoleEmployeeFilters) ([]domain.Employee, error) {
	return nil, nil
}

func (f *fakeRoleRepo) CountEmployeesFiltered(ctx context.Context, roleID int64, _ repository.RoleEmployeeFilters) (int64, error) {
	return f.CountEmployees(ctx, roleID)
}

func (f *fakeRoleRepo) MenuIDs(_ context.Context, roleID int64) ([]domain.RoleMenu, error) {
	var grants []domain.RoleMenu
	for _, grant := range f.grants {
		if grant.RoleID == roleID {
			grants = append(grants, grant)
		}
	}
	return grants, nil
}
