package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-service/internal/auth"
	"github.com/spec-kit/admin-service/internal/config"
	"github.com/spec-kit/admin-service/internal/domain"
	apperrors "github.com/spec-kit/admin-service/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			Secret:        "test-secret",
			TokenTTLHours: 1,
			BcryptCost:    4,
		},
	}
}

func authFixture(t *testing.T) (*AuthService, *fakeEmployeeRepo, *fakeRoleRepo) {
	t.Helper()
	employees := newFakeEmployeeRepo()
	roles := newFakeRoleRepo()

	svc := NewAuthService(testConfig(), AuthDependencies{
		EmployeeRepo: employees,
		RoleRepo:     roles,
		Sessions:     employees,
		Logger:       zap.NewNop(),
	})
	return svc, employees, roles
}

func seedAccount(t *testing.T, employees *fakeEmployeeRepo, roles *fakeRoleRepo, loginName, password string, disabled bool) *domain.Employee {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	emp := employees.add(domain.Employee{
		RealName:     "Test Person",
		LoginName:    loginName,
		PasswordHash: hash,
		Disabled:     disabled,
	})
	roles.addRole(domain.Role{ID: 3, Name: "admin", Code: "ADMIN"})
	roles.link(3, emp.ID)
	return emp
}

func assertUnauthorized(t *testing.T, err error, message string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	domainErr := apperrors.ToDomainError(err)
	if domainErr.Code != "UNAUTHORIZED" {
		t.Errorf("code = %s, want UNAUTHORIZED", domainErr.Code)
	}
	if domainErr.Message != message {
		t.Errorf("message = %q, want %q", domainErr.Message, message)
	}
}

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	svc, employees, roles := authFixture(t)
	emp := seedAccount(t, employees, roles, "jdoe", "hunter2", false)

	result, err := svc.Login(ctx, "jdoe", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Name != "Test Person" {
		t.Errorf("name = %q", result.Name)
	}
	if result.RoleID != 3 {
		t.Errorf("role id = %d, want 3", result.RoleID)
	}
	if result.AuthToken == "" {
		t.Fatal("empty credential")
	}

	// The credential decodes back to this subject and the embedded session
	// token matches what was persisted, so the gate will accept it.
	subjectID, sessionToken, err := svc.TokenManager().Parse(result.AuthToken)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if subjectID != emp.ID {
		t.Errorf("subject id = %d, want %d", subjectID, emp.ID)
	}
	stored, err := employees.GetSessionToken(ctx, emp.ID)
	if err != nil {
		t.Fatalf("GetSessionToken: %v", err)
	}
	if stored == "" || stored != sessionToken {
		t.Errorf("persisted token %q does not match embedded token %q", stored, sessionToken)
	}
}

func TestLoginUnknownAccount(t *testing.T) {
	svc, _, _ := authFixture(t)

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	assertUnauthorized(t, err, "account does not exist")
}

func TestLoginAccountWithoutRole(t *testing.T) {
	ctx := context.Background()
	svc, employees, _ := authFixture(t)

	hash, err := auth.HashPassword("hunter2", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	employees.add(domain.Employee{LoginName: "norole", PasswordHash: hash})

	_, loginErr := svc.Login(ctx, "norole", "hunter2")
	assertUnauthorized(t, loginErr, "account has no role")
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, employees, roles := authFixture(t)
	emp := seedAccount(t, employees, roles, "jdoe", "hunter2", false)

	_, err := svc.Login(ctx, "jdoe", "wrong")
	assertUnauthorized(t, err, "invalid credentials")

	// A failed attempt never touches the persisted session.
	stored, err := employees.GetSessionToken(ctx, emp.ID)
	if err != nil {
		t.Fatalf("GetSessionToken: %v", err)
	}
	if stored != "" {
		t.Errorf("session token mutated by failed login: %q", stored)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, employees, roles := authFixture(t)
	seedAccount(t, employees, roles, "jdoe", "hunter2", true)

	// Indistinguishable from a wrong password on the wire.
	_, err := svc.Login(context.Background(), "jdoe", "hunter2")
	assertUnauthorized(t, err, "invalid credentials")
}

func TestLoginSupersedesPreviousSession(t *testing.T) {
	ctx := context.Background()
	svc, employees, roles := authFixture(t)
	emp := seedAccount(t, employees, roles, "jdoe", "hunter2", false)

	first, err := svc.Login(ctx, "jdoe", "hunter2")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := svc.Login(ctx, "jdoe", "hunter2")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	_, firstToken, err := svc.TokenManager().Parse(first.AuthToken)
	if err != nil {
		t.Fatalf("parse first credential: %v", err)
	}
	_, secondToken, err := svc.TokenManager().Parse(second.AuthToken)
	if err != nil {
		t.Fatalf("parse second credential: %v", err)
	}

	stored, err := employees.GetSessionToken(ctx, emp.ID)
	if err != nil {
		t.Fatalf("GetSessionToken: %v", err)
	}
	if stored != secondToken {
		t.Errorf("persisted token is not the latest login's")
	}
	// The first credential still decodes but would fail the gate's equality
	// check against the persisted token.
	if firstToken == stored {
		t.Error("older credential still matches the persisted token")
	}
}

func TestLoginSessionPersistFailure(t *testing.T) {
	ctx := context.Background()
	svc, employees, roles := authFixture(t)
	seedAccount(t, employees, roles, "jdoe", "hunter2", false)
	employees.failSession = errors.New("db down")

	_, err := svc.Login(ctx, "jdoe", "hunter2")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := apperrors.ToDomainError(err).Code; code != "INTERNAL_ERROR" {
		t.Errorf("code = %s, want INTERNAL_ERROR", code)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	ctx := context.Background()
	svc, employees, roles := authFixture(t)
	emp := seedAccount(t, employees, roles, "jdoe", "hunter2", false)

	result, err := svc.Login(ctx, "jdoe", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	_, sessionToken, err := svc.TokenManager().Parse(result.AuthToken)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	svc.Logout(ctx, auth.Authenticated(emp.ID, sessionToken))

	stored, err := employees.GetSessionToken(ctx, emp.ID)
	if err != nil {
		t.Fatalf("GetSessionToken: %v", err)
	}
	if stored != "" {
		t.Errorf("session token not cleared: %q", stored)
	}

	// Logging out again, or logging out anonymously, is a quiet no-op.
	svc.Logout(ctx, auth.Authenticated(emp.ID, sessionToken))
	svc.Logout(ctx, auth.Anonymous())
}

func TestLogoutSwallowsPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	svc, employees, roles := authFixture(t)
	emp := seedAccount(t, employees, roles, "jdoe", "hunter2", false)

	if _, err := svc.Login(ctx, "jdoe", "hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	employees.failSession = errors.New("db down")

	// Must not panic or surface the failure.
	svc.Logout(ctx, auth.Authenticated(emp.ID, "whatever"))
}
