package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-service/internal/auth"
	"github.com/spec-kit/admin-service/internal/config"
	"github.com/spec-kit/admin-service/internal/events"
	"github.com/spec-kit/admin-service/internal/repository"
	apperrors "github.com/spec-kit/admin-service/pkg/util"
)

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Name      string
	RoleID    int64
	AuthToken string
	ExpiresAt time.Time
}

// AuthService orchestrates login and logout: credential verification,
// session minting and revocation, and the bearer credential codec.
type AuthService struct {
	employees  repository.EmployeeRepository
	roles      repository.RoleRepository
	sessions   auth.SessionStore
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements for the service.
// Sessions may be the employee repository itself or a caching wrapper around
// it; the service never performs raw session queries.
type AuthDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	RoleRepo     repository.RoleRepository
	Sessions     auth.SessionStore
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		employees:  deps.EmployeeRepo,
		roles:      deps.RoleRepo,
		sessions:   deps.Sessions,
		tokens:     auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL()),
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login runs the authentication state machine: resolve the account, resolve
// its role linkage, verify the password, mint and persist a fresh session
// token, then encode the bearer credential. Each step is terminal on failure.
func (s *AuthService) Login(ctx context.Context, loginName, password string) (*LoginResult, error) {
	emp, err := s.employees.GetByLoginName(ctx, loginName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.auditLoginFailure(ctx, 0, loginName, "account does not exist")
			return nil, apperrors.NewUnauthorized("account does not exist")
		}
		s.logger.Error("error find employee", zap.String("login_name", loginName), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	link, err := s.roles.GetByEmployeeID(ctx, emp.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.auditLoginFailure(ctx, emp.ID, loginName, "account has no role")
			return nil, apperrors.NewUnauthorized("account has no role")
		}
		s.logger.Error("error find role linkage", zap.Int64("employee_id", emp.ID), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	if err := auth.ComparePassword(emp.PasswordHash, password); err != nil {
		s.auditLoginFailure(ctx, emp.ID, loginName, "password mismatch")
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	// Disabled accounts fail with the same message as a bad password so a
	// correct-password holder cannot tell the account still exists intact;
	// the audit trail keeps the real reason.
	if emp.Disabled {
		s.auditLoginFailure(ctx, emp.ID, loginName, "account disabled")
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	sessionToken := auth.NewSessionToken(emp.ID)
	now := time.Now()
	if err := s.sessions.SetSession(ctx, emp.ID, sessionToken, now); err != nil {
		s.logger.Error("error persist session", zap.Int64("employee_id", emp.ID), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	bearer, expiresAt, err := s.tokens.Generate(emp.ID, sessionToken)
	if err != nil {
		s.logger.Error("error encode credential", zap.Int64("employee_id", emp.ID), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventEmployeeLoggedIn,
		SubjectID: emp.ID,
	})

	return &LoginResult{
		Name:      emp.RealName,
		RoleID:    link.RoleID,
		AuthToken: bearer,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout clears the persisted session token, revoking every outstanding
// credential for the subject. It is idempotent and never fails the caller:
// an anonymous identity is a no-op, and a persistence failure is logged, not
// surfaced.
func (s *AuthService) Logout(ctx context.Context, identity auth.Identity) {
	if identity.IsAnonymous() {
		return
	}
	if err := s.sessions.ClearSession(ctx, identity.SubjectID()); err != nil {
		s.logger.Error("error clear session", zap.Int64("employee_id", identity.SubjectID()), zap.Error(err))
		return
	}
	s.publish(ctx, events.Event{
		Type:      events.EventEmployeeLoggedOut,
		SubjectID: identity.SubjectID(),
	})
}

// TokenManager exposes the credential codec for gate wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) auditLoginFailure(ctx context.Context, subjectID int64, loginName, reason string) {
	s.publish(ctx, events.Event{
		Type:      events.EventLoginFailed,
		SubjectID: subjectID,
		Payload:   events.LoginFailedPayload{LoginName: loginName, Reason: reason},
	})
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	s.dispatcher.Publish(ctx, event)
}
