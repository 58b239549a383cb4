package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/admin-service/pkg/util"
)

const identityKey = "auth_identity"

// Gate is the per-request interceptor. It resolves an Identity for every
// request and attaches it to the request context; it never rejects on its
// own. Routes that need a principal add RequireAuthenticated behind it.
type Gate struct {
	tokens   *TokenManager
	sessions SessionStore
	logger   *zap.Logger
}

// NewGate constructs the gate middleware.
func NewGate(tokens *TokenManager, sessions SessionStore, logger *zap.Logger) *Gate {
	return &Gate{tokens: tokens, sessions: sessions, logger: logger}
}

// Handle resolves the caller's identity. A missing header, an invalid or
// expired credential, and a session-token mismatch all degrade to the
// anonymous identity; the signature check alone is never enough because a
// later login or a logout revokes the persisted token out from under a
// still-valid credential.
func (g *Gate) Handle(c *fiber.Ctx) error {
	identity := Anonymous()

	if bearer := bearerToken(c); bearer != "" {
		subjectID, sessionToken, err := g.tokens.Parse(bearer)
		switch {
		case err != nil:
			g.logger.Debug("credential rejected", zap.Error(err))
		default:
			stored, err := g.sessions.GetSessionToken(c.UserContext(), subjectID)
			switch {
			case err != nil:
				g.logger.Error("session lookup failed",
					zap.Int64("subject_id", subjectID), zap.Error(err))
			case stored == "" || stored != sessionToken:
				g.logger.Debug("credential superseded or revoked",
					zap.Int64("subject_id", subjectID))
			default:
				identity = Authenticated(subjectID, sessionToken)
			}
		}
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// RequireAuthenticated rejects anonymous callers with 401. It assumes the
// gate already ran.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if IdentityFromContext(c).IsAnonymous() {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// IdentityFromContext retrieves the identity the gate attached. Requests
// that never passed the gate read as anonymous.
func IdentityFromContext(c *fiber.Ctx) Identity {
	if identity, ok := c.Locals(identityKey).(Identity); ok {
		return identity
	}
	return Anonymous()
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
