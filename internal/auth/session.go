package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionStore is what the core needs from the persistence layer: read and
// write access to the subject's current session token and last login time.
// GetSessionToken returns an empty token, not an error, for a subject that
// exists but is logged out.
type SessionStore interface {
	GetSessionToken(ctx context.Context, subjectID int64) (string, error)
	SetSession(ctx context.Context, subjectID int64, token string, loginAt time.Time) error
	ClearSession(ctx context.Context, subjectID int64) error
}

// NewSessionToken mints a fresh session token for a login. Uniqueness comes
// from the uuid nonce; the subject id and timestamp are folded in the same
// way the legacy system derived its tokens.
func NewSessionToken(subjectID int64) string {
	seed := fmt.Sprintf("auth.%d.%d.%s", subjectID, time.Now().UnixNano(), uuid.NewString())
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}
