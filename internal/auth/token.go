package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrCredentialInvalid covers every way a bearer credential can fail to
// verify: malformed, bad signature, or expired. The distinctions matter in
// logs, never to the caller.
var ErrCredentialInvalid = errors.New("credential invalid")

// TokenManager is the credential codec: a stateless transform between a
// (subject id, session token) pair and a signed bearer string. The secret is
// injected at construction and immutable for the process lifetime.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a codec with the given signing secret and
// credential lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Claims is the signed claim set. The session token rides inside the
// credential so the gate can compare it against the persisted token; the
// signature only proves the pair was minted by us, the equality check is
// what makes a later login or a logout revoke it.
type Claims struct {
	ID           int64  `json:"id"`
	SessionToken string `json:"token"`
	jwt.RegisteredClaims
}

// Generate signs a credential for the subject. Expiry is fixed relative to
// issuance; the credential is never refreshed or mutated afterwards.
func (tm *TokenManager) Generate(subjectID int64, sessionToken string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		ID:           subjectID,
		SessionToken: sessionToken,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies signature and expiry and returns the embedded pair. Expired
// and malformed credentials are indistinguishable to callers: both come back
// as ErrCredentialInvalid.
func (tm *TokenManager) Parse(bearer string) (int64, string, error) {
	parsed, err := jwt.ParseWithClaims(bearer, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return 0, "", ErrCredentialInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ID <= 0 {
		return 0, "", ErrCredentialInvalid
	}
	return claims.ID, claims.SessionToken, nil
}
