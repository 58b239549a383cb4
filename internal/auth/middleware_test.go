package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/admin-service/pkg/util"
)

type fakeSessionStore struct {
	tokens map[int64]string
	err    error
}

func (f *fakeSessionStore) GetSessionToken(_ context.Context, subjectID int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.tokens[subjectID], nil
}

func (f *fakeSessionStore) SetSession(_ context.Context, subjectID int64, token string, _ time.Time) error {
	f.tokens[subjectID] = token
	return nil
}

func (f *fakeSessionStore) ClearSession(_ context.Context, subjectID int64) error {
	f.tokens[subjectID] = ""
	return nil
}

func gateApp(t *testing.T, tm *TokenManager, store SessionStore) *fiber.App {
	t.Helper()
	gate := NewGate(tm, store, zap.NewNop())

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
		},
	})
	app.Get("/whoami", gate.Handle, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"subject": IdentityFromContext(c).String()})
	})
	app.Get("/protected", gate.Handle, RequireAuthenticated(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, bearer string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestGateMissingHeaderIsAnonymous(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	store := &fakeSessionStore{tokens: map[int64]string{}}
	app := gateApp(t, tm, store)

	resp := doRequest(t, app, "/whoami", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("anonymous request rejected with %d", resp.StatusCode)
	}

	resp = doRequest(t, app, "/protected", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("protected without credential = %d, want 401", resp.StatusCode)
	}
}

func TestGateBadCredentialIsAnonymous(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	store := &fakeSessionStore{tokens: map[int64]string{}}
	app := gateApp(t, tm, store)

	resp := doRequest(t, app, "/protected", "not-a-credential")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("protected with garbage credential = %d, want 401", resp.StatusCode)
	}
}

func TestGateAcceptsMatchingSession(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	store := &fakeSessionStore{tokens: map[int64]string{42: "session-tok"}}
	app := gateApp(t, tm, store)

	bearer, _, err := tm.Generate(42, "session-tok")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	resp := doRequest(t, app, "/protected", bearer)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("protected with valid credential = %d, want 200", resp.StatusCode)
	}
}

func TestGateRejectsSupersededSession(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	store := &fakeSessionStore{tokens: map[int64]string{42: "old-tok"}}
	app := gateApp(t, tm, store)

	bearer, _, err := tm.Generate(42, "old-tok")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// A later login replaces the persisted token; the old credential still
	// carries a valid signature but no longer matches.
	store.tokens[42] = "new-tok"

	resp := doRequest(t, app, "/protected", bearer)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("superseded credential = %d, want 401", resp.StatusCode)
	}
}

func TestGateRejectsClearedSession(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	store := &fakeSessionStore{tokens: map[int64]string{42: "session-tok"}}
	app := gateApp(t, tm, store)

	bearer, _, err := tm.Generate(42, "session-tok")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if err := store.ClearSession(context.Background(), 42); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}

	resp := doRequest(t, app, "/protected", bearer)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("revoked credential = %d, want 401", resp.StatusCode)
	}
}

func TestGateLookupFailureIsAnonymous(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	store := &fakeSessionStore{tokens: map[int64]string{}, err: errors.New("store down")}
	app := gateApp(t, tm, store)

	bearer, _, err := tm.Generate(42, "session-tok")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	resp := doRequest(t, app, "/protected", bearer)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("lookup failure = %d, want 401", resp.StatusCode)
	}
}

func TestBearerTokenParsing(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	store := &fakeSessionStore{tokens: map[int64]string{42: "session-tok"}}
	app := gateApp(t, tm, store)

	bearer, _, err := tm.Generate(42, "session-tok")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Scheme is case-insensitive.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer "+bearer)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("lowercase scheme = %d, want 200", resp.StatusCode)
	}

	// Anything but a two-part Bearer header reads as no credential.
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("basic scheme = %d, want 401", resp.StatusCode)
	}
}
