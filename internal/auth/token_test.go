package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	bearer, expiresAt, err := tm.Generate(42, "session-token-abc")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if bearer == "" {
		t.Fatal("Generate returned empty credential")
	}
	if remaining := time.Until(expiresAt); remaining < 59*time.Minute || remaining > time.Hour {
		t.Errorf("expiry not anchored to ttl, remaining %v", remaining)
	}

	subjectID, sessionToken, err := tm.Parse(bearer)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if subjectID != 42 {
		t.Errorf("subject id = %d, want 42", subjectID)
	}
	if sessionToken != "session-token-abc" {
		t.Errorf("session token = %q, want %q", sessionToken, "session-token-abc")
	}
}

func TestTokenManagerRejectsExpired(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}

	bearer, _, err := tm.Generate(42, "session-token-abc")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, _, err := tm.Parse(bearer); !errors.Is(err, ErrCredentialInvalid) {
		t.Errorf("Parse expired = %v, want ErrCredentialInvalid", err)
	}
}

func TestTokenManagerRejectsMalformed(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	for _, bearer := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		if _, _, err := tm.Parse(bearer); !errors.Is(err, ErrCredentialInvalid) {
			t.Errorf("Parse(%q) = %v, want ErrCredentialInvalid", bearer, err)
		}
	}
}

func TestTokenManagerRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	bearer, _, err := issuer.Generate(42, "session-token-abc")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, _, err := verifier.Parse(bearer); !errors.Is(err, ErrCredentialInvalid) {
		t.Errorf("Parse with wrong secret = %v, want ErrCredentialInvalid", err)
	}
}

func TestTokenManagerDefaultsTTL(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)

	_, expiresAt, err := tm.Generate(1, "tok")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if remaining := time.Until(expiresAt); remaining < 23*time.Hour || remaining > 24*time.Hour {
		t.Errorf("default ttl not 24h, remaining %v", remaining)
	}
}
