package auth

import "testing"

func TestNewSessionTokenIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok := NewSessionToken(7)
		if len(tok) != 64 {
			t.Fatalf("token length = %d, want 64 hex chars", len(tok))
		}
		if seen[tok] {
			t.Fatal("duplicate session token minted")
		}
		seen[tok] = true
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := HashPassword("s3cret", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := ComparePassword(hashed, "s3cret"); err != nil {
		t.Errorf("ComparePassword correct password: %v", err)
	}
	if err := ComparePassword(hashed, "wrong"); err == nil {
		t.Error("ComparePassword accepted wrong password")
	}
}

func TestHashPasswordClampsCost(t *testing.T) {
	// Out-of-range costs fall back to the bcrypt default instead of failing.
	if _, err := HashPassword("s3cret", 99); err != nil {
		t.Errorf("HashPassword with oversized cost: %v", err)
	}
}
