package auth

import "testing"

func TestAnonymousIdentity(t *testing.T) {
	id := Anonymous()

	if !id.IsAnonymous() {
		t.Error("Anonymous().IsAnonymous() = false")
	}
	if id.SubjectID() != 0 {
		t.Errorf("SubjectID = %d, want 0", id.SubjectID())
	}
	if id.SessionToken() != "" {
		t.Errorf("SessionToken = %q, want empty", id.SessionToken())
	}
	if id.String() != "<anonymous>" {
		t.Errorf("String = %q", id.String())
	}
}

func TestAuthenticatedIdentity(t *testing.T) {
	id := Authenticated(7, "tok")

	if id.IsAnonymous() {
		t.Error("IsAnonymous = true for valid inputs")
	}
	if id.SubjectID() != 7 {
		t.Errorf("SubjectID = %d, want 7", id.SubjectID())
	}
	if id.SessionToken() != "tok" {
		t.Errorf("SessionToken = %q, want tok", id.SessionToken())
	}
	if id.String() != "subject:7" {
		t.Errorf("String = %q", id.String())
	}
}

func TestAuthenticatedCollapsesInvalidInputs(t *testing.T) {
	cases := []struct {
		name      string
		subjectID int64
		token     string
	}{
		{"zero id", 0, "tok"},
		{"negative id", -1, "tok"},
		{"empty token", 7, ""},
		{"both invalid", 0, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if id := Authenticated(tc.subjectID, tc.token); !id.IsAnonymous() {
				t.Errorf("Authenticated(%d, %q) not anonymous", tc.subjectID, tc.token)
			}
		})
	}
}
