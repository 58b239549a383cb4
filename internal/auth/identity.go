package auth

import "fmt"

// Identity is the resolved principal attached to a request by the gate.
// It has exactly two shapes: anonymous, or authenticated with a subject id
// and the session token the credential round-tripped through login. The
// fields are unexported so an identity with a subject id but no session
// token (or the other way around) cannot be constructed.
type Identity struct {
	subjectID    int64
	sessionToken string
}

// Anonymous returns the unauthenticated identity.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated builds an identity for a verified subject. Invalid inputs
// collapse to the anonymous identity rather than producing a half-formed
// principal.
func Authenticated(subjectID int64, sessionToken string) Identity {
	if subjectID <= 0 || sessionToken == "" {
		return Identity{}
	}
	return Identity{subjectID: subjectID, sessionToken: sessionToken}
}

// IsAnonymous reports whether the request carries no verified principal.
func (i Identity) IsAnonymous() bool {
	return i.subjectID == 0
}

// SubjectID returns the employee id, or 0 for the anonymous identity.
func (i Identity) SubjectID() int64 {
	return i.subjectID
}

// SessionToken returns the server-side session token the identity was
// verified against; empty for the anonymous identity.
func (i Identity) SessionToken() string {
	return i.sessionToken
}

func (i Identity) String() string {
	if i.IsAnonymous() {
		return "<anonymous>"
	}
	return fmt.Sprintf("subject:%d", i.subjectID)
}
