package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeLoggedIn     EventType = "employee_logged_in"
	EventEmployeeLoggedOut    EventType = "employee_logged_out"
	EventLoginFailed          EventType = "login_failed"
	EventPasswordReset        EventType = "password_reset"
	EventEmployeeDisabled     EventType = "employee_disabled"
	EventDepartmentReassigned EventType = "department_reassigned"
)

// Event is an audit record emitted by services. SubjectID is the employee
// the event is about; zero when the subject could not be resolved (a failed
// login for an unknown account).
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID int64       `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// LoginFailedPayload describes why a login attempt was rejected. Reason is
// for the audit trail only; the caller never sees it verbatim.
type LoginFailedPayload struct {
	LoginName string `json:"login_name"`
	Reason    string `json:"reason"`
}

// DepartmentReassignedPayload records a bulk department move.
type DepartmentReassignedPayload struct {
	EmployeeIDs  []int64 `json:"employee_ids"`
	DepartmentID int64   `json:"department_id"`
}
