package entity

type SessionMode string

const (
	ModeNew       SessionMode = "new"
	ModeReturning SessionMode = "returning"
)

type SessionState string

const (
	StateUninitialized         SessionState = "UNINITIALIZED"
	StateAwaitingModeSelection SessionState = "AWAITING_MODE_SELECTION"
	StateAssigningIdentity     SessionState = "ASSIGNING_IDENTITY"
	StateValidatingReturningID SessionState = "VALIDATING_RETURNING_ID"
	StateReady                 SessionState = "READY"
	StateError                 SessionState = "ERROR"
)

// EmployeeIDUnassigned marks a New session whose identity has not been
// acknowledged by the server yet.
const EmployeeIDUnassigned = -1

type EmployeeSession struct {
	Mode       SessionMode
	EmployeeID int
	Ready      bool
}

func (s *EmployeeSession) HasIdentity() bool {
	return s.EmployeeID != EmployeeIDUnassigned
}
