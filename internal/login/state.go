package login

// State is a point in the login state machine:
//
//	Init → NavigatedToLogin → CredentialsEntered → SubmittedForm → {AuthenticatedVerified | Failed}
type State int

const (
	StateInit State = iota
	StateNavigatedToLogin
	StateCredentialsEntered
	StateSubmittedForm
	StateAuthenticatedVerified
	StateFailed
)

var stateNames = [...]string{
	StateInit:                  "init",
	StateNavigatedToLogin:      "navigated_to_login",
	StateCredentialsEntered:    "credentials_entered",
	StateSubmittedForm:         "submitted_form",
	StateAuthenticatedVerified: "authenticated_verified",
	StateFailed:                "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateAuthenticatedVerified || s == StateFailed
}

// Outcome is the result of one run. Err is nil exactly when State is
// StateAuthenticatedVerified.
type Outcome struct {
	State State

	// Reached is the last non-terminal state before a failure.
	Reached    State
	Err        error
	Screenshot string
}

// Success reports whether the run verified an authenticated page.
func (o Outcome) Success() bool {
	return o.State == StateAuthenticatedVerified
}
