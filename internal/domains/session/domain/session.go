package domain

// State is the authentication state of the session.
type State int

const (
	// StateRestoring precedes both other states until the persisted session has been read.
	StateRestoring State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent read of the session.
type Snapshot struct {
	State State
	Token string
	User  *User
}

// Loading reports whether the initial restore is still pending.
func (s Snapshot) Loading() bool {
	return s.State == StateRestoring
}

// IsAuthenticated reports whether a bearer token is held.
func (s Snapshot) IsAuthenticated() bool {
	return s.Token != ""
}
