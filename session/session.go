package session

import "time"

// Role identifies which marketplace surface an identity belongs to.
type Role string

const (
	RoleUser   Role = "user"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// Identity is the authenticated account as issued by the backend on login.
// It is immutable for the lifetime of a session and replaced wholesale on
// the next login.
type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

// Session is the in-memory record of the current authenticated identity,
// its bearer token, and when it was established.
//
// Invariant: Token is present if and only if Identity is present. LoginTime
// is stamped exactly once per login and is the sole input to expiry
// computation; it is never refreshed by activity (absolute lifetime, not
// sliding window).
type Session struct {
	Identity  *Identity
	Token     string
	LoginTime time.Time
}

// Authenticated reports whether the session holds a complete identity/token pair.
func (s Session) Authenticated() bool {
	return s.Identity != nil && s.Token != ""
}

// State is the derived lifecycle state of a session.
type State int

const (
	// StateAnonymous means no identity or token is held.
	StateAnonymous State = iota
	// StateAuthenticated means an identity/token pair is held and within the maximum session age.
	StateAuthenticated
	// StateExpired means an identity/token pair is held but the login exceeds the maximum session age.
	// Expired is always recomputed on demand, never stored.
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateExpired:
		return "expired"
	default:
		return "anonymous"
	}
}
