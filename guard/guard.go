// Package guard gates screens that require authentication and, optionally,
// a specific role.
package guard

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/wedvenue/wedvenue-client/nav"
	"github.com/wedvenue/wedvenue-client/session"
)

// Requirement declares what a screen demands of the current session.
// A zero Role means any authenticated identity is acceptable.
type Requirement struct {
	Role session.Role
}

// Decision is the outcome of evaluating a Requirement: either the content
// may render, or the visitor is sent to a login surface.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Guard evaluates access for protected screens. It only reads session state;
// it never mutates it.
type Guard struct {
	manager   *session.Manager
	navigator nav.Navigator
	logger    zerolog.Logger
}

// GuardOption defines a function type to modify the Guard instance.
type GuardOption func(*Guard)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) GuardOption {
	return func(g *Guard) {
		g.logger = logger
	}
}

// New creates a Guard.
func New(manager *session.Manager, navigator nav.Navigator, options ...GuardOption) (*Guard, error) {
	if manager == nil {
		return nil, errors.New("[guard.New] session manager is required")
	}
	if navigator == nil {
		return nil, errors.New("[guard.New] navigator is required")
	}

	g := &Guard{manager: manager, navigator: navigator, logger: zerolog.Nop()}
	for _, option := range options {
		option(g)
	}
	return g, nil
}

// Evaluate is a pure function of the current session and the requirement.
// Role mismatch and missing authentication redirect to the same place: the
// login surface for the required role (admin screens get the admin login,
// everything else the generic one).
func (g *Guard) Evaluate(req Requirement) Decision {
	ident, ok := g.manager.AuthIdentity()
	if !ok {
		return Decision{RedirectTo: loginRouteForRole(req.Role)}
	}
	if req.Role != "" && ident.Role != req.Role {
		return Decision{RedirectTo: loginRouteForRole(req.Role)}
	}
	return Decision{Allow: true}
}

// Protect evaluates the requirement and, when access is denied, redirects
// via Replace so back-navigation cannot return to the blocked screen. It
// reports whether the protected content may render; callers re-invoke it
// whenever the session or the requirement changes.
func (g *Guard) Protect(req Requirement) bool {
	decision := g.Evaluate(req)
	if decision.Allow {
		return true
	}

	g.logger.Debug().
		Str("required_role", string(req.Role)).
		Str("redirect", decision.RedirectTo).
		Msg("access denied for protected screen")
	g.navigator.Replace(decision.RedirectTo)
	return false
}

func loginRouteForRole(role session.Role) string {
	if role == session.RoleAdmin {
		return nav.RouteAdminLogin
	}
	return nav.RouteLogin
}
