package transport

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/wedvenue/wedvenue-client/nav"
	"github.com/wedvenue/wedvenue-client/session"
)

// verdict is the outcome of classifying a 401 response.
type verdict int

const (
	// verdictDelegated returns the failure unchanged to the caller with no
	// session mutation.
	verdictDelegated verdict = iota
	// verdictFatal treats the failure as proof the session is invalid:
	// forced logout plus navigation to the login surface.
	verdictFatal
)

// classify maps (endpoint category, token presence, current screen) to a
// verdict. The whole policy lives in this one table:
//
//	no token sent        → delegated (an unauthenticated probe returning 401 is not a session event)
//	on an auth screen    → delegated (never force-navigate into a redirect loop or a mid-login race)
//	auth endpoints       → delegated (a failed login attempt is an ordinary failure)
//	soft endpoints       → delegated (the feature renders its own recovery UI)
//	anything else        → fatal
//
// When in doubt the policy favors delegation: a spurious global logout costs
// more trust than an unhandled local error.
func classify(category endpointCategory, tokenSent, onAuthScreen bool) verdict {
	if !tokenSent || onAuthScreen {
		return verdictDelegated
	}
	switch category {
	case categoryAuth, categorySoft:
		return verdictDelegated
	default:
		return verdictFatal
	}
}

var _ http.RoundTripper = (*Classifier)(nil)

// Classifier inspects every response. Anything other than a 401 passes
// through untouched; a 401 is run through the decision table and, when
// fatal, ends the session and routes the user to the login surface matching
// their role.
type Classifier struct {
	next      http.RoundTripper
	manager   *session.Manager
	navigator nav.Navigator
	logger    zerolog.Logger
}

// NewClassifier creates a Classifier around next.
func NewClassifier(manager *session.Manager, navigator nav.Navigator, next http.RoundTripper, logger zerolog.Logger) (*Classifier, error) {
	if manager == nil {
		return nil, errors.New("[NewClassifier] session manager is required")
	}
	if navigator == nil {
		return nil, errors.New("[NewClassifier] navigator is required")
	}
	if next == nil {
		return nil, errors.New("[NewClassifier] next round tripper is required")
	}
	return &Classifier{next: next, manager: manager, navigator: navigator, logger: logger}, nil
}

func (c *Classifier) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := c.next.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	tokenSent := c.tokenWasSent(resp)
	onAuthScreen := nav.IsAuthScreen(c.navigator.CurrentPath())
	category := categorize(req.URL.Path)

	if classify(category, tokenSent, onAuthScreen) == verdictFatal {
		ident, _ := c.manager.AuthIdentity()
		c.logger.Warn().
			Str("path", req.URL.Path).
			Str("role", string(ident.Role)).
			Msg("fatal authorization failure, ending session")

		if logoutErr := c.manager.Logout(req.Context()); logoutErr != nil {
			c.logger.Error().Err(logoutErr).Msg("forced logout failed")
		}
		c.navigator.Assign(loginRouteForRole(ident.Role))
	}

	// The failure itself always goes back to the caller unchanged.
	return resp, nil
}

// tokenWasSent checks the request the response actually travelled with, so
// the verdict reflects what the backend saw rather than what the session
// holds now.
func (c *Classifier) tokenWasSent(resp *http.Response) bool {
	if resp.Request != nil && resp.Request.Header.Get(headerAuthorization) != "" {
		return true
	}
	_, ok := c.manager.Token()
	return ok
}

func loginRouteForRole(role session.Role) string {
	if role == session.RoleAdmin {
		return nav.RouteAdminLogin
	}
	return nav.RouteLogin
}

// New assembles the full transport chain (Authorizer wrapped by Classifier)
// around base, which defaults to http.DefaultTransport.
func New(manager *session.Manager, navigator nav.Navigator, base http.RoundTripper, logger zerolog.Logger) (http.RoundTripper, error) {
	authorizer, err := NewAuthorizer(manager, navigator, base, logger)
	if err != nil {
		return nil, err
	}
	return NewClassifier(manager, navigator, authorizer, logger)
}
