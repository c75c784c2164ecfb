// Package transport implements the client side of every backend round trip:
// attaching the bearer credential on the way out and classifying
// authorization failures on the way back.
package transport

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	clienterrors "github.com/wedvenue/wedvenue-client/internal/errors"
	"github.com/wedvenue/wedvenue-client/nav"
	"github.com/wedvenue/wedvenue-client/session"
)

const (
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
	bearerPrefix        = "Bearer "
)

var _ http.RoundTripper = (*Authorizer)(nil)

// Authorizer attaches the current bearer token to every outgoing request.
// It never blocks a request merely because no token is present: many
// features probe public endpoints unauthenticated. It does check expiry
// before sending, so a stale session fails fast instead of bouncing off the
// backend.
type Authorizer struct {
	next      http.RoundTripper
	manager   *session.Manager
	navigator nav.Navigator
	logger    zerolog.Logger
}

// NewAuthorizer creates an Authorizer around next (http.DefaultTransport
// when nil).
func NewAuthorizer(manager *session.Manager, navigator nav.Navigator, next http.RoundTripper, logger zerolog.Logger) (*Authorizer, error) {
	if manager == nil {
		return nil, errors.New("[NewAuthorizer] session manager is required")
	}
	if navigator == nil {
		return nil, errors.New("[NewAuthorizer] navigator is required")
	}
	if next == nil {
		next = http.DefaultTransport
	}
	return &Authorizer{next: next, manager: manager, navigator: navigator, logger: logger}, nil
}

func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	if a.manager.IsExpired(ctx) {
		if !nav.IsAuthScreen(a.navigator.CurrentPath()) {
			a.navigator.Assign(nav.RouteLogin)
		}
		return nil, clienterrors.ErrSessionExpired
	}

	// AwaitToken covers the cold-start window where the credential store has
	// not hydrated yet; once hydration has settled it returns immediately.
	token, ok := a.manager.AwaitToken(ctx)

	out := req.Clone(ctx)
	if normalized := normalizePath(out.Method, out.URL.Path); normalized != out.URL.Path {
		a.logger.Debug().Str("from", out.URL.Path).Str("to", normalized).Msg("normalized trailing slash")
		out.URL.Path = normalized
		out.URL.RawPath = ""
	}
	out.Header.Set(headerRequestID, uuid.NewString())

	if ok {
		out.Header.Set(headerAuthorization, bearerPrefix+token)
	} else if !isPublicEndpoint(out.URL.Path) {
		a.logger.Debug().Str("path", out.URL.Path).Msg("no token available for protected endpoint")
	}

	return a.next.RoundTrip(out)
}
