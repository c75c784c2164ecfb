package transport

import (
	"net/http"
	"strings"
)

// Backend endpoint path constants (relative to the API base URL)
// All backend paths the transport special-cases are defined here to ensure
// consistency and prevent typos
const (
	EndpointLogin      = "/auth/login"
	EndpointRegister   = "/auth/register"
	EndpointCheckEmail = "/auth/check-email"

	EndpointVendors   = "/vendors"
	EndpointBookings  = "/bookings"
	EndpointChecklist = "/checklist"
	EndpointFavorites = "/favorites"
	EndpointReviews   = "/reviews"

	authPathFragment  = "/auth/"
	adminPathFragment = "/admin/"
)

// endpointCategory buckets a request path for the 401 decision table.
type endpointCategory int

const (
	// categoryOther covers endpoints with no special 401 handling; a 401
	// there, with a token present, proves the session is invalid.
	categoryOther endpointCategory = iota
	// categoryAuth covers the login/registration endpoints themselves.
	categoryAuth
	// categorySoft covers endpoints whose 401s are delegated to the calling
	// feature because it has its own recovery UI.
	categorySoft
)

// softPathFragments is the allow-list of soft endpoints. A hard logout on a
// 401 from any of these would be jarring (the feature renders an inline
// "please log in again") or could race an in-flight login.
var softPathFragments = []string{
	EndpointBookings,
	EndpointChecklist,
	EndpointFavorites,
	EndpointReviews,
	adminPathFragment,
}

func categorize(path string) endpointCategory {
	if strings.Contains(path, authPathFragment) {
		return categoryAuth
	}
	for _, fragment := range softPathFragments {
		if strings.Contains(path, fragment) {
			return categorySoft
		}
	}
	return categoryOther
}

// publicPathFragments are endpoints that legitimately work without a token.
// Only used to decide whether a missing token is worth logging.
var publicPathFragments = []string{
	EndpointLogin,
	EndpointRegister,
	EndpointCheckEmail,
	EndpointVendors,
}

func isPublicEndpoint(path string) bool {
	for _, fragment := range publicPathFragments {
		if strings.Contains(path, fragment) {
			return true
		}
	}
	return false
}

// slashRule marks a collection endpoint whose path must carry a trailing
// slash. The backend redirects the slashless form, and that redirect drops
// the Authorization header in transit, so the path is normalized before
// sending instead.
type slashRule struct {
	method string
	suffix string
}

var slashRules = []slashRule{
	{http.MethodPost, EndpointBookings},
	{http.MethodPost, EndpointChecklist},
	{http.MethodGet, EndpointChecklist},
}

func normalizePath(method, path string) string {
	if strings.HasSuffix(path, "/") {
		return path
	}
	for _, rule := range slashRules {
		if method == rule.method && strings.HasSuffix(path, rule.suffix) {
			return path + "/"
		}
	}
	return path
}
