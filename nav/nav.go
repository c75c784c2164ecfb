// Package nav is the boundary between the session core and whatever renders
// screens. The core never navigates directly; it asks a Navigator to.
package nav

// Screen route constants
// All client-side screens the session core can route to are defined here to
// ensure consistency and prevent typos
const (
	RouteHome           = "/"
	RouteLogin          = "/login"
	RouteAdminLogin     = "/admin/login"
	RouteRegister       = "/register"
	RouteVendorRegister = "/vendor/register"

	RouteUserDashboard   = "/dashboard"
	RouteVendorDashboard = "/vendor/dashboard"
	RouteAdminDashboard  = "/admin/dashboard"
	RouteChecklist       = "/checklist"
	RouteFavorites       = "/favorites"
	RouteBookings        = "/bookings"
)

// authScreens are the screens where the user is already dealing with
// authentication. Forced navigation from these screens is never allowed:
// it would either loop or race an in-flight login.
var authScreens = map[string]struct{}{
	RouteLogin:          {},
	RouteAdminLogin:     {},
	RouteRegister:       {},
	RouteVendorRegister: {},
}

// IsAuthScreen reports whether path is one of the authentication screens.
func IsAuthScreen(path string) bool {
	_, ok := authScreens[path]
	return ok
}

// Navigator abstracts the host application's navigation and notification
// surface.
type Navigator interface {
	// CurrentPath returns the screen currently displayed.
	CurrentPath() string

	// Assign performs a hard navigation to path.
	Assign(path string)

	// Replace navigates to path replacing the current history entry, so
	// back-navigation cannot return to the screen being left.
	Replace(path string)

	// Notify surfaces a user-visible message.
	Notify(message string)
}
