package marketplace_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wedvenue/wedvenue-client/marketplace"
	fakenavigator "github.com/wedvenue/wedvenue-client/nav/navfake"
	"github.com/wedvenue/wedvenue-client/session"
	fakecredentialsrepo "github.com/wedvenue/wedvenue-client/session/repofakes"
)

type testFixture struct {
	manager   *session.Manager
	navigator *fakenavigator.FakeNavigator
	mux       *http.ServeMux
	client    *marketplace.Client
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	manager, err := session.NewManager(fakecredentialsrepo.NewFakeCredentialsRepo())
	require.NoError(t, err)

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	navigator := fakenavigator.NewFakeNavigator()
	client, err := marketplace.New(server.URL, manager, navigator)
	require.NoError(t, err)

	return &testFixture{manager: manager, navigator: navigator, mux: mux, client: client}
}

func (f *testFixture) login(t *testing.T) {
	t.Helper()
	ident := session.Identity{ID: "user-1", Email: "jane@example.com", FullName: "Jane Doe", Role: session.RoleUser}
	require.NoError(t, f.manager.Login(context.Background(), ident, "token"))
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestSignInEstablishesSession(t *testing.T) {
	f := setupTestFixture(t)

	f.mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "jane@example.com", creds.Email)

		writeJSON(t, w, http.StatusOK, marketplace.LoginResult{
			AccessToken: "issued-token",
			TokenType:   "bearer",
			User:        session.Identity{ID: "user-1", Email: creds.Email, FullName: "Jane Doe", Role: session.RoleUser},
		})
	})

	ident, err := f.client.SignIn(context.Background(), "jane@example.com", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", ident.FullName)

	require.Equal(t, session.StateAuthenticated, f.manager.State())
	token, ok := f.manager.Token()
	require.True(t, ok)
	require.Equal(t, "issued-token", token)
}

func TestSignInFailureIsDelegated(t *testing.T) {
	f := setupTestFixture(t)

	f.mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
	})

	_, err := f.client.SignIn(context.Background(), "jane@example.com", "wrong")
	require.Error(t, err)

	var apiErr *marketplace.APIError
	require.ErrorAs(t, err, &apiErr)
	require.True(t, apiErr.IsUnauthorized())
	require.Equal(t, "Incorrect email or password", apiErr.Detail)

	// A failed login attempt never navigates or touches the session.
	require.Equal(t, session.StateAnonymous, f.manager.State())
	require.Zero(t, f.navigator.NavigationCount())
}

func TestBrowseVendorsWorksAnonymously(t *testing.T) {
	f := setupTestFixture(t)

	f.mux.HandleFunc("GET /vendors", func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		require.Equal(t, "catering", r.URL.Query().Get("category"))
		require.Equal(t, "20", r.URL.Query().Get("page_size"))

		writeJSON(t, w, http.StatusOK, []marketplace.Vendor{
			{ID: "v1", Name: "Feast & Co", Category: "catering", Rating: 4.8, ReviewCount: 31},
		})
	})

	vendors, err := f.client.BrowseVendors(context.Background(), marketplace.VendorFilter{Category: "catering", PageSize: 20})
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	require.Equal(t, "Feast & Co", vendors[0].Name)
}

func TestCreateBookingSendsTrailingSlash(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	f.mux.HandleFunc("POST /bookings/{$}", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bookings/", r.URL.Path)
		require.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		writeJSON(t, w, http.StatusCreated, marketplace.Booking{ID: "b1", VendorID: "v1", Status: "pending"})
	})

	booking, err := f.client.CreateBooking(context.Background(), marketplace.BookingCreate{
		VendorID:      "v1",
		EventLocation: "Lakeside Pavilion",
		TotalAmount:   2500,
	})
	require.NoError(t, err)
	require.Equal(t, "b1", booking.ID)
}

func TestSoft401ReturnsAPIErrorWithSessionIntact(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	f.mux.HandleFunc("GET /checklist/{$}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
	})

	_, err := f.client.Checklist(context.Background())
	require.Error(t, err)

	var apiErr *marketplace.APIError
	require.ErrorAs(t, err, &apiErr)
	require.True(t, apiErr.IsUnauthorized())

	// Delegated: the feature shows its own recovery UI, the session stands.
	require.Equal(t, session.StateAuthenticated, f.manager.State())
	require.Zero(t, f.navigator.NavigationCount())
}

func TestAPIErrorDetailFallsBackToStatusText(t *testing.T) {
	f := setupTestFixture(t)

	f.mux.HandleFunc("GET /vendors/v1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := f.client.GetVendor(context.Background(), "v1")

	var apiErr *marketplace.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.Equal(t, "Internal Server Error", apiErr.Detail)
}

func TestCheckEmail(t *testing.T) {
	f := setupTestFixture(t)

	f.mux.HandleFunc("POST /auth/check-email", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		writeJSON(t, w, http.StatusOK, map[string]bool{"exists": payload["email"] == "taken@example.com"})
	})

	exists, err := f.client.CheckEmail(context.Background(), "taken@example.com")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = f.client.CheckEmail(context.Background(), "free@example.com")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestSignOutClearsSession(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	require.NoError(t, f.client.SignOut(context.Background()))
	require.Equal(t, session.StateAnonymous, f.manager.State())
}

func TestRejectsRelativeBaseURL(t *testing.T) {
	manager, err := session.NewManager(fakecredentialsrepo.NewFakeCredentialsRepo())
	require.NoError(t, err)

	_, err = marketplace.New("/api", manager, fakenavigator.NewFakeNavigator())
	require.Error(t, err)
}
