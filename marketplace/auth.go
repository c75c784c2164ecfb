package marketplace

import (
	"context"
	"net/http"

	"github.com/wedvenue/wedvenue-client/session"
	"github.com/wedvenue/wedvenue-client/transport"
)

// LoginResult is the backend's response to a successful login.
type LoginResult struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	User        session.Identity `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn exchanges credentials for an identity/token pair and establishes
// the session. This is the single place where a feature hands the obtained
// pair to the Session Manager; features never write credentials themselves.
func (c *Client) SignIn(ctx context.Context, email, password string) (session.Identity, error) {
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, transport.EndpointLogin, loginRequest{Email: email, Password: password}, &result); err != nil {
		return session.Identity{}, err
	}
	if err := c.manager.Login(ctx, result.User, result.AccessToken); err != nil {
		return session.Identity{}, err
	}
	return result.User, nil
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role,omitempty"`
}

// Register creates an account. The caller signs in separately.
func (c *Client) Register(ctx context.Context, input RegisterInput) (session.Identity, error) {
	var ident session.Identity
	if err := c.do(ctx, http.MethodPost, transport.EndpointRegister, input, &ident); err != nil {
		return session.Identity{}, err
	}
	return ident, nil
}

// CheckEmail reports whether an email address is already registered.
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	var result struct {
		Exists bool `json:"exists"`
	}
	err := c.do(ctx, http.MethodPost, transport.EndpointCheckEmail, map[string]string{"email": email}, &result)
	if err != nil {
		return false, err
	}
	return result.Exists, nil
}

// SignOut ends the session on explicit user action.
func (c *Client) SignOut(ctx context.Context) error {
	return c.manager.Logout(ctx)
}
