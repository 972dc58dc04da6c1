package api

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"

	"storyhive/internal/domain/user"
)

// Signup registers a new account and returns the User carrying the token
// the service issued.
func (c *Client) Signup(ctx context.Context, username, password, name string) (*user.User, error) {
	req := signupRequest{User: signupPayload{Username: username, Password: password, Name: name}}
	var resp authResponse
	if err := c.post(ctx, "/signup", req, &resp); err != nil {
		return nil, err
	}
	return resp.User.toDomain(resp.Token)
}

// Login authenticates an existing account.
func (c *Client) Login(ctx context.Context, username, password string) (*user.User, error) {
	req := loginRequest{User: loginPayload{Username: username, Password: password}}
	var resp authResponse
	if err := c.post(ctx, "/login", req, &resp); err != nil {
		return nil, err
	}
	return resp.User.toDomain(resp.Token)
}

// ResumeSession restores a session from stored credentials. The token
// travels as a query parameter here, unlike the mutating calls which carry
// it in the body; the service requires that asymmetry. Any failure means
// "no prior session" — the cause is logged, never propagated, so an
// expired token behaves like never having logged in.
func (c *Client) ResumeSession(ctx context.Context, token, username string) (*user.User, bool) {
	var resp userResponse
	query := url.Values{"token": {token}}
	if err := c.get(ctx, "/users/"+url.PathEscape(username), query, &resp); err != nil {
		logrus.WithError(err).WithField("username", username).Debug("session restore failed")
		return nil, false
	}

	u, err := resp.User.toDomain(token)
	if err != nil {
		logrus.WithError(err).WithField("username", username).Debug("session restore returned a bad user record")
		return nil, false
	}
	return u, true
}
