package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/Jeevankiran1503/Prodigy-FS-03/models"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
)

// Register creates an account and signs in with it.
func (c *Client) Register(ctx context.Context, in services.RegisterInput) (*models.PublicUser, error) {
	var user models.PublicUser
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", in, &user); err != nil {
		return nil, err
	}
	c.State.Auth.setUser(user)
	return &user, nil
}

func (c *Client) Login(ctx context.Context, in services.LoginInput) (*models.PublicUser, error) {
	var user models.PublicUser
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", in, &user); err != nil {
		return nil, err
	}
	c.State.Auth.setUser(user)
	return &user, nil
}

// CheckAuth asks the server whether the stored session is still valid. A 401
// resets the auth and cart state.
func (c *Client) CheckAuth(ctx context.Context) (*services.Session, error) {
	var sess services.Session
	if err := c.doJSON(ctx, http.MethodGet, "/auth/check-auth", nil, &sess); err != nil {
		if IsUnauthorized(err) {
			c.signedOut()
		}
		return nil, err
	}
	c.State.Auth.setSession(sess)
	return &sess, nil
}

// Logout clears the session cookie on the server and the local state. The
// local state is cleared even when the request fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.signedOut()
	return err
}

func (c *Client) signedOut() {
	c.State.Auth.reset()
	c.State.Cart.set(nil)
}

func errorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
