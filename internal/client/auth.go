package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/redmonkez12/go-todo-client/internal/httputil"
	"github.com/redmonkez12/go-todo-client/internal/user"
)

// AuthResponse is returned by register and login
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates an account and stores the returned token.
// An empty name is left out of the payload.
func (c *Client) Register(ctx context.Context, email, password, name string) (*AuthResponse, error) {
	payload := user.RegisterRequest{
		Email:         email,
		Password:      password,
		EmailVerified: false,
	}
	if name != "" {
		payload.Name = &name
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode registration: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/register", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return c.authenticate(req, "register", msgRegisterFailed)
}

// Login posts the credentials as a form and stores the returned token
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.authenticate(req, "login", msgLoginFailed)
}

// Logout removes the stored token. No request is sent and it never fails;
// a store error is logged.
func (c *Client) Logout(ctx context.Context) {
	if err := c.session.Clear(ctx); err != nil {
		c.logger.Warn("failed to clear session token", "error", err.Error())
	}
}

// authenticate sends an auth request and saves the token on success.
// On failure the server's string detail becomes the message, else fallback.
func (c *Client) authenticate(req *http.Request, op, fallback string) (*AuthResponse, error) {
	resp, cancel, err := c.do(req)
	if err != nil {
		return nil, networkError(op, fallback, err)
	}
	defer cancel()
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		message, ok := httputil.DetailMessage(body)
		if !ok {
			message = fallback
		}
		return nil, statusError(op, resp.StatusCode, message)
	}

	var auth AuthResponse
	if err := decodeJSON(resp.Body, &auth); err != nil {
		return nil, decodeError(op, resp.StatusCode, fallback, err)
	}
	if auth.AccessToken == "" {
		return nil, decodeError(op, resp.StatusCode, fallback, fmt.Errorf("response has no access_token"))
	}

	if err := c.session.Save(req.Context(), auth.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to save session token: %w", err)
	}

	c.logger.Info("authenticated", "op", op, "token_type", auth.TokenType)
	return &auth, nil
}
