package backend

import (
	"context"
	"net/http"
)

// Login exchanges credentials for an access token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.call(ctx, callOptions{
		operation: "login",
		method:    http.MethodPost,
		path:      "/auth/login",
		body:      map[string]string{"email": email, "password": password},
		out:       &out,
		anonymous: true,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns the fresh session.
func (c *Client) Register(ctx context.Context, name, email, password, role string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.call(ctx, callOptions{
		operation: "register",
		method:    http.MethodPost,
		path:      "/auth/register",
		body: map[string]string{
			"name":     name,
			"email":    email,
			"password": password,
			"role":     role,
		},
		out:       &out,
		anonymous: true,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
