// Package api holds one module per backend resource. Each function maps
// 1:1 to a server endpoint; inputs get type-level checks only, business
// validation is the server's job.
package api

import (
	"context"

	"oficina-desk/internal/httpclient"
	"oficina-desk/internal/models"
)

type Auth struct {
	c *httpclient.Client
}

func NewAuth(c *httpclient.Client) *Auth {
	return &Auth{c: c}
}

// Login authenticates against POST /login. Any non-2xx response is an
// authentication failure.
func (a *Auth) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	req := models.LoginRequest{Username: username, Password: password}
	if err := a.c.Post(ctx, "/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
