package api

import (
	"context"
	"net/url"

	"oficina-desk/internal/httpclient"
	"oficina-desk/internal/models"
)

// Usuarios covers staff-account administration. The backend gates these
// by the authorizing role passed as the current_user_role query
// parameter, taken from the active session.
type Usuarios struct {
	c *httpclient.Client
}

func NewUsuarios(c *httpclient.Client) *Usuarios {
	return &Usuarios{c: c}
}

func (a *Usuarios) List(ctx context.Context) ([]models.Usuario, error) {
	var resp struct {
		Users []models.Usuario `json:"users"`
	}
	if err := a.c.Get(ctx, "/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (a *Usuarios) Create(ctx context.Context, currentRole models.Role, req models.CreateUsuarioRequest) (*models.Usuario, error) {
	var user models.Usuario
	path := "/users?" + roleQuery(currentRole)
	if err := a.c.Post(ctx, path, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *Usuarios) Update(ctx context.Context, currentRole models.Role, username string, req models.UpdateUsuarioRequest) (*models.Usuario, error) {
	var user models.Usuario
	path := "/users/" + url.PathEscape(username) + "?" + roleQuery(currentRole)
	if err := a.c.Put(ctx, path, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *Usuarios) Delete(ctx context.Context, currentRole models.Role, username string) error {
	query := url.Values{}
	query.Set("current_user_role", string(currentRole))
	return a.c.Delete(ctx, "/users/"+url.PathEscape(username), query)
}

func roleQuery(role models.Role) string {
	query := url.Values{}
	query.Set("current_user_role", string(role))
	return query.Encode()
}
