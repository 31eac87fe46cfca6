package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"oficina-desk/internal/httpclient"
	"oficina-desk/internal/models"
)

type Clientes struct {
	c *httpclient.Client
}

func NewClientes(c *httpclient.Client) *Clientes {
	return &Clientes{c: c}
}

// validTelefone checks the only format rule the client enforces: 8 to 20
// digits. Everything else (uniqueness included) is the server's call.
func validTelefone(telefone string) bool {
	if len(telefone) < 8 || len(telefone) > 20 {
		return false
	}
	for _, r := range telefone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ErrTelefoneInvalido rejects malformed phone numbers before they reach
// the network.
var ErrTelefoneInvalido = fmt.Errorf("telefone deve ter entre 8 e 20 dígitos")

func (a *Clientes) Create(ctx context.Context, req models.CreateClienteRequest) (*models.Cliente, error) {
	if !validTelefone(req.Telefone) {
		return nil, ErrTelefoneInvalido
	}
	var cliente models.Cliente
	if err := a.c.Post(ctx, "/api/clientes/", req, &cliente); err != nil {
		return nil, err
	}
	return &cliente, nil
}

func (a *Clientes) Get(ctx context.Context, id int) (*models.Cliente, error) {
	var cliente models.Cliente
	if err := a.c.Get(ctx, fmt.Sprintf("/api/clientes/%d", id), nil, &cliente); err != nil {
		return nil, err
	}
	return &cliente, nil
}

// GetByTelefone looks a customer up by the phone business key, a distinct
// server index from the paginated search.
func (a *Clientes) GetByTelefone(ctx context.Context, telefone string) (*models.Cliente, error) {
	if !validTelefone(telefone) {
		return nil, ErrTelefoneInvalido
	}
	var cliente models.Cliente
	if err := a.c.Get(ctx, "/api/clientes/telefone/"+url.PathEscape(telefone), nil, &cliente); err != nil {
		return nil, err
	}
	return &cliente, nil
}

func (a *Clientes) List(ctx context.Context, page, perPage int, filter models.ListClientesFilter) (*models.Paginated[models.Cliente], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Nome != "" {
		query.Set("nome", filter.Nome)
	}
	if filter.Telefone != "" {
		query.Set("telefone", filter.Telefone)
	}

	var result models.Paginated[models.Cliente]
	if err := a.c.Get(ctx, "/api/clientes", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *Clientes) Update(ctx context.Context, id int, req models.UpdateClienteRequest) (*models.Cliente, error) {
	if req.Telefone != nil && !validTelefone(*req.Telefone) {
		return nil, ErrTelefoneInvalido
	}
	var cliente models.Cliente
	if err := a.c.Put(ctx, fmt.Sprintf("/api/clientes/%d", id), req, &cliente); err != nil {
		return nil, err
	}
	return &cliente, nil
}

func (a *Clientes) Statistics(ctx context.Context) (*models.ClienteStats, error) {
	var stats models.ClienteStats
	if err := a.c.Get(ctx, "/api/clientes/statistics", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
