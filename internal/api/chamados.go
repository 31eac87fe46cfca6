package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"oficina-desk/internal/httpclient"
	"oficina-desk/internal/models"
)

type Chamados struct {
	c *httpclient.Client
}

func NewChamados(c *httpclient.Client) *Chamados {
	return &Chamados{c: c}
}

func (a *Chamados) Create(ctx context.Context, req models.CreateChamadoRequest) (*models.Chamado, error) {
	var chamado models.Chamado
	if err := a.c.Post(ctx, "/api/chamados/", req, &chamado); err != nil {
		return nil, err
	}
	return &chamado, nil
}

func (a *Chamados) Get(ctx context.Context, id int) (*models.Chamado, error) {
	var chamado models.Chamado
	if err := a.c.Get(ctx, fmt.Sprintf("/api/chamados/%d", id), nil, &chamado); err != nil {
		return nil, err
	}
	return &chamado, nil
}

func (a *Chamados) List(ctx context.Context, page, perPage int, filter models.ListChamadosFilter) (*models.Paginated[models.Chamado], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.ClienteID > 0 {
		query.Set("id_cliente", strconv.Itoa(filter.ClienteID))
	}
	if filter.UsuarioID > 0 {
		query.Set("id_usuario", strconv.Itoa(filter.UsuarioID))
	}

	var result models.Paginated[models.Chamado]
	if err := a.c.Get(ctx, "/api/chamados", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListByCliente pages through one customer's tickets.
func (a *Chamados) ListByCliente(ctx context.Context, clienteID, page, perPage int) (*models.Paginated[models.Chamado], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	var result models.Paginated[models.Chamado]
	if err := a.c.Get(ctx, fmt.Sprintf("/api/chamados/cliente/%d", clienteID), query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *Chamados) Update(ctx context.Context, id int, req models.UpdateChamadoRequest) (*models.Chamado, error) {
	var chamado models.Chamado
	if err := a.c.Put(ctx, fmt.Sprintf("/api/chamados/%d", id), req, &chamado); err != nil {
		return nil, err
	}
	return &chamado, nil
}

// ByDay lists the tickets expected for one calendar day (date YYYY-MM-DD).
func (a *Chamados) ByDay(ctx context.Context, date string) ([]models.Chamado, error) {
	query := url.Values{}
	query.Set("date", date)

	var chamados []models.Chamado
	if err := a.c.Get(ctx, "/api/chamados/calendar/day", query, &chamados); err != nil {
		return nil, err
	}
	return chamados, nil
}

func (a *Chamados) Statistics(ctx context.Context) (*models.ChamadoStats, error) {
	var stats models.ChamadoStats
	if err := a.c.Get(ctx, "/api/chamados/statistics", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
