package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"oficina-desk/internal/httpclient"
	"oficina-desk/internal/models"
)

// Caixa covers the cash-register ledger. The backend limits these
// endpoints to administrators and managers; the client mirrors that in
// the UI but relies on the server to enforce it.
type Caixa struct {
	c *httpclient.Client
}

func NewCaixa(c *httpclient.Client) *Caixa {
	return &Caixa{c: c}
}

func (a *Caixa) List(ctx context.Context, page, perPage int, filter models.ListCaixaFilter) (*models.Paginated[models.Caixa], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))
	if filter.Mes > 0 {
		query.Set("mes", strconv.Itoa(filter.Mes))
	}
	if filter.Ano > 0 {
		query.Set("ano", strconv.Itoa(filter.Ano))
	}
	if filter.Tipo != "" {
		query.Set("tipo", string(filter.Tipo))
	}

	var result models.Paginated[models.Caixa]
	if err := a.c.Get(ctx, "/api/caixa", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *Caixa) Get(ctx context.Context, id int) (*models.Caixa, error) {
	var caixa models.Caixa
	if err := a.c.Get(ctx, fmt.Sprintf("/api/caixa/%d", id), nil, &caixa); err != nil {
		return nil, err
	}
	return &caixa, nil
}

func (a *Caixa) Create(ctx context.Context, req models.CreateCaixaRequest) (*models.Caixa, error) {
	var caixa models.Caixa
	if err := a.c.Post(ctx, "/api/caixa", req, &caixa); err != nil {
		return nil, err
	}
	return &caixa, nil
}

func (a *Caixa) Update(ctx context.Context, id int, req models.UpdateCaixaRequest) (*models.Caixa, error) {
	var caixa models.Caixa
	if err := a.c.Put(ctx, fmt.Sprintf("/api/caixa/%d", id), req, &caixa); err != nil {
		return nil, err
	}
	return &caixa, nil
}

func (a *Caixa) Delete(ctx context.Context, id int) error {
	return a.c.Delete(ctx, fmt.Sprintf("/api/caixa/%d", id), nil)
}

// Sum returns the server-side month balance; saldo is entrada minus saida
// for the same filter.
func (a *Caixa) Sum(ctx context.Context, mes, ano int) (*models.CaixaSum, error) {
	query := url.Values{}
	if mes > 0 {
		query.Set("mes", strconv.Itoa(mes))
	}
	if ano > 0 {
		query.Set("ano", strconv.Itoa(ano))
	}

	var sum models.CaixaSum
	if err := a.c.Get(ctx, "/api/caixa/sum", query, &sum); err != nil {
		return nil, err
	}
	return &sum, nil
}
