package api

import (
	"context"
	"fmt"

	"oficina-desk/internal/httpclient"
	"oficina-desk/internal/models"
)

// Itens covers the line-item sub-resource of a ticket.
type Itens struct {
	c *httpclient.Client
}

func NewItens(c *httpclient.Client) *Itens {
	return &Itens{c: c}
}

func (a *Itens) Add(ctx context.Context, chamadoID int, req models.CreateItemRequest) (*models.ItemChamado, error) {
	var item models.ItemChamado
	if err := a.c.Post(ctx, fmt.Sprintf("/api/chamados/%d/itens", chamadoID), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (a *Itens) List(ctx context.Context, chamadoID int) ([]models.ItemChamado, error) {
	var itens []models.ItemChamado
	if err := a.c.Get(ctx, fmt.Sprintf("/api/chamados/%d/itens", chamadoID), nil, &itens); err != nil {
		return nil, err
	}
	return itens, nil
}

func (a *Itens) Update(ctx context.Context, itemID int, req models.UpdateItemRequest) (*models.ItemChamado, error) {
	var item models.ItemChamado
	if err := a.c.Put(ctx, fmt.Sprintf("/api/chamados/itens/%d", itemID), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (a *Itens) Delete(ctx context.Context, itemID int) error {
	return a.c.Delete(ctx, fmt.Sprintf("/api/chamados/itens/%d", itemID), nil)
}
