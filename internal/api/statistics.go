package api

import (
	"context"

	"oficina-desk/internal/models"
)

// Statistics combines the ticket and customer aggregates into the single
// dashboard snapshot the views consume.
type Statistics struct {
	chamados *Chamados
	clientes *Clientes
}

func NewStatistics(chamados *Chamados, clientes *Clientes) *Statistics {
	return &Statistics{chamados: chamados, clientes: clientes}
}

// Fetch loads both statistics endpoints and merges them. Either failure
// fails the whole snapshot; the dashboard has no partial state.
func (a *Statistics) Fetch(ctx context.Context) (*models.Statistics, error) {
	chamadoStats, err := a.chamados.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	clienteStats, err := a.clientes.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Statistics{
		ChamadoStats:  *chamadoStats,
		TotalClientes: clienteStats.TotalClientes,
	}, nil
}
