package models

import "time"

// ChamadoStatus is the lifecycle status of a service ticket.
type ChamadoStatus string

const (
	StatusAberto      ChamadoStatus = "Aberto"
	StatusEmAndamento ChamadoStatus = "Em Andamento"
	StatusConcluido   ChamadoStatus = "Concluído"
	StatusCancelado   ChamadoStatus = "Cancelado"
)

// AllStatuses lists every ticket status in display order.
var AllStatuses = []ChamadoStatus{StatusAberto, StatusEmAndamento, StatusConcluido, StatusCancelado}

// Chamado represents a repair service ticket.
type Chamado struct {
	ID           int           `json:"id_chamado"`
	ClienteID    int           `json:"id_cliente"`
	UsuarioID    *int          `json:"id_usuario,omitempty"` // assigned technician
	Descricao    string        `json:"descricao"`
	Aparelho     string        `json:"aparelho"`
	Status       ChamadoStatus `json:"status"`
	Valor        float64       `json:"valor"`
	Observacao   string        `json:"observacao"`
	DataAbertura time.Time     `json:"data_abertura"`
	DataPrevista string        `json:"data_prevista,omitempty"` // YYYY-MM-DD
	Cliente      *Cliente      `json:"cliente,omitempty"`       // embedded snapshot on detail
	Itens        []ItemChamado `json:"itens,omitempty"`
}

// Total sums the ticket's line items. Display-only; the authoritative
// total lives server-side.
func (c *Chamado) Total() float64 {
	var total float64
	for _, item := range c.Itens {
		total += item.ValorTotal()
	}
	return total
}

// CreateChamadoRequest is the payload for opening a ticket.
type CreateChamadoRequest struct {
	ClienteID    int           `json:"id_cliente"`
	UsuarioID    *int          `json:"id_usuario,omitempty"`
	Descricao    string        `json:"descricao"`
	Aparelho     string        `json:"aparelho"`
	Status       ChamadoStatus `json:"status"`
	Valor        float64       `json:"valor"`
	Observacao   string        `json:"observacao,omitempty"`
	DataPrevista string        `json:"data_prevista,omitempty"`
}

// UpdateChamadoRequest carries only the fields being changed.
type UpdateChamadoRequest struct {
	UsuarioID    *int           `json:"id_usuario,omitempty"`
	Descricao    *string        `json:"descricao,omitempty"`
	Aparelho     *string        `json:"aparelho,omitempty"`
	Status       *ChamadoStatus `json:"status,omitempty"`
	Valor        *float64       `json:"valor,omitempty"`
	Observacao   *string        `json:"observacao,omitempty"`
	DataPrevista *string        `json:"data_prevista,omitempty"`
}

// ListChamadosFilter narrows a paginated ticket listing.
type ListChamadosFilter struct {
	Status    ChamadoStatus
	ClienteID int
	UsuarioID int
}

// ItemChamado is a billable line item on a ticket.
type ItemChamado struct {
	ID            int     `json:"id_item_chamado"`
	ChamadoID     int     `json:"id_chamado"`
	Descricao     string  `json:"descricao"`
	Quantidade    int     `json:"quantidade"`
	ValorUnitario float64 `json:"valor_unitario"`
}

// ValorTotal is the line total (quantity times unit price).
func (i ItemChamado) ValorTotal() float64 {
	return float64(i.Quantidade) * i.ValorUnitario
}

// CreateItemRequest is the payload for adding a line item to a ticket.
type CreateItemRequest struct {
	Descricao     string  `json:"descricao"`
	Quantidade    int     `json:"quantidade"`
	ValorUnitario float64 `json:"valor_unitario"`
}

// UpdateItemRequest carries only the fields being changed.
type UpdateItemRequest struct {
	Descricao     *string  `json:"descricao,omitempty"`
	Quantidade    *int     `json:"quantidade,omitempty"`
	ValorUnitario *float64 `json:"valor_unitario,omitempty"`
}
