package models

import "time"

// CaixaTipo distinguishes cash inflows from outflows.
type CaixaTipo string

const (
	CaixaEntrada CaixaTipo = "entrada"
	CaixaSaida   CaixaTipo = "saida"
)

// Caixa is a single cash-register ledger entry, grouped by month/year.
// Once Fechado is set the server rejects further edits; the client only
// disables the controls.
type Caixa struct {
	ID             int       `json:"id_caixa"`
	Descricao      string    `json:"descricao"`
	Valor          float64   `json:"valor"`
	Tipo           CaixaTipo `json:"tipo"`
	DataLancamento time.Time `json:"data_lancamento"`
	Mes            int       `json:"mes"`
	Ano            int       `json:"ano"`
	Fechado        bool      `json:"fechado"`
}

// CreateCaixaRequest is the payload for recording a ledger entry.
type CreateCaixaRequest struct {
	Descricao string    `json:"descricao"`
	Valor     float64   `json:"valor"`
	Tipo      CaixaTipo `json:"tipo"`
	Mes       int       `json:"mes"`
	Ano       int       `json:"ano"`
}

// UpdateCaixaRequest carries only the fields being changed.
type UpdateCaixaRequest struct {
	Descricao *string    `json:"descricao,omitempty"`
	Valor     *float64   `json:"valor,omitempty"`
	Tipo      *CaixaTipo `json:"tipo,omitempty"`
	Fechado   *bool      `json:"fechado,omitempty"`
}

// ListCaixaFilter narrows a ledger listing to a month, year and/or kind.
// Zero values mean "no filter".
type ListCaixaFilter struct {
	Mes  int
	Ano  int
	Tipo CaixaTipo
}

// CaixaSum is the server-computed balance for a month/year filter.
// Saldo is always TotalEntrada minus TotalSaida for the same filter.
type CaixaSum struct {
	TotalEntrada float64 `json:"total_entrada"`
	TotalSaida   float64 `json:"total_saida"`
	Saldo        float64 `json:"saldo"`
}
