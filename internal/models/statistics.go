package models

// ChamadoStats is the ticket-side aggregate from the statistics endpoint.
type ChamadoStats struct {
	TotalOpen        int            `json:"total_open"`
	TotalInProgress  int            `json:"total_in_progress"`
	TotalCompleted   int            `json:"total_completed"`
	TotalCanceled    int            `json:"total_canceled"`
	TotalValueOpen   float64        `json:"total_value_open"`
	ValorRecebidoMes float64        `json:"valor_recebido_mes"`
	ChamadosByClient map[string]int `json:"chamados_by_client"`
}

// Statistics is the combined dashboard snapshot: the ticket and customer
// aggregates fetched together and merged. Read-only, recomputed per fetch.
type Statistics struct {
	ChamadoStats
	TotalClientes int `json:"total_clientes"`
}
