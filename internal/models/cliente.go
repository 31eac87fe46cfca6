package models

// Cliente represents a customer of the shop. The phone number is the
// business key the counter staff look customers up by; the numeric ID is
// the server's identifier.
type Cliente struct {
	ID       int    `json:"id_cliente"`
	Telefone string `json:"telefone"`
	Nome     string `json:"nome"`
	Endereco string `json:"endereco"`
}

// CreateClienteRequest is the payload for creating a customer.
type CreateClienteRequest struct {
	Telefone string `json:"telefone"`
	Nome     string `json:"nome"`
	Endereco string `json:"endereco"`
}

// UpdateClienteRequest carries only the fields being changed.
type UpdateClienteRequest struct {
	Telefone *string `json:"telefone,omitempty"`
	Nome     *string `json:"nome,omitempty"`
	Endereco *string `json:"endereco,omitempty"`
}

// ListClientesFilter narrows a paginated customer listing. Search matches
// name or phone; Nome and Telefone filter a single column.
type ListClientesFilter struct {
	Search   string
	Nome     string
	Telefone string
}

// ClienteStats is the customer-side aggregate from the statistics endpoint.
type ClienteStats struct {
	TotalClientes int `json:"total_clientes"`
}
