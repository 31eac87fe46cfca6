// Package queries names every fetch and mutation the views perform. Each
// query binds a cache key to its resource API call; each mutation names
// the set of keys it makes stale on success.
package queries

import (
	"net/url"
	"strconv"

	"oficina-desk/internal/cache"
	"oficina-desk/internal/models"
)

// Resource tags. Lists and details get distinct tags so a mutation can
// invalidate every page/filter combination of a list without touching
// unrelated details, and vice versa.
const (
	ResClientes        = "clientes"
	ResCliente         = "cliente"
	ResClienteTelefone = "cliente-telefone"
	ResChamados        = "chamados"
	ResChamado         = "chamado"
	ResChamadoItens    = "chamado-itens"
	ResClienteChamados = "cliente-chamados"
	ResChamadosDay     = "chamados-day"
	ResCaixa           = "caixa"
	ResCaixaDetail     = "caixa-detail"
	ResCaixaSum        = "caixa-sum"
	ResUsers           = "users"
	ResStatistics      = "statistics"
)

func pageParams(page, perPage int) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	return params
}

func KeyListClientes(page, perPage int, filter models.ListClientesFilter) cache.Key {
	params := pageParams(page, perPage)
	if filter.Search != "" {
		params.Set("search", filter.Search)
	}
	if filter.Nome != "" {
		params.Set("nome", filter.Nome)
	}
	if filter.Telefone != "" {
		params.Set("telefone", filter.Telefone)
	}
	return cache.NewKey(ResClientes, params)
}

func KeyCliente(id int) cache.Key {
	params := url.Values{}
	params.Set("id", strconv.Itoa(id))
	return cache.NewKey(ResCliente, params)
}

func KeyClienteTelefone(telefone string) cache.Key {
	params := url.Values{}
	params.Set("telefone", telefone)
	return cache.NewKey(ResClienteTelefone, params)
}

func KeyListChamados(page, perPage int, filter models.ListChamadosFilter) cache.Key {
	params := pageParams(page, perPage)
	if filter.Status != "" {
		params.Set("status", string(filter.Status))
	}
	if filter.ClienteID > 0 {
		params.Set("id_cliente", strconv.Itoa(filter.ClienteID))
	}
	if filter.UsuarioID > 0 {
		params.Set("id_usuario", strconv.Itoa(filter.UsuarioID))
	}
	return cache.NewKey(ResChamados, params)
}

func KeyChamado(id int) cache.Key {
	params := url.Values{}
	params.Set("id", strconv.Itoa(id))
	return cache.NewKey(ResChamado, params)
}

func KeyChamadoItens(chamadoID int) cache.Key {
	params := url.Values{}
	params.Set("id_chamado", strconv.Itoa(chamadoID))
	return cache.NewKey(ResChamadoItens, params)
}

func KeyClienteChamados(clienteID, page, perPage int) cache.Key {
	params := pageParams(page, perPage)
	params.Set("id_cliente", strconv.Itoa(clienteID))
	return cache.NewKey(ResClienteChamados, params)
}

func KeyChamadosDay(date string) cache.Key {
	params := url.Values{}
	params.Set("date", date)
	return cache.NewKey(ResChamadosDay, params)
}

func KeyListCaixa(page, perPage int, filter models.ListCaixaFilter) cache.Key {
	params := pageParams(page, perPage)
	if filter.Mes > 0 {
		params.Set("mes", strconv.Itoa(filter.Mes))
	}
	if filter.Ano > 0 {
		params.Set("ano", strconv.Itoa(filter.Ano))
	}
	if filter.Tipo != "" {
		params.Set("tipo", string(filter.Tipo))
	}
	return cache.NewKey(ResCaixa, params)
}

func KeyCaixa(id int) cache.Key {
	params := url.Values{}
	params.Set("id", strconv.Itoa(id))
	return cache.NewKey(ResCaixaDetail, params)
}

func KeyCaixaSum(mes, ano int) cache.Key {
	params := url.Values{}
	if mes > 0 {
		params.Set("mes", strconv.Itoa(mes))
	}
	if ano > 0 {
		params.Set("ano", strconv.Itoa(ano))
	}
	return cache.NewKey(ResCaixaSum, params)
}

func KeyUsers() cache.Key {
	return cache.NewKey(ResUsers, nil)
}

func KeyStatistics() cache.Key {
	return cache.NewKey(ResStatistics, nil)
}
