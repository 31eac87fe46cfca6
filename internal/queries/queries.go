package queries

import (
	"context"

	"oficina-desk/internal/api"
	"oficina-desk/internal/cache"
	"oficina-desk/internal/models"
)

// Queries is the one object the views talk to for data. Reads go through
// the cache; mutations call the API directly and invalidate on success.
type Queries struct {
	store    *cache.Store
	clientes *api.Clientes
	chamados *api.Chamados
	itens    *api.Itens
	caixa    *api.Caixa
	usuarios *api.Usuarios
	stats    *api.Statistics
}

func New(store *cache.Store, clientes *api.Clientes, chamados *api.Chamados, itens *api.Itens, caixa *api.Caixa, usuarios *api.Usuarios, stats *api.Statistics) *Queries {
	return &Queries{
		store:    store,
		clientes: clientes,
		chamados: chamados,
		itens:    itens,
		caixa:    caixa,
		usuarios: usuarios,
		stats:    stats,
	}
}

// Store exposes the underlying cache for subscriptions (websocket hub)
// and diagnostics.
func (q *Queries) Store() *cache.Store { return q.store }

func (q *Queries) ListClientes(ctx context.Context, page, perPage int, filter models.ListClientesFilter) (*models.Paginated[models.Cliente], error) {
	return cache.FetchAs(ctx, q.store, KeyListClientes(page, perPage, filter), func(ctx context.Context) (*models.Paginated[models.Cliente], error) {
		return q.clientes.List(ctx, page, perPage, filter)
	})
}

func (q *Queries) GetCliente(ctx context.Context, id int) (*models.Cliente, error) {
	return cache.FetchAs(ctx, q.store, KeyCliente(id), func(ctx context.Context) (*models.Cliente, error) {
		return q.clientes.Get(ctx, id)
	})
}

func (q *Queries) GetClienteByTelefone(ctx context.Context, telefone string) (*models.Cliente, error) {
	return cache.FetchAs(ctx, q.store, KeyClienteTelefone(telefone), func(ctx context.Context) (*models.Cliente, error) {
		return q.clientes.GetByTelefone(ctx, telefone)
	})
}

func (q *Queries) ListChamados(ctx context.Context, page, perPage int, filter models.ListChamadosFilter) (*models.Paginated[models.Chamado], error) {
	return cache.FetchAs(ctx, q.store, KeyListChamados(page, perPage, filter), func(ctx context.Context) (*models.Paginated[models.Chamado], error) {
		return q.chamados.List(ctx, page, perPage, filter)
	})
}

func (q *Queries) GetChamado(ctx context.Context, id int) (*models.Chamado, error) {
	return cache.FetchAs(ctx, q.store, KeyChamado(id), func(ctx context.Context) (*models.Chamado, error) {
		return q.chamados.Get(ctx, id)
	})
}

func (q *Queries) ListClienteChamados(ctx context.Context, clienteID, page, perPage int) (*models.Paginated[models.Chamado], error) {
	return cache.FetchAs(ctx, q.store, KeyClienteChamados(clienteID, page, perPage), func(ctx context.Context) (*models.Paginated[models.Chamado], error) {
		return q.chamados.ListByCliente(ctx, clienteID, page, perPage)
	})
}

func (q *Queries) ListChamadoItens(ctx context.Context, chamadoID int) ([]models.ItemChamado, error) {
	return cache.FetchAs(ctx, q.store, KeyChamadoItens(chamadoID), func(ctx context.Context) ([]models.ItemChamado, error) {
		return q.itens.List(ctx, chamadoID)
	})
}

func (q *Queries) ChamadosByDay(ctx context.Context, date string) ([]models.Chamado, error) {
	return cache.FetchAs(ctx, q.store, KeyChamadosDay(date), func(ctx context.Context) ([]models.Chamado, error) {
		return q.chamados.ByDay(ctx, date)
	})
}

func (q *Queries) ListCaixa(ctx context.Context, page, perPage int, filter models.ListCaixaFilter) (*models.Paginated[models.Caixa], error) {
	return cache.FetchAs(ctx, q.store, KeyListCaixa(page, perPage, filter), func(ctx context.Context) (*models.Paginated[models.Caixa], error) {
		return q.caixa.List(ctx, page, perPage, filter)
	})
}

func (q *Queries) GetCaixa(ctx context.Context, id int) (*models.Caixa, error) {
	return cache.FetchAs(ctx, q.store, KeyCaixa(id), func(ctx context.Context) (*models.Caixa, error) {
		return q.caixa.Get(ctx, id)
	})
}

func (q *Queries) CaixaSum(ctx context.Context, mes, ano int) (*models.CaixaSum, error) {
	return cache.FetchAs(ctx, q.store, KeyCaixaSum(mes, ano), func(ctx context.Context) (*models.CaixaSum, error) {
		return q.caixa.Sum(ctx, mes, ano)
	})
}

func (q *Queries) ListUsuarios(ctx context.Context) ([]models.Usuario, error) {
	return cache.FetchAs(ctx, q.store, KeyUsers(), func(ctx context.Context) ([]models.Usuario, error) {
		return q.usuarios.List(ctx)
	})
}

func (q *Queries) Statistics(ctx context.Context) (*models.Statistics, error) {
	return cache.FetchAs(ctx, q.store, KeyStatistics(), func(ctx context.Context) (*models.Statistics, error) {
		return q.stats.Fetch(ctx)
	})
}
