package queries

import (
	"context"

	"oficina-desk/internal/models"
)

// Mutations never patch cached data in place: on success they mark the
// dependent keys stale and the next access refetches. On failure nothing
// is touched, so a rejected create cannot leave a bogus entry in any
// cached list.

func (q *Queries) CreateCliente(ctx context.Context, req models.CreateClienteRequest) (*models.Cliente, error) {
	cliente, err := q.clientes.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	q.store.InvalidateResource(ResClientes)
	q.store.InvalidateResource(ResStatistics)
	return cliente, nil
}

func (q *Queries) UpdateCliente(ctx context.Context, id int, req models.UpdateClienteRequest) (*models.Cliente, error) {
	cliente, err := q.clientes.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	q.store.InvalidateResource(ResClientes)
	q.store.Invalidate(KeyCliente(id))
	// The previous phone number is not known here, so every phone-lookup
	// key goes stale.
	q.store.InvalidateResource(ResClienteTelefone)
	return cliente, nil
}

func (q *Queries) CreateChamado(ctx context.Context, req models.CreateChamadoRequest) (*models.Chamado, error) {
	chamado, err := q.chamados.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	q.store.InvalidateResource(ResChamados)
	q.store.InvalidateResource(ResClienteChamados)
	q.store.InvalidateResource(ResChamadosDay)
	q.store.InvalidateResource(ResStatistics)
	return chamado, nil
}

func (q *Queries) UpdateChamado(ctx context.Context, id int, req models.UpdateChamadoRequest) (*models.Chamado, error) {
	chamado, err := q.chamados.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	q.store.InvalidateResource(ResChamados)
	q.store.Invalidate(KeyChamado(id))
	q.store.InvalidateResource(ResClienteChamados)
	q.store.InvalidateResource(ResChamadosDay)
	q.store.InvalidateResource(ResStatistics)
	return chamado, nil
}

func (q *Queries) AddChamadoItem(ctx context.Context, chamadoID int, req models.CreateItemRequest) (*models.ItemChamado, error) {
	item, err := q.itens.Add(ctx, chamadoID, req)
	if err != nil {
		return nil, err
	}
	q.store.Invalidate(KeyChamadoItens(chamadoID), KeyChamado(chamadoID))
	return item, nil
}

func (q *Queries) UpdateChamadoItem(ctx context.Context, chamadoID, itemID int, req models.UpdateItemRequest) (*models.ItemChamado, error) {
	item, err := q.itens.Update(ctx, itemID, req)
	if err != nil {
		return nil, err
	}
	q.store.Invalidate(KeyChamadoItens(chamadoID), KeyChamado(chamadoID))
	return item, nil
}

func (q *Queries) DeleteChamadoItem(ctx context.Context, chamadoID, itemID int) error {
	if err := q.itens.Delete(ctx, itemID); err != nil {
		return err
	}
	q.store.Invalidate(KeyChamadoItens(chamadoID), KeyChamado(chamadoID))
	return nil
}

func (q *Queries) CreateCaixa(ctx context.Context, req models.CreateCaixaRequest) (*models.Caixa, error) {
	caixa, err := q.caixa.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	q.invalidateCaixa()
	return caixa, nil
}

func (q *Queries) UpdateCaixa(ctx context.Context, id int, req models.UpdateCaixaRequest) (*models.Caixa, error) {
	caixa, err := q.caixa.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	q.invalidateCaixa()
	q.store.Invalidate(KeyCaixa(id))
	return caixa, nil
}

func (q *Queries) DeleteCaixa(ctx context.Context, id int) error {
	if err := q.caixa.Delete(ctx, id); err != nil {
		return err
	}
	q.invalidateCaixa()
	q.store.Invalidate(KeyCaixa(id))
	return nil
}

func (q *Queries) invalidateCaixa() {
	q.store.InvalidateResource(ResCaixa)
	q.store.InvalidateResource(ResCaixaSum)
}

func (q *Queries) CreateUsuario(ctx context.Context, currentRole models.Role, req models.CreateUsuarioRequest) (*models.Usuario, error) {
	user, err := q.usuarios.Create(ctx, currentRole, req)
	if err != nil {
		return nil, err
	}
	q.store.Invalidate(KeyUsers())
	return user, nil
}

func (q *Queries) UpdateUsuario(ctx context.Context, currentRole models.Role, username string, req models.UpdateUsuarioRequest) (*models.Usuario, error) {
	user, err := q.usuarios.Update(ctx, currentRole, username, req)
	if err != nil {
		return nil, err
	}
	q.store.Invalidate(KeyUsers())
	return user, nil
}

func (q *Queries) DeleteUsuario(ctx context.Context, currentRole models.Role, username string) error {
	if err := q.usuarios.Delete(ctx, currentRole, username); err != nil {
		return err
	}
	q.store.Invalidate(KeyUsers())
	return nil
}
