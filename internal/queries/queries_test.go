package queries

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"oficina-desk/internal/api"
	"oficina-desk/internal/cache"
	"oficina-desk/internal/httpclient"
	"oficina-desk/internal/models"
)

// testBackend fakes the repair-shop API for the handful of endpoints the
// query layer exercises here. requests counts backend hits so tests can
// assert which accesses were served from cache.
type testBackend struct {
	srv      *httptest.Server
	requests atomic.Int32
	failPost bool
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	b := &testBackend{}
	b.srv = httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *testBackend) handle(w http.ResponseWriter, r *http.Request) {
	b.requests.Add(1)
	if b.failPost && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Cliente com telefone '11999990000' já existe"})
		return
	}

	var payload any
	switch {
	case r.URL.Path == "/api/clientes" || r.URL.Path == "/api/clientes/":
		if r.Method == http.MethodPost {
			payload = models.Cliente{ID: 10, Nome: "Maria", Telefone: "11999990000"}
		} else {
			payload = models.Paginated[models.Cliente]{
				Items: []models.Cliente{{ID: 1, Nome: "João", Telefone: "11988880000"}},
				Total: 1, Page: 1, PerPage: 10, TotalPages: 1,
			}
		}
	case r.URL.Path == "/api/chamados" || r.URL.Path == "/api/chamados/":
		payload = models.Paginated[models.Chamado]{
			Items: []models.Chamado{{ID: 1, ClienteID: 1, Status: models.StatusAberto}},
			Total: 1, Page: 1, PerPage: 10, TotalPages: 1,
		}
	case r.URL.Path == "/api/chamados/statistics":
		payload = models.ChamadoStats{TotalOpen: 1}
	case r.URL.Path == "/api/clientes/statistics":
		payload = models.ClienteStats{TotalClientes: 1}
	case r.URL.Path == "/api/chamados/1/itens":
		if r.Method == http.MethodPost {
			payload = models.ItemChamado{ID: 5, ChamadoID: 1, Descricao: "Tela", Quantidade: 1, ValorUnitario: 250}
		} else {
			payload = []models.ItemChamado{}
		}
	case r.URL.Path == "/api/chamados/1":
		payload = models.Chamado{ID: 1, ClienteID: 1, Status: models.StatusEmAndamento}
	case r.URL.Path == "/api/chamados/itens/5":
		payload = models.ItemChamado{ID: 5, ChamadoID: 1, Descricao: "Tela", Quantidade: 2, ValorUnitario: 250}
	case r.URL.Path == "/users":
		payload = struct {
			Users []models.Usuario `json:"users"`
		}{[]models.Usuario{{Username: "ana", Role: models.RoleFuncionario}}}
	case strings.HasPrefix(r.URL.Path, "/users/"):
		payload = models.Usuario{Username: "ana", Role: models.RoleFuncionario}
	default:
		http.NotFound(w, r)
		return
	}
	json.NewEncoder(w).Encode(payload)
}

func newTestQueries(t *testing.T, b *testBackend) *Queries {
	t.Helper()
	client := httpclient.New(b.srv.URL, "", 2*time.Second, nil)
	store := cache.New(5*time.Minute, 15*time.Minute)
	store.Stop()

	clientes := api.NewClientes(client)
	chamados := api.NewChamados(client)
	return New(store,
		clientes,
		chamados,
		api.NewItens(client),
		api.NewCaixa(client),
		api.NewUsuarios(client),
		api.NewStatistics(chamados, clientes),
	)
}

func mustStale(t *testing.T, q *Queries, key cache.Key) {
	t.Helper()
	snap, ok := q.Store().Peek(key)
	if !ok {
		t.Fatalf("no entry for %s", key)
	}
	if !snap.Stale {
		t.Errorf("%s not marked stale", key)
	}
}

func mustFresh(t *testing.T, q *Queries, key cache.Key) {
	t.Helper()
	snap, ok := q.Store().Peek(key)
	if !ok {
		t.Fatalf("no entry for %s", key)
	}
	if snap.Stale {
		t.Errorf("%s marked stale, want untouched", key)
	}
}

func TestRepeatedReadServedFromCache(t *testing.T) {
	b := newTestBackend(t)
	q := newTestQueries(t, b)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		page, err := q.ListClientes(ctx, 1, 10, models.ListClientesFilter{})
		if err != nil {
			t.Fatalf("ListClientes: %v", err)
		}
		if len(page.Items) != 1 || page.Items[0].Nome != "João" {
			t.Fatalf("unexpected page %+v", page)
		}
	}
	if n := b.requests.Load(); n != 1 {
		t.Errorf("backend hit %d times, want 1", n)
	}
}

func TestDistinctFiltersGetDistinctEntries(t *testing.T) {
	b := newTestBackend(t)
	q := newTestQueries(t, b)
	ctx := context.Background()

	if _, err := q.ListClientes(ctx, 1, 10, models.ListClientesFilter{}); err != nil {
		t.Fatalf("ListClientes: %v", err)
	}
	if _, err := q.ListClientes(ctx, 2, 10, models.ListClientesFilter{}); err != nil {
		t.Fatalf("ListClientes page 2: %v", err)
	}
	if _, err := q.ListClientes(ctx, 1, 10, models.ListClientesFilter{Search: "maria"}); err != nil {
		t.Fatalf("ListClientes search: %v", err)
	}
	if n := b.requests.Load(); n != 3 {
		t.Errorf("backend hit %d times, want 3 (one per key)", n)
	}
}

func TestUpdateChamadoInvalidatesDependentKeys(t *testing.T) {
	b := newTestBackend(t)
	q := newTestQueries(t, b)
	ctx := context.Background()

	if _, err := q.GetChamado(ctx, 1); err != nil {
		t.Fatalf("GetChamado: %v", err)
	}
	if _, err := q.ListChamados(ctx, 1, 10, models.ListChamadosFilter{}); err != nil {
		t.Fatalf("ListChamados: %v", err)
	}
	if _, err := q.ListClientes(ctx, 1, 10, models.ListClientesFilter{}); err != nil {
		t.Fatalf("ListClientes: %v", err)
	}

	status := models.StatusConcluido
	if _, err := q.UpdateChamado(ctx, 1, models.UpdateChamadoRequest{Status: &status}); err != nil {
		t.Fatalf("UpdateChamado: %v", err)
	}

	mustStale(t, q, KeyChamado(1))
	mustStale(t, q, KeyListChamados(1, 10, models.ListChamadosFilter{}))
	// Customer data is untouched by a ticket update.
	mustFresh(t, q, KeyListClientes(1, 10, models.ListClientesFilter{}))
}

func TestCreateClienteInvalidatesListsAndStatistics(t *testing.T) {
	b := newTestBackend(t)
	q := newTestQueries(t, b)
	ctx := context.Background()

	if _, err := q.ListClientes(ctx, 1, 10, models.ListClientesFilter{}); err != nil {
		t.Fatalf("ListClientes: %v", err)
	}
	if _, err := q.ListClientes(ctx, 2, 10, models.ListClientesFilter{}); err != nil {
		t.Fatalf("ListClientes page 2: %v", err)
	}
	if _, err := q.Statistics(ctx); err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if _, err := q.ListChamados(ctx, 1, 10, models.ListChamadosFilter{}); err != nil {
		t.Fatalf("ListChamados: %v", err)
	}

	req := models.CreateClienteRequest{Nome: "Maria", Telefone: "11999990000"}
	if _, err := q.CreateCliente(ctx, req); err != nil {
		t.Fatalf("CreateCliente: %v", err)
	}

	// Every page of the customer list goes stale, whatever its params.
	mustStale(t, q, KeyListClientes(1, 10, models.ListClientesFilter{}))
	mustStale(t, q, KeyListClientes(2, 10, models.ListClientesFilter{}))
	mustStale(t, q, KeyStatistics())
	mustFresh(t, q, KeyListChamados(1, 10, models.ListChamadosFilter{}))
}

func TestFailedMutationInvalidatesNothing(t *testing.T) {
	b := newTestBackend(t)
	q := newTestQueries(t, b)
	ctx := context.Background()

	if _, err := q.ListClientes(ctx, 1, 10, models.ListClientesFilter{}); err != nil {
		t.Fatalf("ListClientes: %v", err)
	}

	b.failPost = true
	req := models.CreateClienteRequest{Nome: "Maria", Telefone: "11999990000"}
	if _, err := q.CreateCliente(ctx, req); err == nil {
		t.Fatal("CreateCliente succeeded, want rejection")
	}

	mustFresh(t, q, KeyListClientes(1, 10, models.ListClientesFilter{}))
}

func TestItemMutationInvalidatesTicketAndItems(t *testing.T) {
	b := newTestBackend(t)
	q := newTestQueries(t, b)
	ctx := context.Background()

	if _, err := q.GetChamado(ctx, 1); err != nil {
		t.Fatalf("GetChamado: %v", err)
	}
	if _, err := q.ListChamadoItens(ctx, 1); err != nil {
		t.Fatalf("ListChamadoItens: %v", err)
	}

	req := models.CreateItemRequest{Descricao: "Tela", Quantidade: 1, ValorUnitario: 250}
	if _, err := q.AddChamadoItem(ctx, 1, req); err != nil {
		t.Fatalf("AddChamadoItem: %v", err)
	}

	mustStale(t, q, KeyChamado(1))
	mustStale(t, q, KeyChamadoItens(1))
}

func TestUpdateChamadoItemInvalidatesTicketAndItems(t *testing.T) {
	b := newTestBackend(t)
	q := newTestQueries(t, b)
	ctx := context.Background()

	if _, err := q.GetChamado(ctx, 1); err != nil {
		t.Fatalf("GetChamado: %v", err)
	}
	if _, err := q.ListChamadoItens(ctx, 1); err != nil {
		t.Fatalf("ListChamadoItens: %v", err)
	}
	if _, err := q.ListChamados(ctx, 1, 10, models.ListChamadosFilter{}); err != nil {
		t.Fatalf("ListChamados: %v", err)
	}

	quantidade := 2
	req := models.UpdateItemRequest{Quantidade: &quantidade}
	if _, err := q.UpdateChamadoItem(ctx, 1, 5, req); err != nil {
		t.Fatalf("UpdateChamadoItem: %v", err)
	}

	mustStale(t, q, KeyChamado(1))
	mustStale(t, q, KeyChamadoItens(1))
	// A line-item edit does not touch the ticket lists.
	mustFresh(t, q, KeyListChamados(1, 10, models.ListChamadosFilter{}))
}

func TestDeleteChamadoItemInvalidatesTicketAndItems(t *testing.T) {
	b := newTestBackend(t)
	q := newTestQueries(t, b)
	ctx := context.Background()

	if _, err := q.GetChamado(ctx, 1); err != nil {
		t.Fatalf("GetChamado: %v", err)
	}
	if _, err := q.ListChamadoItens(ctx, 1); err != nil {
		t.Fatalf("ListChamadoItens: %v", err)
	}

	if err := q.DeleteChamadoItem(ctx, 1, 5); err != nil {
		t.Fatalf("DeleteChamadoItem: %v", err)
	}

	mustStale(t, q, KeyChamado(1))
	mustStale(t, q, KeyChamadoItens(1))
}

func TestUpdateUsuarioInvalidatesUserList(t *testing.T) {
	b := newTestBackend(t)
	q := newTestQueries(t, b)
	ctx := context.Background()

	if _, err := q.ListUsuarios(ctx); err != nil {
		t.Fatalf("ListUsuarios: %v", err)
	}
	if _, err := q.ListClientes(ctx, 1, 10, models.ListClientesFilter{}); err != nil {
		t.Fatalf("ListClientes: %v", err)
	}

	nome := "Ana Silva"
	req := models.UpdateUsuarioRequest{Nome: &nome}
	if _, err := q.UpdateUsuario(ctx, models.RoleAdministrador, "ana", req); err != nil {
		t.Fatalf("UpdateUsuario: %v", err)
	}

	mustStale(t, q, KeyUsers())
	mustFresh(t, q, KeyListClientes(1, 10, models.ListClientesFilter{}))
}

func TestKeyConstructorsAreCanonical(t *testing.T) {
	// Filter order and zero values must not produce distinct keys for the
	// same logical query.
	a := KeyListChamados(1, 10, models.ListChamadosFilter{Status: models.StatusAberto, ClienteID: 3})
	b := KeyListChamados(1, 10, models.ListChamadosFilter{ClienteID: 3, Status: models.StatusAberto})
	if a != b {
		t.Errorf("equivalent filters produced %s and %s", a, b)
	}

	c := KeyListCaixa(1, 10, models.ListCaixaFilter{Mes: 8, Ano: 2026})
	d := KeyListCaixa(1, 10, models.ListCaixaFilter{Mes: 8, Ano: 2026, Tipo: ""})
	if c != d {
		t.Errorf("zero-valued tipo changed the key: %s vs %s", c, d)
	}

	if KeyCaixa(3).Resource == KeyListCaixa(1, 10, models.ListCaixaFilter{}).Resource {
		t.Error("caixa detail and list share a resource tag")
	}
}
