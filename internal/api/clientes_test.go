package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"oficina-desk/internal/httpclient"
	"oficina-desk/internal/models"
)

func newBackend(t *testing.T, handler http.HandlerFunc) *httpclient.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return httpclient.New(srv.URL, "", 2*time.Second, nil)
}

func TestValidTelefone(t *testing.T) {
	tests := []struct {
		telefone string
		want     bool
	}{
		{"11999990000", true},
		{"12345678", true},
		{"12345678901234567890", true},
		{"1234567", false},
		{"123456789012345678901", false},
		{"11 99999-0000", false},
		{"telefone", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := validTelefone(tt.telefone); got != tt.want {
			t.Errorf("validTelefone(%q) = %v, want %v", tt.telefone, got, tt.want)
		}
	}
}

func TestCreateRejectsBadTelefoneLocally(t *testing.T) {
	called := false
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := NewClientes(c).Create(context.Background(), models.CreateClienteRequest{
		Nome: "Maria", Telefone: "123",
	})
	if !errors.Is(err, ErrTelefoneInvalido) {
		t.Fatalf("err = %v, want ErrTelefoneInvalido", err)
	}
	if called {
		t.Error("malformed phone reached the network")
	}
}

func TestListSendsFilterParams(t *testing.T) {
	var got url.Values
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		json.NewEncoder(w).Encode(models.Paginated[models.Cliente]{Page: 2, PerPage: 25})
	})

	page, err := NewClientes(c).List(context.Background(), 2, 25, models.ListClientesFilter{Search: "maria"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got.Get("page") != "2" || got.Get("per_page") != "25" || got.Get("search") != "maria" {
		t.Errorf("query = %v", got)
	}
	if got.Has("nome") || got.Has("telefone") {
		t.Errorf("empty filters were sent: %v", got)
	}
	if page.Page != 2 || page.PerPage != 25 {
		t.Errorf("envelope = %+v", page)
	}
}

func TestListDecodesPageEnvelope(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"items": [{"id_cliente": 4, "nome": "João", "telefone": "11988880000", "endereco": "Rua A, 10"}],
			"total": 31, "page": 1, "per_page": 10, "total_pages": 4
		}`))
	})

	page, err := NewClientes(c).List(context.Background(), 1, 10, models.ListClientesFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 31 || page.TotalPages != 4 || len(page.Items) != 1 {
		t.Fatalf("envelope = %+v", page)
	}
	if page.Items[0].ID != 4 || page.Items[0].Nome != "João" {
		t.Errorf("item = %+v", page.Items[0])
	}
}

func TestCreateSurfacesDuplicateDetail(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Cliente com telefone '11999990000' já existe"}`))
	})

	_, err := NewClientes(c).Create(context.Background(), models.CreateClienteRequest{
		Nome: "Maria", Telefone: "11999990000",
	})
	if httpclient.ErrorKind(err) != httpclient.KindValidation {
		t.Fatalf("ErrorKind = %v, want KindValidation", httpclient.ErrorKind(err))
	}
	if httpclient.ErrorDetail(err) != "Cliente com telefone '11999990000' já existe" {
		t.Errorf("ErrorDetail = %q", httpclient.ErrorDetail(err))
	}
}

func TestGetByTelefoneEscapesPath(t *testing.T) {
	var gotPath string
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(models.Cliente{ID: 2, Telefone: "11999990000"})
	})

	cliente, err := NewClientes(c).GetByTelefone(context.Background(), "11999990000")
	if err != nil {
		t.Fatalf("GetByTelefone: %v", err)
	}
	if gotPath != "/api/clientes/telefone/11999990000" {
		t.Errorf("path = %q", gotPath)
	}
	if cliente.ID != 2 {
		t.Errorf("cliente = %+v", cliente)
	}
}
