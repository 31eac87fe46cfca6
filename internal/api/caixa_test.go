package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"oficina-desk/internal/models"
)

func TestCaixaListSendsOnlySetFilters(t *testing.T) {
	var got url.Values
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		json.NewEncoder(w).Encode(models.Paginated[models.Caixa]{})
	})

	filter := models.ListCaixaFilter{Mes: 8, Ano: 2026}
	if _, err := NewCaixa(c).List(context.Background(), 1, 10, filter); err != nil {
		t.Fatalf("List: %v", err)
	}
	if got.Get("mes") != "8" || got.Get("ano") != "2026" {
		t.Errorf("query = %v", got)
	}
	if got.Has("tipo") {
		t.Errorf("empty tipo was sent: %v", got)
	}
}

func TestCaixaSum(t *testing.T) {
	var gotPath string
	var got url.Values
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		got = r.URL.Query()
		w.Write([]byte(`{"total_entrada": 1500.5, "total_saida": 300, "saldo": 1200.5}`))
	})

	sum, err := NewCaixa(c).Sum(context.Background(), 8, 2026)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if gotPath != "/api/caixa/sum" {
		t.Errorf("path = %q", gotPath)
	}
	if got.Get("mes") != "8" || got.Get("ano") != "2026" {
		t.Errorf("query = %v", got)
	}
	if sum.TotalEntrada != 1500.5 || sum.TotalSaida != 300 || sum.Saldo != 1200.5 {
		t.Errorf("sum = %+v", sum)
	}
}

func TestCaixaUpdateSendsOnlyChangedFields(t *testing.T) {
	var body map[string]any
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(models.Caixa{ID: 5, Fechado: true})
	})

	fechado := true
	entry, err := NewCaixa(c).Update(context.Background(), 5, models.UpdateCaixaRequest{Fechado: &fechado})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(body) != 1 || body["fechado"] != true {
		t.Errorf("body = %v, want only fechado", body)
	}
	if !entry.Fechado {
		t.Errorf("entry = %+v", entry)
	}
}
