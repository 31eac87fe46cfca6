package ui

import (
	"errors"
	"net/http/httptest"
	"testing"

	"oficina-desk/internal/api"
	"oficina-desk/internal/httpclient"
)

func TestFormErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField string
		wantPage  string
	}{
		{
			name:      "malformed phone rejected locally",
			err:       api.ErrTelefoneInvalido,
			wantField: "telefone",
		},
		{
			name:      "duplicate phone on create",
			err:       &httpclient.APIError{Kind: httpclient.KindValidation, Status: 400, Detail: "Cliente com telefone '11999990000' já existe"},
			wantField: "telefone",
		},
		{
			name:      "duplicate phone on update",
			err:       &httpclient.APIError{Kind: httpclient.KindValidation, Status: 400, Detail: "Telefone '11999990000' já está em uso por outro cliente"},
			wantField: "telefone",
		},
		{
			name:     "other validation detail",
			err:      &httpclient.APIError{Kind: httpclient.KindValidation, Status: 422, Detail: "campo obrigatório"},
			wantPage: "campo obrigatório",
		},
		{
			name:     "validation without detail",
			err:      &httpclient.APIError{Kind: httpclient.KindValidation, Status: 400},
			wantPage: "Dados inválidos. Verifique os campos.",
		},
		{
			name:     "expired session",
			err:      &httpclient.APIError{Kind: httpclient.KindAuth, Status: 401},
			wantPage: "Sessão expirada. Entre novamente.",
		},
		{
			name:     "not found",
			err:      &httpclient.APIError{Kind: httpclient.KindNotFound, Status: 404, Detail: "Chamado não encontrado"},
			wantPage: "Chamado não encontrado",
		},
		{
			name:     "transport failure",
			err:      errors.New("connection refused"),
			wantPage: "Falha ao comunicar com o servidor. Tente novamente.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, page := formErrors(tt.err)
			if tt.wantField != "" {
				if fields[tt.wantField] == "" {
					t.Errorf("fields = %v, want key %q", fields, tt.wantField)
				}
				if page != "" {
					t.Errorf("page = %q, want empty", page)
				}
				return
			}
			if len(fields) != 0 {
				t.Errorf("fields = %v, want none", fields)
			}
			if page != tt.wantPage {
				t.Errorf("page = %q, want %q", page, tt.wantPage)
			}
		})
	}
}

func TestMutationError(t *testing.T) {
	if msg := mutationError(httptest.NewRequest("GET", "/chamados/1", nil)); msg != "" {
		t.Errorf("message without erro flag: %q", msg)
	}
	if msg := mutationError(httptest.NewRequest("GET", "/chamados/1?erro=1", nil)); msg == "" {
		t.Error("erro flag produced no message")
	}
}

func TestOptStr(t *testing.T) {
	if optStr("") != nil {
		t.Error("empty value produced a pointer")
	}
	if p := optStr("valor"); p == nil || *p != "valor" {
		t.Errorf("optStr = %v", p)
	}
}
