package ui

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"oficina-desk/internal/api"
	"oficina-desk/internal/httpclient"

	"github.com/gorilla/mux"
)

const defaultPerPage = 10

func pathInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(mux.Vars(r)[name])
	return n
}

func queryInt(r *http.Request, name, fallback string) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		v = fallback
	}
	n, _ := strconv.Atoi(v)
	return n
}

func formInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.FormValue(name))
	return n
}

func formFloat(r *http.Request, name string) float64 {
	f, _ := strconv.ParseFloat(r.FormValue(name), 64)
	return f
}

// optStr returns a pointer for non-empty form values, so untouched fields
// stay out of update payloads.
func optStr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// formErrors maps a mutation failure onto the originating form: known
// server detail messages become field-level errors, anything else falls
// back to a generic page message.
func formErrors(err error) (fieldErrs map[string]string, pageErr string) {
	if errors.Is(err, api.ErrTelefoneInvalido) {
		return map[string]string{"telefone": err.Error()}, ""
	}
	detail := httpclient.ErrorDetail(err)
	switch httpclient.ErrorKind(err) {
	case httpclient.KindValidation:
		lower := strings.ToLower(detail)
		if strings.Contains(lower, "telefone") {
			// "Cliente com telefone '…' já existe" and
			// "Telefone '…' já está em uso por outro cliente"
			return map[string]string{"telefone": detail}, ""
		}
		if detail != "" {
			return nil, detail
		}
		return nil, "Dados inválidos. Verifique os campos."
	case httpclient.KindAuth:
		return nil, "Sessão expirada. Entre novamente."
	case httpclient.KindNotFound:
		if detail != "" {
			return nil, detail
		}
		return nil, "Registro não encontrado."
	default:
		return nil, "Falha ao comunicar com o servidor. Tente novamente."
	}
}

// mutationError reports a failed redirect-style mutation on the page the
// redirect lands on, flagged by the erro query parameter.
func mutationError(r *http.Request) string {
	if r.URL.Query().Get("erro") != "" {
		return "A operação falhou. Tente novamente."
	}
	return ""
}

// loadError is the page-level message for a failed query.
func loadError(err error) string {
	_, msg := formErrors(err)
	return msg
}
