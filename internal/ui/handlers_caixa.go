package ui

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"oficina-desk/internal/models"
	"oficina-desk/internal/queries"
)

type caixaListData struct {
	Entries *models.Paginated[models.Caixa]
	Sum     *models.CaixaSum
}

func (s *Server) caixaList(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	mes := queryInt(r, "mes", strconv.Itoa(int(now.Month())))
	ano := queryInt(r, "ano", strconv.Itoa(now.Year()))
	tipo := models.CaixaTipo(r.URL.Query().Get("tipo"))
	page := queryInt(r, "page", "1")
	filter := models.ListCaixaFilter{Mes: mes, Ano: ano, Tipo: tipo}

	v := view{
		Title: "Caixa",
		Error: mutationError(r),
		Form: map[string]string{
			"mes": strconv.Itoa(mes), "ano": strconv.Itoa(ano), "tipo": string(tipo),
		},
	}

	entries, err := s.q.ListCaixa(r.Context(), page, defaultPerPage, filter)
	if err != nil {
		v.Error = loadError(err)
		v.Data = caixaListData{
			Entries: &models.Paginated[models.Caixa]{Page: 1, TotalPages: 1},
			Sum:     &models.CaixaSum{},
		}
		s.render(w, "caixa", v)
		return
	}
	sum, err := s.q.CaixaSum(r.Context(), mes, ano)
	if err != nil {
		sum = &models.CaixaSum{}
	}

	v.Data = caixaListData{Entries: entries, Sum: sum}
	v.WatchKeys = watch(
		queries.KeyListCaixa(page, defaultPerPage, filter),
		queries.KeyCaixaSum(mes, ano),
	)
	s.render(w, "caixa", v)
}

func (s *Server) caixaForm(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	s.render(w, "caixa_form", view{
		Title: "Novo lançamento",
		Form: map[string]string{
			"tipo": "entrada",
			"mes":  strconv.Itoa(int(now.Month())),
			"ano":  strconv.Itoa(now.Year()),
		},
	})
}

func (s *Server) caixaCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	req := models.CreateCaixaRequest{
		Descricao: r.FormValue("descricao"),
		Valor:     formFloat(r, "valor"),
		Tipo:      models.CaixaTipo(r.FormValue("tipo")),
		Mes:       formInt(r, "mes"),
		Ano:       formInt(r, "ano"),
	}

	if _, err := s.q.CreateCaixa(r.Context(), req); err != nil {
		fieldErrs, pageErr := formErrors(err)
		s.render(w, "caixa_form", view{
			Title:       "Novo lançamento",
			Error:       pageErr,
			FieldErrors: fieldErrs,
			Form: map[string]string{
				"descricao": req.Descricao, "valor": r.FormValue("valor"),
				"tipo": string(req.Tipo), "mes": r.FormValue("mes"), "ano": r.FormValue("ano"),
			},
		})
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/caixa?mes=%d&ano=%d", req.Mes, req.Ano), http.StatusSeeOther)
}

func (s *Server) caixaEditForm(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r, "id")
	caixa, err := s.q.GetCaixa(r.Context(), id)
	if err != nil {
		s.render(w, "caixa_form", view{Title: "Editar lançamento", Error: loadError(err)})
		return
	}
	if caixa.Fechado {
		// Server rejects edits to a closed month; do not offer the form.
		http.Redirect(w, r, fmt.Sprintf("/caixa?mes=%d&ano=%d", caixa.Mes, caixa.Ano), http.StatusSeeOther)
		return
	}
	s.render(w, "caixa_form", view{
		Title: "Editar lançamento",
		Form: map[string]string{
			"descricao": caixa.Descricao,
			"valor":     strconv.FormatFloat(caixa.Valor, 'f', 2, 64),
			"tipo":      string(caixa.Tipo),
			"mes":       strconv.Itoa(caixa.Mes),
			"ano":       strconv.Itoa(caixa.Ano),
		},
	})
}

func (s *Server) caixaUpdate(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	valor := formFloat(r, "valor")
	tipo := models.CaixaTipo(r.FormValue("tipo"))
	req := models.UpdateCaixaRequest{
		Descricao: optStr(r.FormValue("descricao")),
		Valor:     &valor,
		Tipo:      &tipo,
	}

	if _, err := s.q.UpdateCaixa(r.Context(), id, req); err != nil {
		fieldErrs, pageErr := formErrors(err)
		s.render(w, "caixa_form", view{
			Title:       "Editar lançamento",
			Error:       pageErr,
			FieldErrors: fieldErrs,
			Form: map[string]string{
				"descricao": r.FormValue("descricao"), "valor": r.FormValue("valor"),
				"tipo": r.FormValue("tipo"), "mes": r.FormValue("mes"), "ano": r.FormValue("ano"),
			},
		})
		return
	}
	http.Redirect(w, r, "/caixa", http.StatusSeeOther)
}

func (s *Server) caixaDelete(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r, "id")
	if err := s.q.DeleteCaixa(r.Context(), id); err != nil {
		http.Redirect(w, r, "/caixa?erro=1", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/caixa", http.StatusSeeOther)
}

// caixaClose marks one entry's month as closed. The server locks the
// records; this only flips the flag.
func (s *Server) caixaClose(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r, "id")
	fechado := true
	if _, err := s.q.UpdateCaixa(r.Context(), id, models.UpdateCaixaRequest{Fechado: &fechado}); err != nil {
		http.Redirect(w, r, "/caixa?erro=1", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/caixa", http.StatusSeeOther)
}
