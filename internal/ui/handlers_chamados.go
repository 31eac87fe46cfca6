package ui

import (
	"fmt"
	"net/http"
	"time"

	"oficina-desk/internal/models"
	"oficina-desk/internal/queries"
	"oficina-desk/internal/report"
)

func (s *Server) chamadosList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", "1")
	status := models.ChamadoStatus(r.URL.Query().Get("status"))
	filter := models.ListChamadosFilter{
		Status:    status,
		ClienteID: queryInt(r, "id_cliente", "0"),
		UsuarioID: queryInt(r, "id_usuario", "0"),
	}

	result, err := s.q.ListChamados(r.Context(), page, defaultPerPage, filter)
	v := view{
		Title:    "Chamados",
		Form:     map[string]string{"status": string(status)},
		Statuses: models.AllStatuses,
	}
	if err != nil {
		v.Error = loadError(err)
		v.Data = &models.Paginated[models.Chamado]{Page: 1, TotalPages: 1}
	} else {
		v.Data = result
		v.WatchKeys = watch(queries.KeyListChamados(page, defaultPerPage, filter))
	}
	s.render(w, "chamados", v)
}

type chamadoDetailData struct {
	Chamado  *models.Chamado
	Itens    []models.ItemChamado
	Usuarios []models.Usuario
	Total    float64
}

func (s *Server) chamadoDetail(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r, "id")

	chamado, err := s.q.GetChamado(r.Context(), id)
	if err != nil {
		s.render(w, "chamados", view{Title: "Chamados", Error: loadError(err),
			Statuses: models.AllStatuses,
			Data:     &models.Paginated[models.Chamado]{Page: 1, TotalPages: 1}})
		return
	}
	itens, err := s.q.ListChamadoItens(r.Context(), id)
	if err != nil {
		itens = nil
	}
	// Technician dropdown; an empty list just hides assignment.
	usuarios, _ := s.q.ListUsuarios(r.Context())

	var total float64
	for _, item := range itens {
		total += item.ValorTotal()
	}

	s.render(w, "chamado_detail", view{
		Title:    fmt.Sprintf("Chamado #%d", id),
		Error:    mutationError(r),
		Statuses: models.AllStatuses,
		Data:     chamadoDetailData{Chamado: chamado, Itens: itens, Usuarios: usuarios, Total: total},
		WatchKeys: watch(
			queries.KeyChamado(id),
			queries.KeyChamadoItens(id),
		),
	})
}

func (s *Server) chamadoForm(w http.ResponseWriter, r *http.Request) {
	usuarios, _ := s.q.ListUsuarios(r.Context())
	s.render(w, "chamado_form", view{
		Title: "Novo chamado",
		Form:  map[string]string{"id_cliente": r.URL.Query().Get("id_cliente")},
		Data:  struct{ Usuarios []models.Usuario }{usuarios},
	})
}

func (s *Server) chamadoCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	req := models.CreateChamadoRequest{
		ClienteID:    formInt(r, "id_cliente"),
		Descricao:    r.FormValue("descricao"),
		Aparelho:     r.FormValue("aparelho"),
		Status:       models.StatusAberto,
		Valor:        formFloat(r, "valor"),
		Observacao:   r.FormValue("observacao"),
		DataPrevista: r.FormValue("data_prevista"),
	}
	if usuarioID := formInt(r, "id_usuario"); usuarioID > 0 {
		req.UsuarioID = &usuarioID
	}

	chamado, err := s.q.CreateChamado(r.Context(), req)
	if err != nil {
		fieldErrs, pageErr := formErrors(err)
		usuarios, _ := s.q.ListUsuarios(r.Context())
		s.render(w, "chamado_form", view{
			Title:       "Novo chamado",
			Error:       pageErr,
			FieldErrors: fieldErrs,
			Form: map[string]string{
				"id_cliente": r.FormValue("id_cliente"), "aparelho": req.Aparelho,
				"descricao": req.Descricao, "observacao": req.Observacao,
				"valor": r.FormValue("valor"), "data_prevista": req.DataPrevista,
			},
			Data: struct{ Usuarios []models.Usuario }{usuarios},
		})
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/chamados/%d", chamado.ID), http.StatusSeeOther)
}

func (s *Server) chamadoUpdate(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	status := models.ChamadoStatus(r.FormValue("status"))
	req := models.UpdateChamadoRequest{
		Status:       &status,
		Aparelho:     optStr(r.FormValue("aparelho")),
		Descricao:    optStr(r.FormValue("descricao")),
		Observacao:   optStr(r.FormValue("observacao")),
		DataPrevista: optStr(r.FormValue("data_prevista")),
	}
	if v := r.FormValue("valor"); v != "" {
		valor := formFloat(r, "valor")
		req.Valor = &valor
	}
	if usuarioID := formInt(r, "id_usuario"); usuarioID > 0 {
		req.UsuarioID = &usuarioID
	}

	if _, err := s.q.UpdateChamado(r.Context(), id, req); err != nil {
		http.Redirect(w, r, fmt.Sprintf("/chamados/%d?erro=1", id), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/chamados/%d", id), http.StatusSeeOther)
}

func (s *Server) itemAdd(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	req := models.CreateItemRequest{
		Descricao:     r.FormValue("descricao"),
		Quantidade:    formInt(r, "quantidade"),
		ValorUnitario: formFloat(r, "valor_unitario"),
	}
	if req.Quantidade < 1 {
		req.Quantidade = 1
	}

	if _, err := s.q.AddChamadoItem(r.Context(), id, req); err != nil {
		http.Redirect(w, r, fmt.Sprintf("/chamados/%d?erro=1", id), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/chamados/%d", id), http.StatusSeeOther)
}

func (s *Server) itemUpdate(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r, "id")
	itemID := pathInt(r, "itemId")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	quantidade := formInt(r, "quantidade")
	if quantidade < 1 {
		quantidade = 1
	}
	valorUnitario := formFloat(r, "valor_unitario")
	req := models.UpdateItemRequest{
		Descricao:     optStr(r.FormValue("descricao")),
		Quantidade:    &quantidade,
		ValorUnitario: &valorUnitario,
	}

	if _, err := s.q.UpdateChamadoItem(r.Context(), id, itemID, req); err != nil {
		http.Redirect(w, r, fmt.Sprintf("/chamados/%d?erro=1", id), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/chamados/%d", id), http.StatusSeeOther)
}

func (s *Server) itemDelete(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r, "id")
	itemID := pathInt(r, "itemId")

	if err := s.q.DeleteChamadoItem(r.Context(), id, itemID); err != nil {
		http.Redirect(w, r, fmt.Sprintf("/chamados/%d?erro=1", id), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/chamados/%d", id), http.StatusSeeOther)
}

func (s *Server) chamadoReceipt(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r, "id")

	chamado, err := s.q.GetChamado(r.Context(), id)
	if err != nil {
		http.Error(w, loadError(err), http.StatusBadGateway)
		return
	}
	itens, err := s.q.ListChamadoItens(r.Context(), id)
	if err != nil {
		http.Error(w, loadError(err), http.StatusBadGateway)
		return
	}

	pdf, err := report.Receipt(chamado, itens)
	if err != nil {
		http.Error(w, "falha ao gerar a OS", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=os-%d.pdf", id))
	w.Write(pdf)
}

func (s *Server) calendar(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	chamados, err := s.q.ChamadosByDay(r.Context(), date)
	v := view{
		Title: "Calendário",
		Form:  map[string]string{"date": date},
	}
	if err != nil {
		v.Error = loadError(err)
	} else {
		v.Data = chamados
		v.WatchKeys = watch(queries.KeyChamadosDay(date))
	}
	s.render(w, "calendar", v)
}
