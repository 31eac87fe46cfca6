package ui

import (
	"fmt"
	"net/http"

	"oficina-desk/internal/models"
	"oficina-desk/internal/queries"
)

func (s *Server) clientesList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", "1")
	search := r.URL.Query().Get("search")
	filter := models.ListClientesFilter{Search: search}

	result, err := s.q.ListClientes(r.Context(), page, defaultPerPage, filter)
	v := view{
		Title: "Clientes",
		Form:  map[string]string{"search": search},
	}
	if err != nil {
		v.Error = loadError(err)
		v.Data = &models.Paginated[models.Cliente]{Page: 1, TotalPages: 1}
	} else {
		v.Data = result
		v.WatchKeys = watch(queries.KeyListClientes(page, defaultPerPage, filter))
	}
	s.render(w, "clientes", v)
}

func (s *Server) clienteByTelefone(w http.ResponseWriter, r *http.Request) {
	telefone := r.URL.Query().Get("telefone")
	cliente, err := s.q.GetClienteByTelefone(r.Context(), telefone)
	if err != nil {
		s.render(w, "clientes", view{
			Title: "Clientes",
			Error: loadError(err),
			Data:  &models.Paginated[models.Cliente]{Page: 1, TotalPages: 1},
		})
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/clientes/%d", cliente.ID), http.StatusSeeOther)
}

func (s *Server) clienteDetail(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r, "id")
	page := queryInt(r, "page", "1")

	cliente, err := s.q.GetCliente(r.Context(), id)
	if err != nil {
		s.render(w, "clientes", view{Title: "Clientes", Error: loadError(err),
			Data: &models.Paginated[models.Cliente]{Page: 1, TotalPages: 1}})
		return
	}
	chamados, err := s.q.ListClienteChamados(r.Context(), id, page, defaultPerPage)
	if err != nil {
		chamados = &models.Paginated[models.Chamado]{Page: 1, TotalPages: 1}
	}

	s.render(w, "cliente_detail", view{
		Title: cliente.Nome,
		Data: struct {
			Cliente  *models.Cliente
			Chamados *models.Paginated[models.Chamado]
		}{cliente, chamados},
		WatchKeys: watch(
			queries.KeyCliente(id),
			queries.KeyClienteChamados(id, page, defaultPerPage),
		),
	})
}

func (s *Server) clienteForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "cliente_form", view{Title: "Novo cliente"})
}

func (s *Server) clienteCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	req := models.CreateClienteRequest{
		Nome:     r.FormValue("nome"),
		Telefone: r.FormValue("telefone"),
		Endereco: r.FormValue("endereco"),
	}

	cliente, err := s.q.CreateCliente(r.Context(), req)
	if err != nil {
		fieldErrs, pageErr := formErrors(err)
		s.render(w, "cliente_form", view{
			Title:       "Novo cliente",
			Error:       pageErr,
			FieldErrors: fieldErrs,
			Form: map[string]string{
				"nome": req.Nome, "telefone": req.Telefone, "endereco": req.Endereco,
			},
		})
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/clientes/%d", cliente.ID), http.StatusSeeOther)
}

func (s *Server) clienteEditForm(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r, "id")
	cliente, err := s.q.GetCliente(r.Context(), id)
	if err != nil {
		s.render(w, "cliente_form", view{Title: "Editar cliente", Error: loadError(err)})
		return
	}
	s.render(w, "cliente_form", view{
		Title: "Editar cliente",
		Form: map[string]string{
			"nome": cliente.Nome, "telefone": cliente.Telefone, "endereco": cliente.Endereco,
		},
	})
}

func (s *Server) clienteUpdate(w http.ResponseWriter, r *http.Request) {
	id := pathInt(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	req := models.UpdateClienteRequest{
		Nome:     optStr(r.FormValue("nome")),
		Telefone: optStr(r.FormValue("telefone")),
		Endereco: optStr(r.FormValue("endereco")),
	}

	if _, err := s.q.UpdateCliente(r.Context(), id, req); err != nil {
		fieldErrs, pageErr := formErrors(err)
		s.render(w, "cliente_form", view{
			Title:       "Editar cliente",
			Error:       pageErr,
			FieldErrors: fieldErrs,
			Form: map[string]string{
				"nome": r.FormValue("nome"), "telefone": r.FormValue("telefone"), "endereco": r.FormValue("endereco"),
			},
		})
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/clientes/%d", id), http.StatusSeeOther)
}
