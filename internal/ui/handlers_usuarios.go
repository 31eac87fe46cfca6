package ui

import (
	"net/http"

	"oficina-desk/internal/models"
	"oficina-desk/internal/queries"

	"github.com/gorilla/mux"
)

type usuariosData struct {
	Users []models.Usuario
	Roles []models.Role
}

// availableRoles mirrors the server rule: administrators create any role,
// managers only employees.
func availableRoles(current models.Role) []models.Role {
	if current == models.RoleAdministrador {
		return []models.Role{models.RoleAdministrador, models.RoleGerente, models.RoleFuncionario}
	}
	return []models.Role{models.RoleFuncionario}
}

func (s *Server) usuariosList(w http.ResponseWriter, r *http.Request) {
	id, _ := s.sess.Current()

	users, err := s.q.ListUsuarios(r.Context())
	v := view{
		Title: "Usuários",
		Error: mutationError(r),
		Data:  usuariosData{Users: users, Roles: availableRoles(id.Role)},
	}
	if err != nil {
		v.Error = loadError(err)
	} else {
		v.WatchKeys = watch(queries.KeyUsers())
	}
	s.render(w, "usuarios", v)
}

func (s *Server) usuarioEditForm(w http.ResponseWriter, r *http.Request) {
	id, _ := s.sess.Current()
	username := mux.Vars(r)["username"]

	users, err := s.q.ListUsuarios(r.Context())
	if err != nil {
		http.Redirect(w, r, "/usuarios?erro=1", http.StatusSeeOther)
		return
	}
	var user *models.Usuario
	for i := range users {
		if users[i].Username == username {
			user = &users[i]
			break
		}
	}
	if user == nil {
		http.Redirect(w, r, "/usuarios", http.StatusSeeOther)
		return
	}

	ativo := ""
	if user.Ativo {
		ativo = "on"
	}
	s.render(w, "usuario_form", view{
		Title: "Editar usuário",
		Form: map[string]string{
			"username": user.Username, "nome": user.Nome,
			"role": string(user.Role), "ativo": ativo,
		},
		Data: usuariosData{Roles: availableRoles(id.Role)},
	})
}

func (s *Server) usuarioUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := s.sess.Current()
	username := mux.Vars(r)["username"]
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	ativo := r.FormValue("ativo") == "on"
	req := models.UpdateUsuarioRequest{
		Nome:     optStr(r.FormValue("nome")),
		Password: optStr(r.FormValue("password")),
		Ativo:    &ativo,
	}
	if role := r.FormValue("role"); role != "" {
		newRole := models.Role(role)
		req.Role = &newRole
	}

	if _, err := s.q.UpdateUsuario(r.Context(), id.Role, username, req); err != nil {
		fieldErrs, pageErr := formErrors(err)
		s.render(w, "usuario_form", view{
			Title:       "Editar usuário",
			Error:       pageErr,
			FieldErrors: fieldErrs,
			Form: map[string]string{
				"username": username, "nome": r.FormValue("nome"),
				"role": r.FormValue("role"), "ativo": r.FormValue("ativo"),
			},
			Data: usuariosData{Roles: availableRoles(id.Role)},
		})
		return
	}
	http.Redirect(w, r, "/usuarios", http.StatusSeeOther)
}

func (s *Server) usuarioCreate(w http.ResponseWriter, r *http.Request) {
	id, _ := s.sess.Current()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	req := models.CreateUsuarioRequest{
		Username: r.FormValue("username"),
		Nome:     r.FormValue("nome"),
		Password: r.FormValue("password"),
		Role:     models.Role(r.FormValue("role")),
	}

	if _, err := s.q.CreateUsuario(r.Context(), id.Role, req); err != nil {
		fieldErrs, pageErr := formErrors(err)
		users, _ := s.q.ListUsuarios(r.Context())
		s.render(w, "usuarios", view{
			Title:       "Usuários",
			Error:       pageErr,
			FieldErrors: fieldErrs,
			Form:        map[string]string{"username": req.Username, "nome": req.Nome},
			Data:        usuariosData{Users: users, Roles: availableRoles(id.Role)},
		})
		return
	}
	http.Redirect(w, r, "/usuarios", http.StatusSeeOther)
}

func (s *Server) usuarioDelete(w http.ResponseWriter, r *http.Request) {
	id, _ := s.sess.Current()
	username := mux.Vars(r)["username"]

	if err := s.q.DeleteUsuario(r.Context(), id.Role, username); err != nil {
		http.Redirect(w, r, "/usuarios?erro=1", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/usuarios", http.StatusSeeOther)
}
