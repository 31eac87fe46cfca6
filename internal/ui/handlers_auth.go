package ui

import (
	"log"
	"net/http"

	"oficina-desk/internal/session"
)

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.sess.Current(); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, "login", view{Title: "Entrar"})
}

func (s *Server) loginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	username := r.FormValue("username")
	password := r.FormValue("password")

	resp, err := s.auth.Login(r.Context(), username, password)
	if err != nil {
		s.render(w, "login", view{
			Title: "Entrar",
			Error: "Nome de usuário ou senha incorretos",
			Form:  map[string]string{"username": username},
		})
		return
	}

	s.sess.SetIdentity(session.Identity{
		Username: username,
		Role:     resp.Role,
		UserID:   resp.UsuarioID,
	})
	// New session epoch: re-arm the global 401/403 interception.
	s.client.ResetAuthGate()
	log.Printf("[UI] %s logged in as %s", username, resp.Role)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.sess.ClearIdentity()
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
