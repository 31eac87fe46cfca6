// Package ui serves the local web views: forms, lists and detail panels
// over the query layer. Presentation only; every data decision lives in
// queries/cache/session.
package ui

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"oficina-desk/internal/api"
	"oficina-desk/internal/cache"
	"oficina-desk/internal/config"
	"oficina-desk/internal/httpclient"
	"oficina-desk/internal/queries"
	"oficina-desk/internal/session"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	cfg    *config.Config
	q      *queries.Queries
	sess   *session.Manager
	auth   *api.Auth
	client *httpclient.Client
	tmpl   *templates
	hub    *hub
	srv    *http.Server
}

func NewServer(cfg *config.Config, q *queries.Queries, sess *session.Manager, auth *api.Auth, client *httpclient.Client) (*Server, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:    cfg,
		q:      q,
		sess:   sess,
		auth:   auth,
		client: client,
		tmpl:   tmpl,
		hub:    newHub(q.Store()),
	}
	s.srv = &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", cfg.UI.Port),
		Handler: newCORS(cfg.UI.CorsAllowedOrigins)(metricsMiddleware(s.router())),
	}
	return s, nil
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/login", s.loginPage).Methods("GET")
	r.HandleFunc("/login", s.loginSubmit).Methods("POST")
	r.HandleFunc("/logout", s.logout).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Protected views
	r.HandleFunc("/", s.requireSession(s.dashboard)).Methods("GET")
	r.HandleFunc("/ws", s.requireSession(s.hub.serve)).Methods("GET")
	r.HandleFunc("/diagnostics", s.requireSession(s.diagnostics)).Methods("GET")

	r.HandleFunc("/clientes", s.requireSession(s.clientesList)).Methods("GET")
	r.HandleFunc("/clientes/telefone", s.requireSession(s.clienteByTelefone)).Methods("GET")
	r.HandleFunc("/clientes/novo", s.requireSession(s.clienteForm)).Methods("GET")
	r.HandleFunc("/clientes/novo", s.requireSession(s.clienteCreate)).Methods("POST")
	r.HandleFunc("/clientes/{id:[0-9]+}", s.requireSession(s.clienteDetail)).Methods("GET")
	r.HandleFunc("/clientes/{id:[0-9]+}/editar", s.requireSession(s.clienteEditForm)).Methods("GET")
	r.HandleFunc("/clientes/{id:[0-9]+}/editar", s.requireSession(s.clienteUpdate)).Methods("POST")

	r.HandleFunc("/chamados", s.requireSession(s.chamadosList)).Methods("GET")
	r.HandleFunc("/chamados/novo", s.requireSession(s.chamadoForm)).Methods("GET")
	r.HandleFunc("/chamados/novo", s.requireSession(s.chamadoCreate)).Methods("POST")
	r.HandleFunc("/chamados/{id:[0-9]+}", s.requireSession(s.chamadoDetail)).Methods("GET")
	r.HandleFunc("/chamados/{id:[0-9]+}/editar", s.requireSession(s.chamadoUpdate)).Methods("POST")
	r.HandleFunc("/chamados/{id:[0-9]+}/itens", s.requireSession(s.itemAdd)).Methods("POST")
	r.HandleFunc("/chamados/{id:[0-9]+}/itens/{itemId:[0-9]+}/editar", s.requireSession(s.itemUpdate)).Methods("POST")
	r.HandleFunc("/chamados/{id:[0-9]+}/itens/{itemId:[0-9]+}/excluir", s.requireSession(s.itemDelete)).Methods("POST")
	r.HandleFunc("/chamados/{id:[0-9]+}/receipt.pdf", s.requireSession(s.chamadoReceipt)).Methods("GET")
	r.HandleFunc("/calendario", s.requireSession(s.calendar)).Methods("GET")

	canManageCaixa := session.Identity.CanManageCaixa
	r.HandleFunc("/caixa", s.requireRole(canManageCaixa, s.caixaList)).Methods("GET")
	r.HandleFunc("/caixa/novo", s.requireRole(canManageCaixa, s.caixaForm)).Methods("GET")
	r.HandleFunc("/caixa/novo", s.requireRole(canManageCaixa, s.caixaCreate)).Methods("POST")
	r.HandleFunc("/caixa/{id:[0-9]+}/editar", s.requireRole(canManageCaixa, s.caixaEditForm)).Methods("GET")
	r.HandleFunc("/caixa/{id:[0-9]+}/editar", s.requireRole(canManageCaixa, s.caixaUpdate)).Methods("POST")
	r.HandleFunc("/caixa/{id:[0-9]+}/excluir", s.requireRole(canManageCaixa, s.caixaDelete)).Methods("POST")
	r.HandleFunc("/caixa/{id:[0-9]+}/fechar", s.requireRole(canManageCaixa, s.caixaClose)).Methods("POST")

	canManageUsers := session.Identity.CanManageUsers
	r.HandleFunc("/usuarios", s.requireRole(canManageUsers, s.usuariosList)).Methods("GET")
	r.HandleFunc("/usuarios", s.requireRole(canManageUsers, s.usuarioCreate)).Methods("POST")
	r.HandleFunc("/usuarios/{username}/editar", s.requireRole(canManageUsers, s.usuarioEditForm)).Methods("GET")
	r.HandleFunc("/usuarios/{username}/editar", s.requireRole(canManageUsers, s.usuarioUpdate)).Methods("POST")
	r.HandleFunc("/usuarios/{username}/excluir", s.requireRole(canManageUsers, s.usuarioDelete)).Methods("POST")

	return r
}

func (s *Server) Start() error {
	log.Printf("[UI] Desk running on http://%s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("ui server failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.closeAll()
	return s.srv.Shutdown(ctx)
}

// render fills in the session identity before handing the view to the
// template set.
func (s *Server) render(w http.ResponseWriter, name string, v view) {
	if id, ok := s.sess.Current(); ok {
		v.Identity = &id
	}
	s.tmpl.render(w, name, v)
}

// watch collects the cache keys a page rendered from.
func watch(keys ...cache.Key) []cache.Key { return keys }
