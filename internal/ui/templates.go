package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"oficina-desk/internal/cache"
	"oficina-desk/internal/models"
	"oficina-desk/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"login", "dashboard",
	"clientes", "cliente_detail", "cliente_form",
	"chamados", "chamado_detail", "chamado_form", "calendar",
	"caixa", "caixa_form",
	"usuarios", "usuario_form", "diagnostics",
}

// view carries everything a page template sees. WatchKeys lists the cache
// keys the page rendered from; the base layout subscribes to them over
// the websocket so stale data triggers a refresh.
type view struct {
	Title       string
	Identity    *session.Identity
	Data        any
	Form        map[string]string
	Error       string
	FieldErrors map[string]string
	WatchKeys   []cache.Key
	Statuses    []models.ChamadoStatus
}

type templates struct {
	pages map[string]*template.Template
}

func loadTemplates() (*templates, error) {
	funcs := template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("R$ %.2f", v) },
		"add":   func(a, b int) int { return a + b },
		"sub":   func(a, b int) int { return a - b },
		"deref": func(p *int) int {
			if p == nil {
				return 0
			}
			return *p
		},
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &templates{pages: pages}, nil
}

func (t *templates) render(w http.ResponseWriter, name string, v view) {
	tmpl, ok := t.pages[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	if v.Form == nil {
		v.Form = map[string]string{}
	}
	if v.FieldErrors == nil {
		v.FieldErrors = map[string]string{}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", v); err != nil {
		log.Printf("[UI] render %s failed: %v", name, err)
	}
}
