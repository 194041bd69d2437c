// Package view отрисовывает HTML-страницы сайта из встроенных шаблонов.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/nutriede/internal/http/flash"
	"github.com/magabrotheeeer/nutriede/internal/http/middlewarectx"
	"github.com/magabrotheeeer/nutriede/internal/lib/sl"
	"github.com/magabrotheeeer/nutriede/internal/services/auth"
)

//go:embed templates/*.html
var files embed.FS

// Имена страниц.
const (
	PageIndex     = "index"
	PageEmpresa   = "empresa"
	PageEstrutura = "estrutura"
	PageServicos  = "servicos"
	PageLogin     = "login"
	PageDashboard = "dashboard"
)

var pages = []string{PageIndex, PageEmpresa, PageEstrutura, PageServicos, PageLogin, PageDashboard}

// Data данные, доступные шаблону. CurrentYear, Flashes и User заполняет Render.
type Data struct {
	CurrentYear int
	Flashes     []flash.Message
	User        *auth.Principal
	Next        string
	Email       string
}

// View хранит разобранные шаблоны. После New только читается.
type View struct {
	log       *slog.Logger
	templates map[string]*template.Template
	now       func() time.Time
}

// New разбирает шаблоны всех страниц.
func New(log *slog.Logger) (*View, error) {
	const op = "view.New"

	templates := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := template.New(name).ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, name, err)
		}
		templates[name] = t
	}
	return &View{log: log, templates: templates, now: time.Now}, nil
}

// Render отрисовывает страницу name. Ошибка шаблона даёт ответ 500.
func (v *View) Render(w http.ResponseWriter, r *http.Request, status int, name string, data Data) {
	const op = "view.Render"
	log := v.log.With(
		slog.String("op", op),
		slog.String("page", name),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	t, ok := v.templates[name]
	if !ok {
		log.Error("unknown page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data.CurrentYear = v.now().Year()
	if data.User == nil {
		if p, ok := middlewarectx.PrincipalFrom(r.Context()); ok {
			data.User = p
		}
	}
	data.Flashes = append(flash.Pop(w, r), data.Flashes...)

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Error("failed to execute template", sl.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Debug("failed to write page", sl.Err(err))
	}
}
