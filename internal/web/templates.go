package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/desertthunder/spotdash/internal/controller"
	"github.com/desertthunder/spotdash/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"image": func(images []services.SpotifyImage) string {
		if len(images) == 0 {
			return ""
		}
		return images[0].URL
	},
	"artists": func(artists []services.SpotifyArtist) string {
		names := make([]string, 0, len(artists))
		for _, a := range artists {
			names = append(names, a.Name)
		}
		return strings.Join(names, ", ")
	},
	"duration": func(ms int) string {
		d := time.Duration(ms) * time.Millisecond
		return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
	},
	"glyph":       func() string { return controller.IconGlyph },
	"placeholder": func() string { return controller.Placeholder },
}

// pages holds one template set per page, each parsed together with the base layout.
type pages struct {
	sets map[string]*template.Template
}

func loadPages() (*pages, error) {
	p := &pages{sets: make(map[string]*template.Template)}
	for _, name := range []string{"overview.html", "error.html"} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		p.sets[name] = t
	}
	return p, nil
}

// render executes a page into a buffer first so a template error still yields a clean 500.
func (a *App) render(w http.ResponseWriter, name string, code int, data any) {
	t, ok := a.pages.sets[name]
	if !ok {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		a.logger.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	buf.WriteTo(w)
}

func (a *App) renderError(w http.ResponseWriter, message string, code int) {
	a.render(w, "error.html", code, struct{ Message string }{message})
}

func (a *App) writePanel(w http.ResponseWriter, panel controller.Panel) {
	markup, err := controller.RenderHTML(panel)
	if err != nil {
		a.logger.Error("failed to render results panel", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(markup))
}
