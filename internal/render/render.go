package render

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/gatherly/app/web"
	"github.com/labstack/echo/v4"
)

const layoutFile = "templates/layout.html"

var funcMap = template.FuncMap{
	"formatDateTime": formatDateTime,
	"nl2br":          nl2br,
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("January 2, 2006 at 3:04 PM")
}

func nl2br(s string) template.HTML {
	return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
}

// Renderer implements echo.Renderer over the embedded page templates.
// Every page is parsed together with the shared layout.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses all embedded templates and returns a ready Renderer.
func New() (*Renderer, error) {
	pages, err := fs.Glob(web.Templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("globbing templates: %w", err)
	}

	templates := make(map[string]*template.Template)
	for _, page := range pages {
		if page == layoutFile {
			continue
		}
		name := path.Base(page)
		tmpl, err := template.New(name).Funcs(funcMap).ParseFS(web.Templates, layoutFile, page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}
	return &Renderer{templates: templates}, nil
}

// Render executes the named page template inside the layout.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
