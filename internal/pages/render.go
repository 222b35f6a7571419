package pages

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"

	"github.com/expertgati/movers-web/internal/lead"
)

//go:embed templates
var templateFS embed.FS

const errorTemplate = "error"

// Renderer implements gin's render.HTMLRender with one template set per page, each made of
// base.html plus the page's "content" block.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	// jsonLD marks an operator-supplied JSON-LD document as script content.
	"jsonLD":  func(s string) template.JS { return template.JS(s) },
	"rawHTML": func(s string) template.HTML { return template.HTML(s) },
	"fieldError": func(e *lead.ValidationError, name string) string {
		return e.Field(name)
	},
	"date": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2 January 2006")
	},
}

func NewRenderer() (*Renderer, error) {
	base, err := template.New("base.html").Funcs(funcs).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parse base template: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[strings.TrimSuffix(path.Base(file), ".html")] = t
	}
	if _, ok := r.pages[errorTemplate]; !ok {
		return nil, fmt.Errorf("missing %s template", errorTemplate)
	}
	return r, nil
}

// Instance renders the "base" template of the named page. Unknown names render the error page.
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		t = r.pages[errorTemplate]
	}
	return render.HTML{Template: t, Name: "base", Data: data}
}
