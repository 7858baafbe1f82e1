package views

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"time"

	"inkpress/reader"

	"github.com/pkg/errors"
)

//go:embed templates/*.html
var files embed.FS

//go:embed static
var static embed.FS

// Static returns the stylesheet and default images served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var pages = []string{"home.html", "blog.html", "about.html", "login.html", "admin.html", "notfound.html"}

// Renderer executes a page inside the shared base layout.
type Renderer struct {
	templates map[string]*template.Template
}

func New() (*Renderer, error) {
	funcs := template.FuncMap{
		// raw marks admin-authored HTML as trusted; descriptions are
		// rendered verbatim.
		"raw": func(s string) template.HTML { return template.HTML(s) },
		"excerpt": func(s string) string {
			return reader.Excerpt(s, 120)
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("January 2, 2006")
		},
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New("").Funcs(funcs).ParseFS(files, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing template %s", page)
		}
		templates[page] = tmpl
	}
	return &Renderer{templates: templates}, nil
}

// Render writes page to w.
func (r *Renderer) Render(w io.Writer, page string, data interface{}) error {
	tmpl, ok := r.templates[page]
	if !ok {
		return errors.Errorf("unknown page %q", page)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}
