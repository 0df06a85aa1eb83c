package views

import (
	"embed"
	"html/template"
	"path"

	"github.com/01moynul/taptosell-catalog/internal/models"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.tmpl
var files embed.FS

// Load parses every page template. uploadURL is the public prefix under
// which stored images are served.
func Load(uploadURL string) (*template.Template, error) {
	return template.New("").Funcs(FuncMap(uploadURL)).ParseFS(files, "templates/*.tmpl")
}

func FuncMap(uploadURL string) template.FuncMap {
	return template.FuncMap{
		"price": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"deref": models.Deref,
		"imageURL": func(name string) string {
			return path.Join(uploadURL, path.Base(name))
		},
	}
}
