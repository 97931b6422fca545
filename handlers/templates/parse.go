package templates

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FS holds the page templates.
//
//go:embed *.html
var FS embed.FS

var titleCaser = cases.Title(language.English)

// ParseTemplates parses HTML templates from the embedded filesystem.
// It takes a variadic list of template file names and returns a parsed template
// or an error if parsing fails.
func ParseTemplates(files ...string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"subtract": func(a, b int) int {
			return a - b
		},
		"title": func(v any) string {
			return titleCaser.String(fmt.Sprint(v))
		},
		"rating": func(v float64) string {
			return fmt.Sprintf("%.1f", v)
		},
		"date": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"plural": func(n int, singular, plural string) string {
			if n == 1 {
				return singular
			}
			return plural
		},
	}

	return template.New("").Funcs(funcMap).ParseFS(FS, files...)
}
