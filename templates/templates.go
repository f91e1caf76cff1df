// Package templates carries the embedded HTML pages.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.tmpl
var files embed.FS

// Load parses every embedded page; pages are addressed by file name.
func Load() *template.Template {
	return template.Must(template.ParseFS(files, "*.tmpl"))
}
