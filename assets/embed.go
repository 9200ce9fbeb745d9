package assets

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.tmpl static/*
var FS embed.FS

// Static returns the /static file tree.
func Static() (fs.FS, error) {
	return fs.Sub(FS, "static")
}

// Templates parses the page templates with funcs available to them.
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(FS, "templates/*.tmpl")
}
