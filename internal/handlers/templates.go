package handlers

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// LoadTemplates parses the web pages. Every page renders through "base".
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(TemplateFuncs()).ParseFS(templateFS, "templates/*.html")
}
