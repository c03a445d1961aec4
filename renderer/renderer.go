// Package renderer turns parsed statements into markdown reports.
//
// Each report has a view struct built from the domain types and a template
// under templates/. The view structs keep the exact decimal types (Money,
// Quantity) so the templates reuse their renderers (String, SignedString).
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// renderTemplate is a generic utility to render one of the embedded report
// templates with the given view data.
func renderTemplate(name string, data any) string {
	content, err := templates.ReadFile("templates/" + name)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", name, err)
	}
	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", name, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error rendering template %q: %v", name, err)
	}
	return b.String()
}
