package renderer

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderSheet renders a sheet to a markdown string: an optional title, the
// grid as a table and, when some cells failed to evaluate, an error section.
func RenderSheet(s *Sheet) string {
	partials := map[string]string{
		"sheet_table": "sheet_table.md",
	}
	var b strings.Builder
	b.WriteString(renderTemplate("sheet", "sheet.md", partials, s))

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "\n## Errors\n\n")
		fmt.Fprintln(w, "| Cell | Formula | Error |")
		fmt.Fprintln(w, "|:---|:---|:---|")
		for _, e := range s.Errors {
			fmt.Fprintf(w, "| %s | `%s` | %s |\n", e.Key, escapeCell(e.Formula), escapeCell(e.Message))
		}
		return len(s.Errors) > 0
	})
	return b.String()
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
