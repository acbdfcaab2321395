package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

const generatedHeader = "// Code generated by hxtree. DO NOT EDIT."

// generateFile writes the *_hx.go file for the widgets of one source file.
func (g *Generator) generateFile(pkgPath, pkgName, sourceFile string, widgets []*WidgetInfo) error {
	baseName := strings.TrimSuffix(sourceFile, ".go")
	outputFile := filepath.Join(pkgPath, baseName+"_hx.go")

	fmt.Fprintf(g.opts.Out, "generating %s\n", outputFile)

	if g.opts.DryRun {
		return nil
	}

	code, err := g.render(pkgName, sourceFile, widgets)
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, code, 0644)
}

// render produces the formatted handler tables.
func (g *Generator) render(pkgName, sourceFile string, widgets []*WidgetInfo) ([]byte, error) {
	tmpl, err := template.New("hx").Parse(hxTemplate)
	if err != nil {
		return nil, err
	}

	qualifier := "hxtree."
	if pkgName == "hxtree" {
		qualifier = ""
	}

	data := struct {
		Header    string
		Source    string
		Package   string
		Qualifier string
		Widgets   []*WidgetInfo
	}{
		Header:    generatedHeader,
		Source:    sourceFile,
		Package:   pkgName,
		Qualifier: qualifier,
		Widgets:   widgets,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format source: %w", err)
	}
	return formatted, nil
}

const hxTemplate = `{{.Header}}
// Source: {{.Source}}

package {{.Package}}
{{if .Qualifier}}
import (
	"github.com/pthm/hxtree"
)
{{end}}
{{range .Widgets}}
var _ {{$.Qualifier}}HandlerSet = (*{{.TypeName}})(nil)

// LookupHandler returns the {{.TypeName}} handler registered under name, or nil.
func (w *{{.TypeName}}) LookupHandler(name string) {{$.Qualifier}}HandlerFunc {
	switch name {
	{{- range .Handlers}}
	case "{{.Name}}":
		return w.{{.Method}}
	{{- end}}
	}
	return nil
}
{{end}}`
