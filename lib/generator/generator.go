package generator

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Directive marks a widget method as an event handler:
//
//	//hxtree:handler increment
//	func (c *Counter) increment(ctx context.Context, ev *hxtree.Event) error
const Directive = "//hxtree:handler"

// Options configures the generator.
type Options struct {
	DryRun bool
	// Out receives progress lines. Defaults to os.Stdout.
	Out io.Writer
}

// Generator generates handler tables for widget packages.
type Generator struct {
	opts Options
	fset *token.FileSet
}

// New creates a new generator.
func New(opts Options) *Generator {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Generator{
		opts: opts,
		fset: token.NewFileSet(),
	}
}

// Generate generates code for the given package patterns.
func (g *Generator) Generate(patterns ...string) error {
	packages, err := g.findPackages(patterns)
	if err != nil {
		return err
	}

	for _, pkg := range packages {
		if err := g.generatePackage(pkg); err != nil {
			return fmt.Errorf("package %s: %w", pkg, err)
		}
	}

	return nil
}

// Clean removes generated files for the given package patterns.
func (g *Generator) Clean(patterns ...string) error {
	packages, err := g.findPackages(patterns)
	if err != nil {
		return err
	}

	for _, pkg := range packages {
		if err := g.cleanPackage(pkg); err != nil {
			return fmt.Errorf("package %s: %w", pkg, err)
		}
	}

	return nil
}

// findPackages resolves package patterns to directory paths.
func (g *Generator) findPackages(patterns []string) ([]string, error) {
	var packages []string

	for _, pattern := range patterns {
		if !strings.HasSuffix(pattern, "/...") {
			packages = append(packages, pattern)
			continue
		}

		root := strings.TrimSuffix(pattern, "/...")
		if root == "" {
			root = "."
		}

		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			// Skip hidden, vendored and underscore directories like the go tool does
			base := filepath.Base(path)
			if path != root && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || base == "vendor" || base == "testdata") {
				return filepath.SkipDir
			}

			entries, err := os.ReadDir(path)
			if err != nil {
				return nil
			}
			for _, entry := range entries {
				if isSourceFile(entry) {
					packages = append(packages, path)
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return packages, nil
}

func isSourceFile(entry os.DirEntry) bool {
	name := entry.Name()
	return !entry.IsDir() &&
		strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") &&
		!strings.HasSuffix(name, "_hx.go")
}

// generatePackage writes one *_hx.go file per source file that declares
// annotated handlers.
func (g *Generator) generatePackage(pkgPath string) error {
	entries, err := os.ReadDir(pkgPath)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !isSourceFile(entry) {
			continue
		}
		path := filepath.Join(pkgPath, entry.Name())
		file, err := parser.ParseFile(g.fset, path, nil, parser.ParseComments)
		if err != nil {
			return err
		}

		widgets, err := g.findWidgets(file)
		if err != nil {
			return err
		}
		if len(widgets) == 0 {
			continue
		}
		if err := g.generateFile(pkgPath, file.Name.Name, entry.Name(), widgets); err != nil {
			return err
		}
	}

	return nil
}

// cleanPackage removes generated files from a package. Files named *_hx.go
// without the generated header are left alone.
func (g *Generator) cleanPackage(pkgPath string) error {
	entries, err := os.ReadDir(pkgPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "_hx.go") {
			continue
		}
		path := filepath.Join(pkgPath, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !bytes.HasPrefix(data, []byte(generatedHeader)) {
			continue
		}
		fmt.Fprintf(g.opts.Out, "removing %s\n", path)
		if !g.opts.DryRun {
			if err := os.Remove(path); err != nil {
				return err
			}
		}
	}

	return nil
}

// WidgetInfo holds the handlers declared on one widget type.
type WidgetInfo struct {
	TypeName string
	Handlers []HandlerInfo
}

// HandlerInfo maps a posted handler name to a method.
type HandlerInfo struct {
	Name   string // e.g. "increment"
	Method string // e.g. "increment"
}

// findWidgets collects annotated handler methods in file, grouped by
// receiver type and sorted by type name. Handlers keep source order.
func (g *Generator) findWidgets(file *ast.File) ([]*WidgetInfo, error) {
	byType := make(map[string]*WidgetInfo)
	qualifier := "hxtree"
	if file.Name.Name == "hxtree" {
		qualifier = ""
	}

	for _, decl := range file.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok || funcDecl.Recv == nil || funcDecl.Doc == nil {
			continue
		}

		name, ok := handlerName(funcDecl.Doc)
		if !ok {
			continue
		}
		pos := g.fset.Position(funcDecl.Pos())
		if name == "" {
			return nil, fmt.Errorf("%s: %s needs a handler name", pos, Directive)
		}

		typeName, pointer := receiverType(funcDecl.Recv.List[0].Type)
		if typeName == "" || !pointer {
			return nil, fmt.Errorf("%s: handler %q must have a pointer receiver", pos, name)
		}
		if err := checkSignature(funcDecl.Type, qualifier); err != nil {
			return nil, fmt.Errorf("%s: handler %q: %w", pos, name, err)
		}

		w, ok := byType[typeName]
		if !ok {
			w = &WidgetInfo{TypeName: typeName}
			byType[typeName] = w
		}
		for _, h := range w.Handlers {
			if h.Name == name {
				return nil, fmt.Errorf("%s: handler %q declared twice on %s", pos, name, typeName)
			}
		}
		w.Handlers = append(w.Handlers, HandlerInfo{Name: name, Method: funcDecl.Name.Name})
	}

	widgets := make([]*WidgetInfo, 0, len(byType))
	for _, w := range byType {
		widgets = append(widgets, w)
	}
	sort.Slice(widgets, func(i, j int) bool {
		return widgets[i].TypeName < widgets[j].TypeName
	})
	return widgets, nil
}

// handlerName returns the name given by the directive in doc, if any.
func handlerName(doc *ast.CommentGroup) (string, bool) {
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, Directive) {
			continue
		}
		rest := strings.TrimPrefix(c.Text, Directive)
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}
		return strings.TrimSpace(rest), true
	}
	return "", false
}

func receiverType(expr ast.Expr) (name string, pointer bool) {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
		pointer = true
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name, pointer
	}
	return "", pointer
}

// checkSignature requires func(ctx context.Context, ev *hxtree.Event) error.
func checkSignature(ft *ast.FuncType, qualifier string) error {
	var params []ast.Expr
	for _, field := range ft.Params.List {
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			params = append(params, field.Type)
		}
	}

	want := "func(context.Context, *" + qualified(qualifier, "Event") + ") error"
	if len(params) != 2 || typeString(params[0]) != "context.Context" || typeString(params[1]) != "*"+qualified(qualifier, "Event") {
		return fmt.Errorf("signature must be %s", want)
	}
	if ft.Results == nil || len(ft.Results.List) != 1 || len(ft.Results.List[0].Names) > 1 || typeString(ft.Results.List[0].Type) != "error" {
		return fmt.Errorf("signature must be %s", want)
	}
	return nil
}

func qualified(qualifier, name string) string {
	if qualifier == "" {
		return name
	}
	return qualifier + "." + name
}

// typeString converts an AST type to a string representation.
func typeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + typeString(t.X)
	case *ast.SelectorExpr:
		return typeString(t.X) + "." + t.Sel.Name
	default:
		return fmt.Sprintf("%T", expr)
	}
}
