package generator

import (
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const pagerSource = `package widgets

import (
	"context"

	"github.com/pthm/hxtree"
)

type Pager struct{ Page int }

func (*Pager) Kind() string { return "pager" }

//hxtree:handler next_page
func (p *Pager) nextPage(ctx context.Context, ev *hxtree.Event) error {
	p.Page++
	return nil
}

// prevPage goes back one page.
//
//hxtree:handler prev_page
func (p *Pager) prevPage(ctx context.Context, ev *hxtree.Event) error {
	p.Page--
	return nil
}

// helper is not a handler.
func (p *Pager) helper(ctx context.Context, ev *hxtree.Event) error { return nil }

type Counter struct{ Count int }

//hxtree:handler increment
func (c *Counter) increment(_ context.Context, _ *hxtree.Event) error {
	c.Count++
	return nil
}
`

const pagerGenerated = `// Code generated by hxtree. DO NOT EDIT.
// Source: pager.go

package widgets

import (
	"github.com/pthm/hxtree"
)

var _ hxtree.HandlerSet = (*Counter)(nil)

// LookupHandler returns the Counter handler registered under name, or nil.
func (w *Counter) LookupHandler(name string) hxtree.HandlerFunc {
	switch name {
	case "increment":
		return w.increment
	}
	return nil
}

var _ hxtree.HandlerSet = (*Pager)(nil)

// LookupHandler returns the Pager handler registered under name, or nil.
func (w *Pager) LookupHandler(name string) hxtree.HandlerFunc {
	switch name {
	case "next_page":
		return w.nextPage
	case "prev_page":
		return w.prevPage
	}
	return nil
}
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pager.go", pagerSource)
	writeFile(t, dir, "plain.go", "package widgets\n\ntype Plain struct{}\n")

	var out bytes.Buffer
	g := New(Options{Out: &out})
	if err := g.Generate(dir); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "pager_hx.go"))
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}
	if string(got) != pagerGenerated {
		t.Errorf("generated:\n%s\nwant:\n%s", got, pagerGenerated)
	}

	if _, err := os.Stat(filepath.Join(dir, "plain_hx.go")); !os.IsNotExist(err) {
		t.Error("generated a file for a source without handlers")
	}
	if !strings.Contains(out.String(), "generating "+filepath.Join(dir, "pager_hx.go")) {
		t.Errorf("output = %q", out.String())
	}
}

func TestGenerateInsideHxtreePackage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "w.go", `package hxtree

import "context"

type W struct{}

//hxtree:handler ping
func (w *W) ping(ctx context.Context, ev *Event) error { return nil }
`)

	g := New(Options{Out: &bytes.Buffer{}})
	if err := g.Generate(dir); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	got, _ := os.ReadFile(filepath.Join(dir, "w_hx.go"))
	if strings.Contains(string(got), "import") || !strings.Contains(string(got), "func (w *W) LookupHandler(name string) HandlerFunc {") {
		t.Errorf("generated:\n%s", got)
	}
}

func TestFindWidgetsErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{
			name: "value receiver",
			code: `func (c Counter) inc(ctx context.Context, ev *hxtree.Event) error { return nil }`,
			want: "pointer receiver",
		},
		{
			name: "missing event",
			code: `func (c *Counter) inc(ctx context.Context) error { return nil }`,
			want: "signature must be",
		},
		{
			name: "wrong result",
			code: `func (c *Counter) inc(ctx context.Context, ev *hxtree.Event) {}`,
			want: "signature must be",
		},
		{
			name: "event by value",
			code: `func (c *Counter) inc(ctx context.Context, ev hxtree.Event) error { return nil }`,
			want: "signature must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "package w\n\n//hxtree:handler inc\n" + tt.code + "\n"
			g := New(Options{Out: &bytes.Buffer{}})
			file, err := parser.ParseFile(g.fset, "w.go", src, parser.ParseComments)
			if err != nil {
				t.Fatal(err)
			}
			_, err = g.findWidgets(file)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestFindWidgetsDuplicateAndMissingName(t *testing.T) {
	dup := `package w

//hxtree:handler go
func (c *C) a(ctx context.Context, ev *hxtree.Event) error { return nil }

//hxtree:handler go
func (c *C) b(ctx context.Context, ev *hxtree.Event) error { return nil }
`
	unnamed := `package w

//hxtree:handler
func (c *C) a(ctx context.Context, ev *hxtree.Event) error { return nil }
`
	lookalike := `package w

//hxtree:handlers go
func (c *C) a(ctx context.Context, ev *hxtree.Event) error { return nil }
`

	g := New(Options{})
	parse := func(src string) ([]*WidgetInfo, error) {
		file, err := parser.ParseFile(token.NewFileSet(), "w.go", src, parser.ParseComments)
		if err != nil {
			t.Fatal(err)
		}
		return g.findWidgets(file)
	}

	if _, err := parse(dup); err == nil || !strings.Contains(err.Error(), "declared twice") {
		t.Errorf("duplicate: err = %v", err)
	}
	if _, err := parse(unnamed); err == nil || !strings.Contains(err.Error(), "needs a handler name") {
		t.Errorf("unnamed: err = %v", err)
	}
	if ws, err := parse(lookalike); err != nil || len(ws) != 0 {
		t.Errorf("lookalike directive: widgets = %v, err = %v", ws, err)
	}
}

func TestGenerateDryRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pager.go", pagerSource)

	var out bytes.Buffer
	if err := New(Options{DryRun: true, Out: &out}).Generate(dir); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "pager_hx.go")); !os.IsNotExist(err) {
		t.Error("dry run wrote a file")
	}
	if !strings.Contains(out.String(), "pager_hx.go") {
		t.Errorf("output = %q", out.String())
	}
}

func TestClean(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pager.go", pagerSource)
	writeFile(t, dir, "custom_hx.go", "package widgets\n")

	g := New(Options{Out: &bytes.Buffer{}})
	if err := g.Generate(dir); err != nil {
		t.Fatal(err)
	}
	if err := g.Clean(dir); err != nil {
		t.Fatalf("Clean: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "pager_hx.go")); !os.IsNotExist(err) {
		t.Error("generated file not removed")
	}
	if _, err := os.Stat(filepath.Join(dir, "custom_hx.go")); err != nil {
		t.Error("hand-written _hx.go file removed")
	}
}

func TestFindPackages(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"a", "a/b", "_skip", ".hidden", "testdata", "empty"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}
	for _, dir := range []string{"a", "a/b", "_skip", ".hidden", "testdata"} {
		writeFile(t, filepath.Join(root, dir), "x.go", "package x\n")
	}
	writeFile(t, filepath.Join(root, "empty"), "x_test.go", "package x\n")

	g := New(Options{})
	pkgs, err := g.findPackages([]string{root + "/..."})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{filepath.Join(root, "a"), filepath.Join(root, "a/b")}
	if strings.Join(pkgs, ",") != strings.Join(want, ",") {
		t.Errorf("packages = %v, want %v", pkgs, want)
	}
}
