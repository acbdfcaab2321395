package hxtree

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

type scopeKey struct{}

// renderScope records ephemeral nodes rendered during a cycle so they can
// be detached once the response has been collected.
type renderScope struct {
	ephemeral []*Node
}

func (s *renderScope) note(n *Node) {
	for _, e := range s.ephemeral {
		if e == n {
			return
		}
	}
	s.ephemeral = append(s.ephemeral, n)
}

// detach removes every recorded node from its parent.
func (s *renderScope) detach() []*Node {
	var removed []*Node
	for _, n := range s.ephemeral {
		if p := n.parent; p != nil && p.RemoveChild(n.ID) {
			removed = append(removed, n)
		}
	}
	s.ephemeral = nil
	return removed
}

// withRenderScope returns a context carrying a fresh render scope.
func withRenderScope(ctx context.Context) (context.Context, *renderScope) {
	s := &renderScope{}
	return context.WithValue(ctx, scopeKey{}, s), s
}

func scopeFrom(ctx context.Context) *renderScope {
	s, _ := ctx.Value(scopeKey{}).(*renderScope)
	return s
}

// Component returns the node's markup as a templ component.
//
// Rendering is free of structural side effects: ephemeral nodes are only
// recorded in the cycle's render scope, and the cycle detaches them after
// the response has been collected.
func (n *Node) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		r, ok := n.Widget.(Renderer)
		if !ok {
			return nil
		}
		if e, ok := n.Widget.(Ephemeral); ok && e.RemoveAfterRender() {
			if s := scopeFrom(ctx); s != nil {
				s.note(n)
			}
		}
		return r.Render(ctx, n).Render(ctx, w)
	})
}

// Render produces the node's HTML.
func (n *Node) Render(ctx context.Context) (string, error) {
	var sb strings.Builder
	if err := n.Component().Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderChildren renders the node's children in order. Widgets call it from
// their templates:
//
//	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
//	    io.WriteString(w, `<div id="`+templ.EscapeString(n.ID)+`">`)
//	    hxtree.RenderChildren(n).Render(ctx, w)
//	    ...
//	})
func RenderChildren(n *Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range n.children {
			if err := c.Component().Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// AttrString renders the node's opaque attributes as ` key="value"` pairs,
// sorted by key so output is stable across session round trips.
func AttrString(n *Node) string {
	if len(n.Attributes) == 0 {
		return ""
	}
	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(" ")
		sb.WriteString(templ.EscapeString(k))
		sb.WriteString(`="`)
		sb.WriteString(templ.EscapeString(n.Attributes[k]))
		sb.WriteString(`"`)
	}
	return sb.String()
}
