package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/pthm/hxtree"
)

// markup writes HTML to w and remembers the first error, so widget
// templates read top to bottom without an error check per write.
type markup struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (m *markup) raw(s string) *markup {
	if m.err == nil {
		_, m.err = io.WriteString(m.w, s)
	}
	return m
}

func (m *markup) text(s string) *markup {
	return m.raw(templ.EscapeString(s))
}

func (m *markup) attr(name, value string) *markup {
	return m.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// open writes the opening tag of a widget's outer element: id, class and
// the node's opaque attributes.
func (m *markup) open(tag string, n *hxtree.Node, class string) *markup {
	m.raw("<" + tag).attr("id", n.ID)
	if class != "" {
		m.attr("class", class)
	}
	return m.raw(hxtree.AttrString(n))
}

func (m *markup) component(c templ.Component) *markup {
	if m.err == nil {
		m.err = c.Render(m.ctx, m.w)
	}
	return m
}

func (m *markup) children(n *hxtree.Node) *markup {
	return m.component(hxtree.RenderChildren(n))
}

// template adapts a markup-writing function to templ.Component.
func template(fn func(m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{ctx: ctx, w: w}
		fn(m)
		return m.err
	})
}

// label writes an optional <label> for the input with the given id.
func (m *markup) label(forID, text string) *markup {
	if text == "" {
		return m
	}
	return m.raw("<label").attr("for", forID).raw(">").text(text).raw("</label>")
}

// fieldError writes an optional inline validation error.
func (m *markup) fieldError(msg string) *markup {
	if msg == "" {
		return m
	}
	return m.raw(`<div class="field-error">`).text(msg).raw("</div>")
}

// field opens the wrapper element of a form control.
func (m *markup) field(n *hxtree.Node, errMsg string) *markup {
	class := "field"
	if errMsg != "" {
		class = "field error"
	}
	return m.open("div", n, class).raw(">")
}

// controlID is the DOM id of the control inside a node's field wrapper.
func controlID(n *hxtree.Node) string { return n.ID + "-control" }
