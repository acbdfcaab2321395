package components

import (
	"context"

	"github.com/a-h/templ"

	"github.com/pthm/hxtree"
)

// Group arranges children together, for styling or to refresh them as one.
type Group struct{}

func (*Group) Kind() string { return "group" }

func (*Group) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.open("div", n, "group").raw(">").children(n).raw("</div>")
	})
}

// Clear removes every child.
func (*Group) Clear(n *hxtree.Node) { n.RemoveChildren() }

// Grid is the outer container of a row/column layout.
type Grid struct{}

func (*Grid) Kind() string { return "grid" }

func (*Grid) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.open("div", n, "ui grid").raw(">").children(n).raw("</div>")
	})
}

// Row is a row of a Grid.
type Row struct{}

func (*Row) Kind() string { return "row" }

func (*Row) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.open("div", n, "row").raw(">").children(n).raw("</div>")
	})
}

var widths = [...]string{"", "one", "two", "three", "four", "five", "six", "seven",
	"eight", "nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen"}

// Column is a column of a Grid row, Width sixteenths wide.
type Column struct {
	Width int
}

func (*Column) Kind() string { return "column" }

// WidthName returns the width as a word; out of range widths are clamped
// to 1..16.
func (c *Column) WidthName() string {
	w := c.Width
	if w < 1 {
		w = 1
	}
	if w > 16 {
		w = 16
	}
	return widths[w]
}

func (c *Column) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.open("div", n, c.WidthName()+" wide column").raw(">").children(n).raw("</div>")
	})
}
