package components

import (
	"context"

	"github.com/a-h/templ"

	"github.com/pthm/hxtree"
)

// Tab is the container of TabItem children. It renders a header per item
// and the content of the active one.
type Tab struct{}

func (*Tab) Kind() string { return "tab" }

func (*Tab) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.open("div", n, "ui tab-container").raw(`><div class="ui tabular menu">`)
		for _, c := range n.Children() {
			item, ok := c.Widget.(*TabItem)
			if !ok {
				continue
			}
			class := "item"
			if item.Active {
				class = "active item"
			}
			m.raw("<a").attr("class", class).raw(hxtree.Wire(n, "select_tab").Value(c.ID).String()).raw(">")
			m.text(item.Title).raw("</a>")
		}
		m.raw("</div>")
		for _, c := range n.Children() {
			if item, ok := c.Widget.(*TabItem); ok && item.Active {
				m.component(c.Component())
			}
		}
		m.raw("</div>")
	})
}

// Active returns the node of the active item, or nil.
func (*Tab) Active(n *hxtree.Node) *hxtree.Node {
	for _, c := range n.Children() {
		if item, ok := c.Widget.(*TabItem); ok && item.Active {
			return c
		}
	}
	return nil
}

//hxtree:handler select_tab
func (t *Tab) selectTab(ctx context.Context, ev *hxtree.Event) error {
	if ev.Node.Child(ev.Value, hxtree.DirectOnly(), hxtree.NoRootSearch()) == nil {
		return nil
	}
	for _, c := range ev.Node.Children() {
		if item, ok := c.Widget.(*TabItem); ok {
			item.Active = c.ID == ev.Value
		}
	}
	return ev.Node.MarkDirty(ctx)
}

// TabItem is a page of a Tab.
type TabItem struct {
	Title  string
	Active bool
}

func (*TabItem) Kind() string { return "tab-item" }

func (*TabItem) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.open("div", n, "ui tab segment active").raw(">").children(n).raw("</div>")
	})
}
