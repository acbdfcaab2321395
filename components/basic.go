package components

import (
	"context"

	"github.com/a-h/templ"

	"github.com/pthm/hxtree"
)

// HTML is a plain tag with text content, followed by any children.
type HTML struct {
	Tag  string
	Text string
}

func (*HTML) Kind() string { return "html" }

// tagName returns Tag when it is a plain lowercase element name, else "div".
func (h *HTML) tagName() string {
	if h.Tag == "" {
		return "div"
	}
	for _, r := range h.Tag {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return "div"
		}
	}
	return h.Tag
}

func (h *HTML) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	tag := h.tagName()
	return template(func(m *markup) {
		m.open(tag, n, "").raw(">").text(h.Text).children(n).raw("</" + tag + ">")
	})
}

// Image is an <img> element.
type Image struct {
	Src   string
	Alt   string
	Title string
}

func (*Image) Kind() string { return "image" }

func (i *Image) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.open("img", n, "ui image").attr("src", i.Src).attr("alt", i.Alt)
		if i.Title != "" {
			m.attr("title", i.Title)
		}
		m.raw("/>")
	})
}

// Link is an anchor. With a Handler set, clicking it posts an event
// instead of following Href.
type Link struct {
	Text    string
	Href    string
	Handler string
}

func (*Link) Kind() string { return "link" }

func (l *Link) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.open("a", n, "")
		if l.Href != "" {
			m.attr("href", l.Href)
		}
		if l.Handler != "" {
			m.raw(hxtree.Wire(n, l.Handler).String())
		}
		m.raw(">").text(l.Text).raw("</a>")
	})
}

// Button posts Handler with itself as the event origin when clicked.
// Value is the button's label; it is not an input and ignores posted values.
type Button struct {
	Value   string
	Handler string
	Confirm string
}

func (*Button) Kind() string { return "button" }

func (b *Button) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.open("button", n, "ui button").attr("type", "button")
		if b.Handler != "" {
			m.raw(hxtree.Wire(n, b.Handler).Confirm(b.Confirm).String())
		}
		m.raw(">").text(b.Value).raw("</button>")
	})
}

// Menu is the root container of a pop-up menu.
type Menu struct{}

func (*Menu) Kind() string { return "menu" }

func (*Menu) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.open("div", n, "ui menu").raw(">").children(n).raw("</div>")
	})
}

// MenuItem is an entry of a Menu, either a plain link or an event.
type MenuItem struct {
	Name    string
	Href    string
	Handler string
}

func (*MenuItem) Kind() string { return "menu-item" }

func (i *MenuItem) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.open("a", n, "item")
		if i.Href != "" {
			m.attr("href", i.Href)
		}
		if i.Handler != "" {
			m.raw(hxtree.Wire(n, i.Handler).String())
		}
		m.raw(">").text(i.Name).raw("</a>")
	})
}
