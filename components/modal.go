package components

import (
	"context"

	"github.com/a-h/templ"

	"github.com/pthm/hxtree"
)

// Modal is a dialog holding its children. It is shown once: the node is
// detached from the tree after it has been rendered.
type Modal struct {
	Header      string
	CloseButton bool
}

func (*Modal) Kind() string { return "modal" }

func (*Modal) RemoveAfterRender() bool { return true }

func (d *Modal) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.open("div", n, "ui modal active").raw(">")
		if d.CloseButton {
			m.raw(`<i class="close icon" onclick="this.closest('.ui.modal').remove()"></i>`)
		}
		if d.Header != "" {
			m.raw(`<div class="header">`).text(d.Header).raw("</div>")
		}
		m.raw(`<div class="content">`).children(n).raw("</div></div>")
	})
}

// ConfirmModal asks a yes/no question. Answering yes posts Handler with
// EventID as the origin; answering no just closes the dialog. Like Modal
// it is detached after rendering.
type ConfirmModal struct {
	Header  string
	Text    string
	Handler string
	EventID string
}

func (*ConfirmModal) Kind() string { return "confirm-modal" }

func (*ConfirmModal) RemoveAfterRender() bool { return true }

func (d *ConfirmModal) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.open("div", n, "ui modal active confirm").raw(">")
		if d.Header != "" {
			m.raw(`<div class="header">`).text(d.Header).raw("</div>")
		}
		m.raw(`<div class="content">`).text(d.Text).raw("</div>")
		m.raw(`<div class="actions">`)
		m.raw(`<button type="button" class="ui positive button"`).
			raw(hxtree.WireID(d.EventID, d.Handler).String()).
			raw(` onclick="this.closest('.ui.modal').remove()">Yes</button>`)
		m.raw(`<button type="button" class="ui negative button" onclick="this.closest('.ui.modal').remove()">No</button>`)
		m.raw("</div></div>")
	})
}
