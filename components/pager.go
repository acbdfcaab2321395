package components

import (
	"context"
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	"github.com/pthm/hxtree"
)

// DefaultPageSize is used when a Pager has no PageSize.
const DefaultPageSize = 10

// Pager shows Data one page at a time in a table with previous and next
// buttons. Its children are derived from its state and rebuilt on every
// page change.
type Pager struct {
	Columns  []string
	Data     [][]string
	PageSize int
	Page     int
}

func (*Pager) Kind() string { return "pager" }

func (p *Pager) size() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	return p.PageSize
}

// Pages returns the number of pages, at least one.
func (p *Pager) Pages() int {
	pages := (len(p.Data) + p.size() - 1) / p.size()
	if pages < 1 {
		return 1
	}
	return pages
}

// SetPage moves to page, clamped to the valid range.
func (p *Pager) SetPage(page int) {
	p.Page = max(1, min(page, p.Pages()))
}

// Window returns the rows of the current page.
func (p *Pager) Window() [][]string {
	p.SetPage(p.Page)
	start := (p.Page - 1) * p.size()
	end := min(start+p.size(), len(p.Data))
	if start >= end {
		return nil
	}
	return p.Data[start:end]
}

func (p *Pager) InitChildren(n *hxtree.Node) error {
	table := &Table{Columns: p.Columns}
	tn, err := hxtree.New(n.ID+"-table", table)
	if err != nil {
		return err
	}
	for _, row := range p.Window() {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		if err := table.AddRow(tn, cells...); err != nil {
			return err
		}
	}
	prev, err := hxtree.New(n.ID+"-prev", &Button{Value: "Previous", Handler: "prev_page"})
	if err != nil {
		return err
	}
	next, err := hxtree.New(n.ID+"-next", &Button{Value: "Next", Handler: "next_page"})
	if err != nil {
		return err
	}
	for _, c := range []*hxtree.Node{tn, prev, next} {
		if err := n.AddChild(c); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pager) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.open("div", n, "pager").raw(">")
		if c := n.Child(n.ID+"-table", hxtree.DirectOnly()); c != nil {
			m.component(c.Component())
		}
		m.raw(`<div class="ui pagination menu">`)
		if c := n.Child(n.ID+"-prev", hxtree.DirectOnly()); c != nil && p.Page > 1 {
			m.component(c.Component())
		}
		for i := 1; i <= p.Pages(); i++ {
			class := "item"
			if i == p.Page {
				class = "active item"
			}
			m.raw("<a").attr("class", class).
				raw(hxtree.Wire(n, "goto_page").Value(strconv.Itoa(i)).String()).
				raw(">").text(strconv.Itoa(i)).raw("</a>")
		}
		if c := n.Child(n.ID+"-next", hxtree.DirectOnly()); c != nil && p.Page < p.Pages() {
			m.component(c.Component())
		}
		m.raw("</div></div>")
	})
}

//hxtree:handler next_page
func (p *Pager) nextPage(ctx context.Context, ev *hxtree.Event) error {
	p.SetPage(p.Page + 1)
	return ev.Node.RefreshAll(ctx)
}

//hxtree:handler prev_page
func (p *Pager) prevPage(ctx context.Context, ev *hxtree.Event) error {
	p.SetPage(p.Page - 1)
	return ev.Node.RefreshAll(ctx)
}

//hxtree:handler goto_page
func (p *Pager) gotoPage(ctx context.Context, ev *hxtree.Event) error {
	page, err := strconv.Atoi(ev.Value)
	if err != nil {
		return fmt.Errorf("page %q: %w", ev.Value, err)
	}
	p.SetPage(page)
	return ev.Node.RefreshAll(ctx)
}
