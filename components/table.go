package components

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/pthm/hxtree"
)

// Cell is a table cell: either text or a reference to a child node
// rendered in place.
type Cell struct {
	Text   string `msgpack:"t,omitempty"`
	NodeID string `msgpack:"n,omitempty"`
}

// Table is an HTML table. Rows may embed nodes, which become children of
// the table node.
type Table struct {
	Label   string
	Columns []string
	Rows    [][]Cell
}

func (*Table) Kind() string { return "table" }

// AddRow appends a row. Strings become text cells, nodes are attached as
// children of n and rendered in their cell, anything else is formatted
// with fmt.Sprint.
func (t *Table) AddRow(n *hxtree.Node, cells ...any) error {
	row := make([]Cell, 0, len(cells))
	for _, c := range cells {
		switch v := c.(type) {
		case string:
			row = append(row, Cell{Text: v})
		case *hxtree.Node:
			if err := n.AddChild(v); err != nil {
				return err
			}
			row = append(row, Cell{NodeID: v.ID})
		default:
			row = append(row, Cell{Text: fmt.Sprint(v)})
		}
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Clear deletes every row and the nodes embedded in them.
func (t *Table) Clear(n *hxtree.Node) {
	t.Rows = nil
	n.RemoveChildren()
}

func (t *Table) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.open("table", n, "ui celled table").raw(">")
		if t.Label != "" {
			m.raw("<caption>").text(t.Label).raw("</caption>")
		}
		if len(t.Columns) > 0 {
			m.raw("<thead><tr>")
			for _, col := range t.Columns {
				m.raw("<th>").text(col).raw("</th>")
			}
			m.raw("</tr></thead>")
		}
		m.raw("<tbody>")
		for _, row := range t.Rows {
			m.raw("<tr>")
			for _, cell := range row {
				m.raw("<td>")
				if cell.NodeID == "" {
					m.text(cell.Text)
				} else if c := n.Child(cell.NodeID, hxtree.DirectOnly()); c != nil {
					m.component(c.Component())
				}
				m.raw("</td>")
			}
			m.raw("</tr>")
		}
		m.raw("</tbody></table>")
	})
}
