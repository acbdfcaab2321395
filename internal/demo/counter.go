package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/pthm/hxtree"
)

// Counter shows a number and the buttons that change it. The buttons are
// plain components.Button children; their events bubble up to the counter.
type Counter struct {
	Count int
}

func (*Counter) Kind() string { return "counter" }

func (c *Counter) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div id="%s" class="counter"%s><span class="count">%d</span>`,
			templ.EscapeString(n.ID), hxtree.AttrString(n), c.Count)
		if err != nil {
			return err
		}
		if err := hxtree.RenderChildren(n).Render(ctx, w); err != nil {
			return err
		}
		_, err = io.WriteString(w, "</div>")
		return err
	})
}

//hxtree:handler increment
func (c *Counter) increment(ctx context.Context, ev *hxtree.Event) error {
	c.Count++
	return ev.Node.MarkDirty(ctx)
}

//hxtree:handler decrement
func (c *Counter) decrement(ctx context.Context, ev *hxtree.Event) error {
	c.Count--
	return ev.Node.MarkDirty(ctx)
}

//hxtree:handler reset
func (c *Counter) reset(ctx context.Context, ev *hxtree.Event) error {
	c.Count = 0
	ev.Node.AddMessage("Counter reset!", hxtree.MessageSuccess)
	return ev.Node.MarkDirty(ctx)
}
