package hxtree

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Widgets used across the package tests.

func markup(fn func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return fn(w)
	})
}

type box struct {
	Class string
}

func (*box) Kind() string { return "box" }

func (b *box) Render(ctx context.Context, n *Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		io.WriteString(w, `<div id="`+templ.EscapeString(n.ID)+`" class="`+templ.EscapeString(b.Class)+`"`+AttrString(n)+`>`)
		if err := RenderChildren(n).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

type button struct {
	Label string
}

func (*button) Kind() string { return "button" }

func (b *button) Render(ctx context.Context, n *Node) templ.Component {
	return markup(func(w io.Writer) error {
		_, err := io.WriteString(w, `<button id="`+templ.EscapeString(n.ID)+`"`+Wire(n, "increment").String()+`>`+templ.EscapeString(b.Label)+`</button>`)
		return err
	})
}

type field struct {
	Value string
}

func (*field) Kind() string { return "field" }

func (f *field) LoadValue(n *Node, form Form) error {
	if v, ok := form.Value(n.ID); ok {
		f.Value = v
	}
	return nil
}

func (f *field) Render(ctx context.Context, n *Node) templ.Component {
	return markup(func(w io.Writer) error {
		_, err := io.WriteString(w, `<input id="`+templ.EscapeString(n.ID)+`" name="`+templ.EscapeString(n.ID)+`" value="`+templ.EscapeString(f.Value)+`"/>`)
		return err
	})
}

// counterGroup is the canonical counter: a group showing a count with an
// increment button inside.
type counterGroup struct {
	Count int
}

func (*counterGroup) Kind() string { return "counter-group" }

func (c *counterGroup) Render(ctx context.Context, n *Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		io.WriteString(w, `<div id="`+templ.EscapeString(n.ID)+`">Count: `+strconv.Itoa(c.Count))
		if err := RenderChildren(n).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func (c *counterGroup) LookupHandler(name string) HandlerFunc {
	switch name {
	case "increment":
		return c.increment
	}
	return nil
}

func (c *counterGroup) increment(ctx context.Context, ev *Event) error {
	c.Count++
	return ev.Node.MarkDirty(ctx)
}

// tracker counts how often its handler ran.
type tracker struct {
	Handles string
	Calls   int
	Fail    bool
}

func (*tracker) Kind() string { return "tracker" }

func (t *tracker) LookupHandler(name string) HandlerFunc {
	if name != t.Handles {
		return nil
	}
	return func(ctx context.Context, ev *Event) error {
		t.Calls++
		if t.Fail {
			return errBoom
		}
		return nil
	}
}

var errBoom = errors.New("boom")

// flash is a one-shot notice.
type flash struct {
	Text string
}

func (*flash) Kind() string { return "flash" }

func (*flash) RemoveAfterRender() bool { return true }

func (f *flash) Render(ctx context.Context, n *Node) templ.Component {
	return markup(func(w io.Writer) error {
		_, err := io.WriteString(w, `<p id="`+templ.EscapeString(n.ID)+`">`+templ.EscapeString(f.Text)+`</p>`)
		return err
	})
}

// notifier shows a flash in the "slot" node and queues a message from a
// nested node when "notify" is posted.
type notifier struct{}

func (*notifier) Kind() string { return "notifier" }

func (*notifier) LookupHandler(name string) HandlerFunc {
	if name != "notify" {
		return nil
	}
	return func(ctx context.Context, ev *Event) error {
		slot := ev.Root().Lookup("slot")
		if err := slot.AddChild(MustNew("flash", &flash{Text: "saved"})); err != nil {
			return err
		}
		ev.Origin.AddMessage("Saved", MessageSuccess)
		return slot.MarkDirty(ctx)
	}
}

// pair is a composite that builds two labelled fields.
type pair struct {
	Prefix string
	Builds int
}

func (*pair) Kind() string { return "pair" }

func (p *pair) InitChildren(n *Node) error {
	p.Builds++
	for _, suffix := range []string{"-a", "-b"} {
		if err := n.AddChild(MustNew(n.ID+suffix, &field{Value: p.Prefix + suffix})); err != nil {
			return err
		}
	}
	return nil
}

func (p *pair) Render(ctx context.Context, n *Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		io.WriteString(w, `<fieldset id="`+templ.EscapeString(n.ID)+`">`)
		if err := RenderChildren(n).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</fieldset>`)
		return err
	})
}

func testKinds() *Kinds {
	k := NewKinds()
	k.Register(
		func() Widget { return &box{} },
		func() Widget { return &button{} },
		func() Widget { return &field{} },
		func() Widget { return &counterGroup{} },
		func() Widget { return &tracker{} },
		func() Widget { return &flash{} },
		func() Widget { return &notifier{} },
		func() Widget { return &pair{} },
	)
	return k
}

// counterPage builds root > counter-group > counter-btn.
func counterPage(ctx context.Context) (*Node, error) {
	return New(RootID, &box{Class: "page"}, WithChildren(
		MustNew("counter-group", &counterGroup{}, WithChildren(
			MustNew("counter-btn", &button{Label: "+"}),
		)),
	))
}
