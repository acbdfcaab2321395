package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/hxtree"
	"github.com/pthm/hxtree/components"
)

// Todos is a todo list with an entry form. It builds its own subtree:
//
//	<id>-title    components.TextInput
//	<id>-add      components.Button (add_todo)
//	<id>-clear    components.Button (clear_done)
//	<id>-list     TodoList of TodoItem nodes
//	<id>-dialogs  components.Group holding the delete confirmation
//
// Items are kept in the tree itself, so every browser tab has its own list.
type Todos struct {
	NextID int
}

func (*Todos) Kind() string { return "todos" }

func (*Todos) InitChildren(n *hxtree.Node) error {
	children := []struct {
		suffix string
		w      hxtree.Widget
	}{
		{"-title", &components.TextInput{Label: "New todo", Placeholder: "What needs doing?"}},
		{"-add", &components.Button{Value: "Add", Handler: "add_todo"}},
		{"-clear", &components.Button{Value: "Clear completed", Handler: "clear_done"}},
		{"-list", &TodoList{}},
		{"-dialogs", &components.Group{}},
	}
	for _, c := range children {
		child, err := hxtree.New(n.ID+c.suffix, c.w)
		if err != nil {
			return err
		}
		if err := n.AddChild(child); err != nil {
			return err
		}
	}
	return nil
}

func (*Todos) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div id="%s" class="todos"%s>`, templ.EscapeString(n.ID), hxtree.AttrString(n)); err != nil {
			return err
		}
		if err := hxtree.RenderChildren(n).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</div>")
		return err
	})
}

func (*Todos) part(n *hxtree.Node, suffix string) (*hxtree.Node, error) {
	c := n.Child(n.ID+suffix, hxtree.DirectOnly(), hxtree.NoRootSearch())
	if c == nil {
		return nil, fmt.Errorf("todos %q: missing %s", n.ID, n.ID+suffix)
	}
	return c, nil
}

// Add appends an item titled title to the list of the todos node n.
func (t *Todos) Add(n *hxtree.Node, title string) (*hxtree.Node, error) {
	list, err := t.part(n, "-list")
	if err != nil {
		return nil, err
	}
	t.NextID++
	item, err := hxtree.New(fmt.Sprintf("%s-%d", n.ID, t.NextID), &TodoItem{Title: title})
	if err != nil {
		return nil, err
	}
	if err := list.AddChild(item); err != nil {
		return nil, err
	}
	return item, nil
}

//hxtree:handler add_todo
func (t *Todos) addTodo(ctx context.Context, ev *hxtree.Event) error {
	titleNode, err := t.part(ev.Node, "-title")
	if err != nil {
		return err
	}
	input, ok := titleNode.Widget.(*components.TextInput)
	if !ok {
		return fmt.Errorf("todos %q: title is a %s", ev.Node.ID, titleNode.Widget.Kind())
	}
	if !input.Require("Enter a title") {
		ev.Node.AddMessage("Todo not added", hxtree.MessageError)
		return titleNode.MarkDirty(ctx)
	}

	title := strings.TrimSpace(input.Value)
	if _, err := t.Add(ev.Node, title); err != nil {
		return err
	}
	titleNode.Clear()
	ev.Node.AddMessage(fmt.Sprintf("Added %q", title), hxtree.MessageSuccess)

	list, err := t.part(ev.Node, "-list")
	if err != nil {
		return err
	}
	return errors.Join(titleNode.MarkDirty(ctx), list.MarkDirty(ctx))
}

//hxtree:handler clear_done
func (t *Todos) clearDone(ctx context.Context, ev *hxtree.Event) error {
	list, err := t.part(ev.Node, "-list")
	if err != nil {
		return err
	}
	var done []string
	for _, c := range list.Children() {
		if item, ok := c.Widget.(*TodoItem); ok && item.Done {
			done = append(done, c.ID)
		}
	}
	for _, id := range done {
		list.RemoveChild(id)
	}
	if len(done) == 0 {
		ev.Node.AddMessage("Nothing to clear", hxtree.MessageInfo)
		return nil
	}
	ev.Node.AddMessage(fmt.Sprintf("Removed %d completed", len(done)), hxtree.MessageSuccess)
	return list.MarkDirty(ctx)
}

// confirm opens the delete confirmation for item.
func (t *Todos) confirm(ctx context.Context, n, item *hxtree.Node, title string) error {
	dialogs, err := t.part(n, "-dialogs")
	if err != nil {
		return err
	}
	id := n.ID + "-confirm"
	dialogs.RemoveChild(id)
	modal, err := hxtree.New(id, &components.ConfirmModal{
		Header:  "Delete todo",
		Text:    fmt.Sprintf("Delete %q?", title),
		Handler: "delete_todo",
		EventID: item.ID,
	})
	if err != nil {
		return err
	}
	if err := dialogs.AddChild(modal); err != nil {
		return err
	}
	return dialogs.MarkDirty(ctx)
}

// TodoList holds TodoItem nodes.
type TodoList struct{}

func (*TodoList) Kind() string { return "todo-list" }

func (*TodoList) Clear(n *hxtree.Node) { n.RemoveChildren() }

func (*TodoList) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<ul id="%s" class="todo-list"%s>`, templ.EscapeString(n.ID), hxtree.AttrString(n)); err != nil {
			return err
		}
		if n.Len() == 0 {
			if _, err := io.WriteString(w, `<li class="empty">Nothing to do</li>`); err != nil {
				return err
			}
		}
		if err := hxtree.RenderChildren(n).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</ul>")
		return err
	})
}

// TodoItem is one entry of a TodoList.
type TodoItem struct {
	Title string
	Done  bool
}

func (*TodoItem) Kind() string { return "todo-item" }

func (t *TodoItem) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := "todo"
		if t.Done {
			class = "todo done"
		}
		_, err := fmt.Fprintf(w,
			`<li id="%s" class="%s"%s><a%s>%s</a> <button type="button" class="ui mini button"%s>Delete</button></li>`,
			templ.EscapeString(n.ID), class, hxtree.AttrString(n),
			hxtree.Wire(n, "toggle_todo").String(), templ.EscapeString(t.Title),
			hxtree.Wire(n, "confirm_delete").String(),
		)
		return err
	})
}

// owner returns the Todos node above n.
func owner(n *hxtree.Node) (*hxtree.Node, *Todos, error) {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if t, ok := p.Widget.(*Todos); ok {
			return p, t, nil
		}
	}
	return nil, nil, fmt.Errorf("todo %q: not inside a todo list", n.ID)
}

//hxtree:handler toggle_todo
func (t *TodoItem) toggle(ctx context.Context, ev *hxtree.Event) error {
	t.Done = !t.Done
	return ev.Node.MarkDirty(ctx)
}

//hxtree:handler confirm_delete
func (t *TodoItem) confirmDelete(ctx context.Context, ev *hxtree.Event) error {
	n, todos, err := owner(ev.Node)
	if err != nil {
		return err
	}
	return todos.confirm(ctx, n, ev.Node, t.Title)
}

//hxtree:handler delete_todo
func (t *TodoItem) remove(ctx context.Context, ev *hxtree.Event) error {
	list := ev.Node.Parent()
	if list == nil {
		return fmt.Errorf("todo %q: detached", ev.Node.ID)
	}
	// Queue the message while the node still reaches the root.
	ev.Node.AddMessage(fmt.Sprintf("Deleted %q", t.Title), hxtree.MessageSuccess)
	list.RemoveChild(ev.Node.ID)
	return list.MarkDirty(ctx)
}
