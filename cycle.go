package hxtree

import (
	"context"
	"fmt"
)

// Reconcile runs one request cycle against a tree loaded from the session.
//
// The cycle clears every node's pending patch and messages, copies posted
// values into the nodes the form mentions, dispatches the event to the first
// node from the origin up to the root that handles it, collects the pending
// patches and messages, and finally detaches ephemeral nodes that were
// rendered along the way.
//
// A handler that cannot be resolved is fatal: the error is returned and no
// response is produced. Callers persist root only when err is nil.
func Reconcile(ctx context.Context, root *Node, form Form) (*Response, error) {
	root.reset()

	ev, err := ParseEvent(form)
	if err != nil {
		return nil, err
	}

	if err := LoadValues(root, form); err != nil {
		return nil, err
	}

	ctx, scope := withRenderScope(ctx)
	if err := Dispatch(ctx, root, ev); err != nil {
		return nil, err
	}

	resp := collect(root)
	scope.detach()
	return resp, nil
}

// LoadValues copies posted values into every node of the tree whose id the
// form mentions. Nodes the form does not mention keep their current values.
func LoadValues(root *Node, form Form) error {
	var err error
	root.Walk(func(n *Node) bool {
		if !form.Mentions(n.ID) {
			return true
		}
		l, ok := n.Widget.(ValueLoader)
		if !ok {
			return true
		}
		if lerr := l.LoadValue(n, form); lerr != nil {
			err = fmt.Errorf("hxtree: load value of %q: %w", n.ID, lerr)
			return false
		}
		return true
	})
	return err
}

// Dispatch bubbles ev from its origin node up through parent links and
// invokes the first matching handler exactly once.
//
// When the origin id does not resolve, or no node up to the root handles
// ev.Handler, Dispatch returns a *HandlerNotFoundError.
func Dispatch(ctx context.Context, root *Node, ev *Event) error {
	origin := root.Lookup(ev.OriginID)
	for n := origin; n != nil; n = n.parent {
		hs, ok := n.Widget.(HandlerSet)
		if !ok {
			continue
		}
		h := hs.LookupHandler(ev.Handler)
		if h == nil {
			continue
		}
		ev.Origin = origin
		ev.Node = n
		if err := h(ctx, ev); err != nil {
			return fmt.Errorf("hxtree: handler %q on %q: %w", ev.Handler, n.ID, err)
		}
		return nil
	}
	return &HandlerNotFoundError{Handler: ev.Handler, OriginID: ev.OriginID}
}

// InitialRender renders a freshly built tree in full for the initial page
// load. Ephemeral nodes rendered here are detached afterwards, so the tree
// returned to the session no longer contains them.
func InitialRender(ctx context.Context, root *Node) (string, error) {
	ctx, scope := withRenderScope(ctx)
	html, err := root.Render(ctx)
	if err != nil {
		return "", err
	}
	scope.detach()
	return html, nil
}
