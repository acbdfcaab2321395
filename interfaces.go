package hxtree

import (
	"context"

	"github.com/a-h/templ"
)

// Widget is the kind-specific state carried by a Node.
//
// Widgets are plain structs with exported fields; they are persisted with the
// tree between requests, so anything unexported is lost at the end of a cycle.
// Kind must return a name registered with Kinds.
//
//	type Counter struct {
//	    Count int
//	}
//
//	func (*Counter) Kind() string { return "counter" }
type Widget interface {
	Kind() string
}

// Renderer is implemented by widgets that produce markup.
//
// The outermost element of the returned component must carry id=n.ID so the
// browser client can replace it when the node is marked dirty. Widgets that do
// not implement Renderer render as the empty string.
type Renderer interface {
	Render(ctx context.Context, n *Node) templ.Component
}

// ValueLoader is implemented by widgets that accept posted values.
//
// LoadValue is only called when the form mentions the node's id (see
// Form.Mentions). Scalar kinds read Form.Value, list kinds read Form.List.
type ValueLoader interface {
	LoadValue(n *Node, form Form) error
}

// Clearer is implemented by widgets with resettable state. Containers empty
// their children; inputs blank their value and error.
type Clearer interface {
	Clear(n *Node)
}

// ChildInitializer is implemented by composite widgets that build their own
// subtree. InitChildren runs once from New when no explicit children are
// given, and again on every RefreshAll.
type ChildInitializer interface {
	InitChildren(n *Node) error
}

// Ephemeral is implemented by one-shot widgets such as modals. When
// RemoveAfterRender reports true, the cycle detaches the node from its parent
// after it has been rendered.
type Ephemeral interface {
	RemoveAfterRender() bool
}

// HandlerFunc mutates the tree in response to a browser event.
//
// Handlers have full write access to the tree: they may change any node,
// add or remove children, call MarkDirty and queue messages.
type HandlerFunc func(ctx context.Context, ev *Event) error

// HandlerSet is implemented by widgets that handle events. LookupHandler
// returns nil for names the widget does not handle.
//
// Implementations are usually generated by `hxtree generate` from methods
// annotated with //hxtree:handler.
type HandlerSet interface {
	LookupHandler(name string) HandlerFunc
}
