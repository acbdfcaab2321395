// Package hxtree provides a server-held component tree for building
// interactive web pages in Go with templ templates and a small browser
// client.
//
// The page is a tree of nodes living on the server. The browser posts events
// raised on a node; the server reloads the tree from the session, copies the
// posted input values into it, runs the matching handler and answers with
// HTML fragments for the nodes the handler changed. The tree is then stored
// back into the session for the next request.
//
// # Core Concepts
//
// A Node has an id, opaque HTML attributes, an ordered list of children and a
// Widget carrying its kind-specific state. Widgets are plain structs with
// exported fields:
//
//	type CounterGroup struct {
//	    Count int
//	}
//
//	func (*CounterGroup) Kind() string { return "counter-group" }
//
// Widgets opt into behaviour through small interfaces:
//   - Renderer: Render(ctx, n) produces the node's templ.Component
//   - ValueLoader: LoadValue(n, form) copies posted values into the widget
//   - HandlerSet: LookupHandler(name) resolves event handlers
//   - ChildInitializer: InitChildren(n) builds the default subtree
//   - Clearer and Ephemeral for resettable and one-shot widgets
//
// # The Request Cycle
//
// Every event runs one cycle (see Reconcile):
//
//  1. pending patches and messages are cleared
//  2. posted values are loaded into the nodes the form mentions
//  3. the event bubbles from the origin node towards the root until a node
//     handles it; an unresolved handler is an error
//  4. handlers mutate the tree and call MarkDirty on the nodes to refresh
//  5. the response lists one [selector, html] patch per dirty node plus the
//     messages queued on the root
//
// Nothing is diffed. A node reaches the browser only when a handler marks it
// dirty, and ephemeral nodes such as modals are detached once rendered.
//
// # Handlers
//
// Handlers are unexported methods annotated for the code generator:
//
//	//hxtree:handler increment
//	func (c *CounterGroup) increment(ctx context.Context, ev *hxtree.Event) error {
//	    c.Count++
//	    return ev.Node.MarkDirty(ctx)
//	}
//
// Run 'hxtree generate' to produce the LookupHandler table for each annotated
// type, so dispatch needs no reflection.
//
// # Sessions and Security
//
// App stores the encoded tree in a session.Store keyed by a signed cookie.
// Stores can be wrapped with session.Sealed to encrypt trees at rest. Events
// must be posted with X-Requested-With: XMLHttpRequest (or HX-Request), which
// cross-origin forms cannot set.
//
// Concurrent events of one session are not serialized: the last save wins.
package hxtree
