package hxtree

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RootID is the id given to the root node built on the initial page load.
const RootID = "root"

// Node is a unit of the server-rendered UI tree.
//
// A node owns its children; the parent link is a non-owning back reference
// that is rebuilt whenever a tree is decoded. Ids are unique across the whole
// tree: AddChild and ReplaceChild refuse subtrees that would shadow an
// existing id.
//
// The pending patch and message queue are cycle-scoped. Reconcile clears
// them at the start of every cycle and they are never persisted.
type Node struct {
	ID         string
	Attributes map[string]string
	Widget     Widget

	parent   *Node
	children []*Node
	patch    *Patch
	messages []Message
}

// Option configures a node built by New.
type Option func(*nodeOptions)

type nodeOptions struct {
	attrs    map[string]string
	children []*Node
	explicit bool
}

// WithAttributes sets the opaque HTML attributes rendered on the node.
func WithAttributes(attrs map[string]string) Option {
	return func(o *nodeOptions) {
		o.attrs = attrs
	}
}

// WithChildren supplies the initial children. When given, the widget's
// InitChildren hook is not called, even if the list is empty.
func WithChildren(children ...*Node) Option {
	return func(o *nodeOptions) {
		o.children = append(o.children, children...)
		o.explicit = true
	}
}

// New creates a node. An empty id is replaced by a random one.
//
// Composite widgets implementing ChildInitializer populate their default
// subtree here unless WithChildren was given.
func New(id string, w Widget, opts ...Option) (*Node, error) {
	var o nodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	if id == "" {
		id = NewID()
	}

	n := &Node{
		ID:         id,
		Attributes: o.attrs,
		Widget:     w,
	}

	if o.explicit {
		for _, c := range o.children {
			if err := n.AddChild(c); err != nil {
				return nil, err
			}
		}
		return n, nil
	}

	if init, ok := w.(ChildInitializer); ok {
		if err := init.InitChildren(n); err != nil {
			return nil, fmt.Errorf("hxtree: init children of %q: %w", id, err)
		}
	}
	return n, nil
}

// MustNew is like New but panics on error. Use it for static tree layouts
// where a failure is a programming mistake.
func MustNew(id string, w Widget, opts ...Option) *Node {
	n, err := New(id, w, opts...)
	if err != nil {
		panic(err)
	}
	return n
}

// NewID returns a random node id.
func NewID() string {
	return "n-" + uuid.NewString()
}

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Root walks parent links up to the root of the tree.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// Children returns the direct children in render order. The returned slice
// is a copy.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	return len(n.children)
}

// Selector returns the CSS selector the browser uses to find the node.
func (n *Node) Selector() string {
	return "#" + n.ID
}

// Walk visits the node and its descendants in pre-order. Returning false
// from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// AddChild appends child to the node's children.
//
// Fails with ErrAttached if child already has a parent and with
// ErrDuplicateID if any id in child's subtree is already in use in this tree.
func (n *Node) AddChild(child *Node) error {
	if child == nil {
		return errors.New("hxtree: nil child")
	}
	if child.parent != nil {
		return fmt.Errorf("%w: %q", ErrAttached, child.ID)
	}
	if err := n.Root().checkIDs(child); err != nil {
		return err
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// checkIDs reports the first id of sub that already exists in the tree
// rooted at n.
func (n *Node) checkIDs(sub *Node) error {
	var dup string
	sub.Walk(func(c *Node) bool {
		if c.ID == n.ID || n.find(c.ID, false) != nil {
			dup = c.ID
			return false
		}
		return true
	})
	if dup != "" {
		return fmt.Errorf("%w: %q", ErrDuplicateID, dup)
	}
	return nil
}

// LookupOption tunes Child.
type LookupOption func(*lookup)

type lookup struct {
	directOnly bool
	noRoot     bool
}

// DirectOnly restricts Child to immediate children.
func DirectOnly() LookupOption {
	return func(l *lookup) {
		l.directOnly = true
	}
}

// NoRootSearch stops Child from retrying the search from the tree root.
func NoRootSearch() LookupOption {
	return func(l *lookup) {
		l.noRoot = true
	}
}

// Child returns the node with the given id, or nil.
//
// The search checks direct children in order, then (unless DirectOnly)
// each child's subtree depth-first. When nothing is found the same search
// is repeated once from the tree root (unless NoRootSearch).
func (n *Node) Child(id string, opts ...LookupOption) *Node {
	var l lookup
	for _, opt := range opts {
		opt(&l)
	}

	if found := n.find(id, l.directOnly); found != nil {
		return found
	}
	if l.noRoot {
		return nil
	}
	if root := n.Root(); root != n {
		return root.find(id, l.directOnly)
	}
	return nil
}

func (n *Node) find(id string, directOnly bool) *Node {
	for _, c := range n.children {
		if c.ID == id {
			return c
		}
	}
	if directOnly {
		return nil
	}
	for _, c := range n.children {
		if found := c.find(id, false); found != nil {
			return found
		}
	}
	return nil
}

// Lookup resolves id anywhere in the tree, including the root itself.
func (n *Node) Lookup(id string) *Node {
	root := n.Root()
	if root.ID == id {
		return root
	}
	return root.find(id, false)
}

// RemoveChild detaches the direct child with the given id. It reports
// whether a child was removed.
func (n *Node) RemoveChild(id string) bool {
	i := n.indexOf(id)
	if i < 0 {
		return false
	}
	child := n.children[i]
	n.children = append(n.children[:i], n.children[i+1:]...)
	child.parent = nil
	return true
}

// ReplaceChild swaps the direct child with the given id for repl, keeping
// its position. repl may reuse the old child's id.
func (n *Node) ReplaceChild(id string, repl *Node) error {
	if repl == nil {
		return errors.New("hxtree: nil child")
	}
	if repl.parent != nil {
		return fmt.Errorf("%w: %q", ErrAttached, repl.ID)
	}
	i := n.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}

	old := n.children[i]
	n.children = append(n.children[:i], n.children[i+1:]...)
	if err := n.Root().checkIDs(repl); err != nil {
		n.children = append(n.children[:i], append([]*Node{old}, n.children[i:]...)...)
		return err
	}
	old.parent = nil
	repl.parent = n
	n.children = append(n.children[:i], append([]*Node{repl}, n.children[i:]...)...)
	return nil
}

// RemoveChildren detaches every child. Container widgets call it from Clear.
func (n *Node) RemoveChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

func (n *Node) indexOf(id string) int {
	for i, c := range n.children {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Clear resets the widget's state through its Clearer, if any.
func (n *Node) Clear() {
	if c, ok := n.Widget.(Clearer); ok {
		c.Clear(n)
	}
}

// MarkDirty renders the node now and records the result as its pending
// patch. Nothing marks nodes dirty automatically: handlers call this on every
// node whose change must reach the browser.
func (n *Node) MarkDirty(ctx context.Context) error {
	html, err := n.Render(ctx)
	if err != nil {
		return err
	}
	n.patch = &Patch{Selector: n.Selector(), HTML: html}
	return nil
}

// RefreshAll drops the node's children, rebuilds them with InitChildren and
// marks the node dirty.
func (n *Node) RefreshAll(ctx context.Context) error {
	n.RemoveChildren()
	if init, ok := n.Widget.(ChildInitializer); ok {
		if err := init.InitChildren(n); err != nil {
			return fmt.Errorf("hxtree: init children of %q: %w", n.ID, err)
		}
	}
	return n.MarkDirty(ctx)
}

// Dirty reports whether the node has a pending patch this cycle.
func (n *Node) Dirty() bool {
	return n.patch != nil
}

// Patch returns the pending patch, or nil.
func (n *Node) Patch() *Patch {
	return n.patch
}

// AddMessage queues a user-facing notice. Messages always land on the root,
// whichever node adds them.
func (n *Node) AddMessage(text, kind string) {
	root := n.Root()
	root.messages = append(root.messages, Message{Text: text, Type: kind})
}

// Messages returns the messages queued on this node.
func (n *Node) Messages() []Message {
	return n.messages
}

// reset clears cycle-scoped state across the subtree.
func (n *Node) reset() {
	n.Walk(func(c *Node) bool {
		c.patch = nil
		c.messages = nil
		return true
	})
}

// String returns a short description for logs.
func (n *Node) String() string {
	var sb strings.Builder
	sb.WriteString(n.ID)
	if n.Widget != nil {
		sb.WriteString("(")
		sb.WriteString(n.Widget.Kind())
		sb.WriteString(")")
	}
	return sb.String()
}
