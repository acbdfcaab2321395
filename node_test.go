package hxtree

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// sampleTree builds:
//
//	root
//	├── a
//	│   ├── a1
//	│   └── a2
//	└── b
//	    └── b1
func sampleTree() *Node {
	return MustNew(RootID, &box{}, WithChildren(
		MustNew("a", &box{}, WithChildren(
			MustNew("a1", &field{}),
			MustNew("a2", &field{}),
		)),
		MustNew("b", &box{}, WithChildren(
			MustNew("b1", &field{}),
		)),
	))
}

func ids(nodes []*Node) string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return strings.Join(out, ",")
}

func TestNewAssignsRandomID(t *testing.T) {
	n1 := MustNew("", &box{})
	n2 := MustNew("", &box{})
	if !strings.HasPrefix(n1.ID, "n-") {
		t.Errorf("ID = %q, want n- prefix", n1.ID)
	}
	if n1.ID == n2.ID {
		t.Errorf("random ids collide: %q", n1.ID)
	}
}

func TestNewRunsInitChildren(t *testing.T) {
	n := MustNew("p", &pair{Prefix: "x"})
	if got := ids(n.Children()); got != "p-a,p-b" {
		t.Errorf("children = %q, want %q", got, "p-a,p-b")
	}
	if v := n.Child("p-b").Widget.(*field).Value; v != "x-b" {
		t.Errorf("p-b value = %q, want %q", v, "x-b")
	}

	explicit := MustNew("q", &pair{}, WithChildren())
	if explicit.Len() != 0 {
		t.Errorf("explicit empty children: Len() = %d, want 0", explicit.Len())
	}
	if builds := explicit.Widget.(*pair).Builds; builds != 0 {
		t.Errorf("InitChildren ran %d times with explicit children", builds)
	}
}

func TestNewRejectsDuplicateChildren(t *testing.T) {
	_, err := New("root", &box{}, WithChildren(
		MustNew("x", &box{}),
		MustNew("x", &box{}),
	))
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("err = %v, want ErrDuplicateID", err)
	}
}

func TestAddChild(t *testing.T) {
	root := sampleTree()
	a := root.Child("a")

	if err := a.AddChild(MustNew("a3", &field{})); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if got := ids(a.Children()); got != "a1,a2,a3" {
		t.Errorf("children = %q", got)
	}
	if p := root.Lookup("a3").Parent(); p != a {
		t.Errorf("parent of a3 = %v, want a", p)
	}

	// ids are unique across the whole tree, not just among siblings
	err := a.AddChild(MustNew("b1", &field{}))
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("duplicate of b1: err = %v, want ErrDuplicateID", err)
	}
	err = a.AddChild(MustNew("fresh", &box{}, WithChildren(MustNew(RootID, &box{}))))
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("subtree reusing root id: err = %v, want ErrDuplicateID", err)
	}

	err = root.Child("b").AddChild(root.Child("a1"))
	if !errors.Is(err, ErrAttached) {
		t.Errorf("attached child: err = %v, want ErrAttached", err)
	}
}

func TestChildLookup(t *testing.T) {
	root := sampleTree()
	a := root.Child("a")
	b := root.Child("b")

	tests := []struct {
		name string
		from *Node
		id   string
		opts []LookupOption
		want string
	}{
		{"direct", root, "a", nil, "a"},
		{"recursive", root, "b1", nil, "b1"},
		{"direct only misses grandchild", root, "b1", []LookupOption{DirectOnly()}, ""},
		{"falls back to root", a, "b1", nil, "b1"},
		{"direct only still retries from root", a, "b", []LookupOption{DirectOnly()}, "b"},
		{"no root search", a, "b1", []LookupOption{NoRootSearch()}, ""},
		{"missing", b, "zzz", nil, ""},
		{"root is not its own child", root, RootID, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.Child(tt.id, tt.opts...)
			switch {
			case tt.want == "" && got != nil:
				t.Errorf("Child(%q) = %s, want nil", tt.id, got)
			case tt.want != "" && (got == nil || got.ID != tt.want):
				t.Errorf("Child(%q) = %v, want %s", tt.id, got, tt.want)
			}
		})
	}
}

func TestLookupMatchesRoot(t *testing.T) {
	root := sampleTree()
	if got := root.Child("a1").Lookup(RootID); got != root {
		t.Errorf("Lookup(root) = %v, want root", got)
	}
	if got := root.Lookup("a2"); got == nil || got.ID != "a2" {
		t.Errorf("Lookup(a2) = %v", got)
	}
}

func TestRemoveChild(t *testing.T) {
	root := sampleTree()
	a := root.Child("a")
	a1 := a.Child("a1")

	if !a.RemoveChild("a1") {
		t.Fatal("RemoveChild(a1) = false")
	}
	if a1.Parent() != nil {
		t.Error("removed child keeps its parent link")
	}
	if a.RemoveChild("a1") {
		t.Error("second RemoveChild(a1) = true")
	}
	if root.RemoveChild("b1") {
		t.Error("RemoveChild only removes direct children")
	}

	// the id is free again
	if err := root.Child("b").AddChild(a1); err != nil {
		t.Errorf("re-adding removed node: %v", err)
	}
}

func TestReplaceChildKeepsPosition(t *testing.T) {
	root := sampleTree()
	a := root.Child("a")

	if err := a.ReplaceChild("a1", MustNew("a1", &box{Class: "new"})); err != nil {
		t.Fatalf("ReplaceChild: %v", err)
	}
	if got := ids(a.Children()); got != "a1,a2" {
		t.Errorf("children = %q, want a1,a2", got)
	}
	if _, ok := a.Child("a1").Widget.(*box); !ok {
		t.Error("a1 was not replaced")
	}

	if err := a.ReplaceChild("a2", MustNew("x", &field{})); err != nil {
		t.Fatalf("ReplaceChild: %v", err)
	}
	if got := ids(a.Children()); got != "a1,x" {
		t.Errorf("children = %q, want a1,x", got)
	}

	err := a.ReplaceChild("x", MustNew("b1", &field{}))
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("err = %v, want ErrDuplicateID", err)
	}
	if got := ids(a.Children()); got != "a1,x" {
		t.Errorf("failed replace changed children to %q", got)
	}
	if a.Child("x").Parent() != a {
		t.Error("failed replace detached the old child")
	}

	err = a.ReplaceChild("missing", MustNew("y", &field{}))
	if !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("err = %v, want ErrNodeNotFound", err)
	}
}

func TestWalkStops(t *testing.T) {
	root := sampleTree()
	var seen []string
	root.Walk(func(n *Node) bool {
		seen = append(seen, n.ID)
		return n.ID != "a1"
	})
	if got := strings.Join(seen, ","); got != "root,a,a1" {
		t.Errorf("walk order = %q, want root,a,a1", got)
	}
}

func TestAddMessageLandsOnRoot(t *testing.T) {
	root := sampleTree()
	root.Lookup("b1").AddMessage("hello", MessageInfo)

	if len(root.Messages()) != 1 {
		t.Fatalf("root messages = %v", root.Messages())
	}
	if len(root.Lookup("b1").Messages()) != 0 {
		t.Error("message stored on the calling node")
	}
}

func TestMarkDirty(t *testing.T) {
	root := sampleTree()
	b1 := root.Lookup("b1")
	b1.Widget.(*field).Value = "v"

	if err := b1.MarkDirty(context.Background()); err != nil {
		t.Fatalf("MarkDirty: %v", err)
	}
	p := b1.Patch()
	if p == nil || p.Selector != "#b1" || p.HTML != `<input id="b1" name="b1" value="v"/>` {
		t.Errorf("patch = %+v", p)
	}

	root.reset()
	if b1.Dirty() {
		t.Error("reset kept the patch")
	}
}

func TestRefreshAllRebuildsChildren(t *testing.T) {
	root := MustNew(RootID, &box{}, WithChildren(MustNew("p", &pair{Prefix: "old"})))
	p := root.Child("p")
	w := p.Widget.(*pair)

	w.Prefix = "new"
	if err := p.RefreshAll(context.Background()); err != nil {
		t.Fatalf("RefreshAll: %v", err)
	}
	if w.Builds != 2 {
		t.Errorf("Builds = %d, want 2", w.Builds)
	}
	if v := p.Child("p-a").Widget.(*field).Value; v != "new-a" {
		t.Errorf("p-a value = %q, want new-a", v)
	}
	if !p.Dirty() {
		t.Error("RefreshAll did not mark the node dirty")
	}
}

func TestAttrString(t *testing.T) {
	n := MustNew("x", &box{}, WithAttributes(map[string]string{
		"title":     `say "hi"`,
		"data-role": "panel",
	}))
	want := ` data-role="panel" title="say &#34;hi&#34;"`
	if got := AttrString(n); got != want {
		t.Errorf("AttrString = %q, want %q", got, want)
	}
	if got := AttrString(MustNew("y", &box{})); got != "" {
		t.Errorf("AttrString without attributes = %q", got)
	}
}

func TestNodeString(t *testing.T) {
	if got := MustNew("x", &box{}).String(); got != "x(box)" {
		t.Errorf("String() = %q", got)
	}
}
