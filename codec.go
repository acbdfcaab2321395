package hxtree

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// wireNode is the persisted form of a Node. Parent links, pending patches
// and messages are not part of it.
type wireNode struct {
	ID       string             `msgpack:"id"`
	Kind     string             `msgpack:"k,omitempty"`
	Attrs    map[string]string  `msgpack:"a,omitempty"`
	State    msgpack.RawMessage `msgpack:"s,omitempty"`
	Children []wireNode         `msgpack:"c,omitempty"`
}

// EncodeTree serializes the tree rooted at root with all current widget
// state. It is the unit of session persistence.
func EncodeTree(root *Node) ([]byte, error) {
	w, err := toWire(root)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(&w)
}

func toWire(n *Node) (wireNode, error) {
	w := wireNode{ID: n.ID, Attrs: n.Attributes}
	if n.Widget != nil {
		state, err := msgpack.Marshal(n.Widget)
		if err != nil {
			return wireNode{}, fmt.Errorf("hxtree: encode %s: %w", n, err)
		}
		w.Kind = n.Widget.Kind()
		w.State = state
	}
	for _, c := range n.children {
		cw, err := toWire(c)
		if err != nil {
			return wireNode{}, err
		}
		w.Children = append(w.Children, cw)
	}
	return w, nil
}

// DecodeTree rebuilds a tree produced by EncodeTree, instantiating widgets
// through the registry and restoring parent links. InitChildren is not run:
// the persisted children are authoritative.
func (k *Kinds) DecodeTree(data []byte) (*Node, error) {
	var w wireNode
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return k.fromWire(w, nil)
}

func (k *Kinds) fromWire(w wireNode, parent *Node) (*Node, error) {
	n := &Node{ID: w.ID, Attributes: w.Attrs, parent: parent}
	if w.Kind != "" {
		widget, err := k.New(w.Kind)
		if err != nil {
			return nil, err
		}
		if len(w.State) > 0 {
			if err := msgpack.Unmarshal(w.State, widget); err != nil {
				return nil, fmt.Errorf("hxtree: decode %s(%s): %w", w.ID, w.Kind, err)
			}
		}
		n.Widget = widget
	}
	for _, cw := range w.Children {
		c, err := k.fromWire(cw, n)
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, c)
	}
	return n, nil
}
