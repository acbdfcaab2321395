package hxtree

import (
	"github.com/a-h/templ"
)

// Attribute names read by the browser client.
const (
	AttrHandler = "data-hx-handler"
	AttrNode    = "data-hx-id"
	AttrTrigger = "data-hx-trigger"
	AttrValue   = "data-hx-value"
	AttrConfirm = "data-hx-confirm"
)

// Action builds the attributes that make an element post an event.
//
// The client script listens for the trigger DOM event on elements carrying
// data-hx-handler, collects the values of every input in the page and posts
// them together with handler and component_id:
//
//	<button { hxtree.Wire(n, "increment").Attrs()... }>+</button>
//	<input { hxtree.Wire(n, "search").On("keyup").Attrs()... }/>
type Action struct {
	handler string
	nodeID  string
	trigger string
	value   string
	confirm string
}

// Wire creates an action posting handler with n as the event origin.
// The default trigger is "click".
func Wire(n *Node, handler string) *Action {
	return WireID(n.ID, handler)
}

// WireID is like Wire for an origin known only by id, such as the node a
// confirmation dialog acts on.
func WireID(id, handler string) *Action {
	return &Action{handler: handler, nodeID: id, trigger: "click"}
}

// On sets the DOM event that fires the action ("click", "change",
// "keyup", "submit", "drop").
func (a *Action) On(trigger string) *Action {
	a.trigger = trigger
	return a
}

// Value sets a fixed value posted as the "value" field.
func (a *Action) Value(v string) *Action {
	a.value = v
	return a
}

// Confirm asks the user to confirm before posting.
func (a *Action) Confirm(msg string) *Action {
	a.confirm = msg
	return a
}

// Attrs returns the data attributes for templ spreading.
func (a *Action) Attrs() templ.Attributes {
	attrs := templ.Attributes{
		AttrHandler: a.handler,
		AttrNode:    a.nodeID,
		AttrTrigger: a.trigger,
	}
	if a.value != "" {
		attrs[AttrValue] = a.value
	}
	if a.confirm != "" {
		attrs[AttrConfirm] = a.confirm
	}
	return attrs
}

// String renders the attributes as ` key="value"` pairs in a fixed order,
// for widgets that write markup by hand.
func (a *Action) String() string {
	s := ` ` + AttrHandler + `="` + templ.EscapeString(a.handler) + `"` +
		` ` + AttrNode + `="` + templ.EscapeString(a.nodeID) + `"` +
		` ` + AttrTrigger + `="` + templ.EscapeString(a.trigger) + `"`
	if a.value != "" {
		s += ` ` + AttrValue + `="` + templ.EscapeString(a.value) + `"`
	}
	if a.confirm != "" {
		s += ` ` + AttrConfirm + `="` + templ.EscapeString(a.confirm) + `"`
	}
	return s
}
