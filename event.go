package hxtree

// Event is the browser event being dispatched in a cycle.
//
// It carries the auxiliary posted fields explicitly instead of stashing them
// on the handling node, so handlers read them from here.
type Event struct {
	// Handler is the handler name looked up while bubbling.
	Handler string
	// OriginID is the id of the node the event was raised on.
	OriginID string

	ElementID string // raw DOM element id, when it differs from the node id
	Value     string // value of the element as submitted
	SourceID  string // drag source node id for drop events
	KeyCode   string // key code for keyboard events

	// Origin is the node the event was raised on.
	Origin *Node
	// Node is the node whose handler runs; Origin or one of its ancestors.
	Node *Node
	// Form is the full posted field map.
	Form Form
}

// ParseEvent extracts the event fields from a posted form.
//
// component_id names the origin; event_id is accepted when component_id is
// absent.
func ParseEvent(form Form) (*Event, error) {
	ev := &Event{
		Handler:   form.Get(FieldHandler),
		OriginID:  form.Get(FieldComponentID),
		ElementID: form.Get(FieldElementID),
		Value:     form.Get(FieldValue),
		SourceID:  form.Get(FieldSourceID),
		KeyCode:   form.Get(FieldKeyCode),
		Form:      form,
	}
	if ev.OriginID == "" {
		ev.OriginID = form.Get(FieldEventID)
	}
	if ev.Handler == "" {
		return nil, ErrMissingHandler
	}
	if ev.OriginID == "" {
		return nil, ErrMissingOrigin
	}
	return ev, nil
}

// Root returns the root of the tree the event is dispatched in.
func (ev *Event) Root() *Node {
	return ev.Node.Root()
}
