package hxtree

import "net/url"

// Reserved form keys of the event protocol.
const (
	FieldHandler     = "handler"
	FieldComponentID = "component_id"
	FieldEventID     = "event_id"
	FieldElementID   = "element_id"
	FieldValue       = "value"
	FieldSourceID    = "source_id"
	FieldKeyCode     = "key_code"
)

// Form is the posted field map of a state-changing request.
//
// Node values are keyed by node id: "<id>" for scalar values, "<id>[]" for
// lists and "delete-<id>[]" for file deletions.
type Form url.Values

// Get returns the first value for key, or "".
func (f Form) Get(key string) string {
	return url.Values(f).Get(key)
}

// Value returns the scalar value posted for a node id.
func (f Form) Value(id string) (string, bool) {
	vs, ok := f[id]
	if !ok || len(vs) == 0 {
		return "", ok
	}
	return vs[0], true
}

// List returns the list posted for a node id under "<id>[]".
func (f Form) List(id string) ([]string, bool) {
	vs, ok := f[id+"[]"]
	return vs, ok
}

// Deletions returns the entries posted under "delete-<id>[]".
func (f Form) Deletions(id string) ([]string, bool) {
	vs, ok := f["delete-"+id+"[]"]
	return vs, ok
}

// Mentions reports whether the form carries any value for the node id.
func (f Form) Mentions(id string) bool {
	if _, ok := f[id]; ok {
		return true
	}
	if _, ok := f[id+"[]"]; ok {
		return true
	}
	_, ok := f["delete-"+id+"[]"]
	return ok
}
