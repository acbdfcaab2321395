package components

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/hxtree"
)

// Form controls are named after their node, which is the key the client
// posts their value under. Except for HiddenInput they render inside a
// wrapper carrying the node id, so a patch replaces the label and error
// together with the control.

// HiddenInput is an <input type="hidden"> whose value round-trips through
// the browser.
type HiddenInput struct {
	Value string
}

func (*HiddenInput) Kind() string { return "hidden-input" }

func (h *HiddenInput) LoadValue(n *hxtree.Node, form hxtree.Form) error {
	if v, ok := form.Value(n.ID); ok {
		h.Value = v
	}
	return nil
}

func (h *HiddenInput) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.open("input", n, "").attr("name", n.ID).attr("type", "hidden").attr("value", h.Value).raw("/>")
	})
}

// TextInput is a single-line text field with an optional inline error.
type TextInput struct {
	Value       string
	Label       string
	Placeholder string
	Error       string
}

func (*TextInput) Kind() string { return "text-input" }

func (t *TextInput) LoadValue(n *hxtree.Node, form hxtree.Form) error {
	if v, ok := form.Value(n.ID); ok {
		t.Value = v
	}
	return nil
}

// Clear blanks the value and the error.
func (t *TextInput) Clear(*hxtree.Node) {
	t.Value = ""
	t.Error = ""
}

// Require sets Error to msg when the trimmed value is empty and reports
// whether the value is present.
func (t *TextInput) Require(msg string) bool {
	if strings.TrimSpace(t.Value) == "" {
		t.Error = msg
		return false
	}
	t.Error = ""
	return true
}

func (t *TextInput) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.field(n, t.Error).label(controlID(n), t.Label)
		m.raw("<input").attr("id", controlID(n)).attr("name", n.ID).attr("type", "text").attr("value", t.Value)
		if t.Placeholder != "" {
			m.attr("placeholder", t.Placeholder)
		}
		m.raw("/>").fieldError(t.Error).raw("</div>")
	})
}

// TextArea is a multi-line text field with an optional inline error.
type TextArea struct {
	Value string
	Label string
	Rows  int
	Error string
}

func (*TextArea) Kind() string { return "textarea" }

func (t *TextArea) LoadValue(n *hxtree.Node, form hxtree.Form) error {
	if v, ok := form.Value(n.ID); ok {
		t.Value = v
	}
	return nil
}

// Clear blanks the value and the error.
func (t *TextArea) Clear(*hxtree.Node) {
	t.Value = ""
	t.Error = ""
}

func (t *TextArea) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	rows := t.Rows
	if rows <= 0 {
		rows = 10
	}
	return template(func(m *markup) {
		m.field(n, t.Error).label(controlID(n), t.Label)
		m.raw("<textarea").attr("id", controlID(n)).attr("name", n.ID).attr("rows", strconv.Itoa(rows)).raw(">")
		m.text(t.Value).raw("</textarea>").fieldError(t.Error).raw("</div>")
	})
}

// Option is a choice of a Select.
type Option struct {
	Value string
	Name  string
}

// Select is a drop-down or, with Multiple, a list box. Single selects read
// the posted "<id>" value, list boxes read "<id>[]".
type Select struct {
	Label    string
	Options  []Option
	Values   []string
	Multiple bool
}

func (*Select) Kind() string { return "select" }

func (s *Select) LoadValue(n *hxtree.Node, form hxtree.Form) error {
	if s.Multiple {
		if vs, ok := form.List(n.ID); ok {
			s.Values = append([]string(nil), vs...)
		}
		return nil
	}
	if v, ok := form.Value(n.ID); ok {
		s.Values = []string{v}
	}
	return nil
}

// Clear deselects everything.
func (s *Select) Clear(*hxtree.Node) {
	s.Values = nil
}

// Value returns the first selected value, or "".
func (s *Select) Value() string {
	if len(s.Values) == 0 {
		return ""
	}
	return s.Values[0]
}

// Names returns the names of the selected options in option order.
func (s *Select) Names() []string {
	var names []string
	for _, o := range s.Options {
		if slices.Contains(s.Values, o.Value) {
			names = append(names, o.Name)
		}
	}
	return names
}

func (s *Select) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.field(n, "").label(controlID(n), s.Label)
		m.raw("<select").attr("id", controlID(n)).attr("class", "ui dropdown").attr("name", n.ID)
		if s.Multiple {
			m.raw(" multiple")
		}
		m.raw(">")
		for _, o := range s.Options {
			m.raw("<option").attr("value", o.Value)
			if slices.Contains(s.Values, o.Value) {
				m.raw(" selected")
			}
			m.raw(">").text(o.Name).raw("</option>")
		}
		m.raw("</select></div>")
	})
}

// FileInput tracks the names of files attached by the user. New names
// arrive as "<id>[]", removals as "delete-<id>[]". Storing the uploaded
// content is left to the application.
type FileInput struct {
	Label    string
	Files    []string
	Multiple bool
}

func (*FileInput) Kind() string { return "file-input" }

func (f *FileInput) LoadValue(n *hxtree.Node, form hxtree.Form) error {
	if added, ok := form.List(n.ID); ok {
		for _, name := range added {
			if name != "" && !slices.Contains(f.Files, name) {
				f.Files = append(f.Files, name)
			}
		}
	}
	if deleted, ok := form.Deletions(n.ID); ok {
		f.Files = slices.DeleteFunc(f.Files, func(name string) bool {
			return slices.Contains(deleted, name)
		})
	}
	return nil
}

// Clear forgets every attached file.
func (f *FileInput) Clear(*hxtree.Node) {
	f.Files = nil
}

func (f *FileInput) Render(ctx context.Context, n *hxtree.Node) templ.Component {
	return template(func(m *markup) {
		m.field(n, "").label(controlID(n), f.Label)
		m.raw("<input").attr("id", controlID(n)).attr("name", n.ID).attr("type", "file")
		if f.Multiple {
			m.raw(" multiple")
		}
		m.raw("/>")
		if len(f.Files) > 0 {
			m.raw(`<ul class="files">`)
			for _, name := range f.Files {
				m.raw("<li>").raw(`<input type="checkbox"`).attr("name", "delete-"+n.ID+"[]").attr("value", name).raw("/> ")
				m.text(name).raw("</li>")
			}
			m.raw("</ul>")
		}
		m.raw("</div>")
	})
}
