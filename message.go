package hxtree

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Message kinds for user-facing notices.
const (
	MessageSuccess = "success"
	MessageError   = "error"
	MessageWarning = "warning"
	MessageInfo    = "info"
)

// Message is a one-time notice queued during a cycle.
//
// Messages are collected from the tree after the handler runs and sent in
// the "messages" list of the response; the browser client shows them in the
// toast container and dismisses them after a delay.
type Message struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// RenderMessages renders messages as toast elements.
//
// Used on the initial page load, where messages queued while building the
// tree are embedded in the page instead of sent as JSON.
func RenderMessages(msgs []Message) string {
	if len(msgs) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, m := range msgs {
		sb.WriteString(`<div class="toast toast-`)
		sb.WriteString(templ.EscapeString(m.Type))
		sb.WriteString(`" data-auto-dismiss="3000">`)
		sb.WriteString(templ.EscapeString(m.Text))
		sb.WriteString(`</div>`)
	}
	return sb.String()
}

// ToastContainer returns the container the client appends messages to.
//
// Layouts place it near the end of <body>. Messages passed in are rendered
// inside it immediately.
func ToastContainer(msgs ...Message) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="hx-messages" class="toast-container">`+RenderMessages(msgs)+`</div>`)
		return err
	})
}
