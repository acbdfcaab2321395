package hxtree

import (
	"context"
	_ "embed"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

// ClientScriptPath is where Handler serves the browser client.
const ClientScriptPath = "/_hxtree/client.js"

//go:embed static/client.js
var clientJS []byte

// ClientScript serves the embedded browser client.
//
// The client posts events for elements wired with Wire, replaces the
// elements named by the response patches and shows queued messages.
func ClientScript() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write(clientJS)
	})
}

// LayoutFunc wraps the rendered root tree into a full page. msgs are the
// messages queued while the tree was built.
type LayoutFunc func(content templ.Component, msgs []Message) templ.Component

// DefaultLayout is a minimal page that loads the client script.
func DefaultLayout(content templ.Component, msgs []Message) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html><head><meta charset="utf-8"><title>hxtree</title>`+
			`<script src="`+ClientScriptPath+`" defer></script></head><body><main id="hx-page">`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</main>`); err != nil {
			return err
		}
		if err := ToastContainer(msgs...).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}
