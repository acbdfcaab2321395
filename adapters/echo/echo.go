// Package hxtreeecho provides Echo framework integration for hxtree apps.
//
// Mount an app onto an Echo instance:
//
//	e := echo.New()
//	app := hxtree.NewApp(buildPage, hxtree.WithKinds(kinds))
//	hxtreeecho.Mount(e, app)
//
// Or mount it on a group with middleware:
//
//	g := e.Group("/app", authMiddleware)
//	hxtreeecho.MountGroup(g, app)
//	hxtreeecho.MountScript(e)
package hxtreeecho

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/hxtree"
)

// Option configures the Mount and MountGroup functions.
type Option func(*options)

type options struct {
	path string
}

// WithPath sets the page path the app is served on. Defaults to "/".
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

func newOptions(opts []Option) *options {
	o := &options{path: "/"}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

var methods = []string{http.MethodGet, http.MethodHead, http.MethodPost}

// Mount serves app and the browser client on an Echo instance.
//
//	e := echo.New()
//	hxtreeecho.Mount(e, app)
//
//	// On another path:
//	hxtreeecho.Mount(e, app, hxtreeecho.WithPath("/counter"))
func Mount(e *echo.Echo, app *hxtree.App, opts ...Option) {
	o := newOptions(opts)
	MountScript(e)
	e.Match(methods, o.path, echo.WrapHandler(app))
}

// MountGroup serves app on an Echo group, so the page and its events share
// the group's middleware (auth, logging, etc.). The client script is
// requested from an absolute path; serve it with MountScript.
//
//	g := e.Group("/app", authMiddleware)
//	hxtreeecho.MountGroup(g, app)
func MountGroup(g *echo.Group, app *hxtree.App, opts ...Option) {
	o := newOptions(opts)
	g.Match(methods, o.path, echo.WrapHandler(app))
}

// MountScript serves the browser client at hxtree.ClientScriptPath.
func MountScript(e *echo.Echo) {
	e.GET(hxtree.ClientScriptPath, echo.WrapHandler(hxtree.ClientScript()))
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return hxtreeecho.Render(c, myTemplate())
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}
